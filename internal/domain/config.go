package domain

// Config mirrors ~/.config/fishfix/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Preferences         Preferences     `yaml:"preferences"`
	Archive             ArchiveSettings `yaml:"archive"`
}

// Preferences holds the defaults the command line flags override.
type Preferences struct {
	Sort     bool `yaml:"sort"`
	ParseFix bool `yaml:"parse_fix"`
	FixPaths bool `yaml:"fix_paths"`
	Verbose  bool `yaml:"verbose"`
}

// ArchiveSettings configures the optional SQLite archive.
type ArchiveSettings struct {
	Path string `yaml:"path"`
}
