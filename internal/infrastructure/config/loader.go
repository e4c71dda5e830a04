package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/fishfix/assets"
	appconfig "github.com/doeshing/fishfix/internal/application/config"
	"github.com/doeshing/fishfix/internal/domain"
	"github.com/doeshing/fishfix/internal/pkg/filesystem"
	"github.com/doeshing/fishfix/internal/ports"
)

// FileLoader loads YAML configuration from ~/.config/fishfix/config.yaml
// (overridable via FISHFIX_CONFIG). A missing file yields the embedded defaults.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return domain.Config{}, err
	}

	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return domain.Config{}, &domain.IOError{Op: "read", Path: path, Err: err}
	}

	// Unmarshalling over the defaults keeps every key the file leaves out.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, domain.NewConfigurationError("parse %s: %v", path, err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the config file location that Load reads.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandHome(l.overridePath)
	}
	if custom := os.Getenv(domain.ConfigEnvVar); custom != "" {
		return filesystem.ExpandHome(custom)
	}
	return filepath.Join(configHome(), "fishfix", "config.yaml")
}

// DefaultConfig decodes the embedded default configuration.
func DefaultConfig() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("decode embedded defaults: %w", err)
	}
	return cfg, nil
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = domain.ConfigFormatVersion
	}
	if cfg.Archive.Path != "" {
		cfg.Archive.Path = filesystem.ExpandHome(cfg.Archive.Path)
	}
	return cfg
}

func configHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(filesystem.UserHomeDir(), ".config")
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
