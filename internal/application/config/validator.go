package config

import (
	"strings"

	"github.com/doeshing/fishfix/internal/domain"
)

// Validate ensures the config file structure is consistent.
func Validate(cfg domain.Config) error {
	switch cfg.ConfigFormatVersion {
	case "", domain.ConfigFormatVersion:
	default:
		return domain.NewConfigurationError("config_format_version %q is not supported (want %q)", cfg.ConfigFormatVersion, domain.ConfigFormatVersion)
	}
	return validateArchive(cfg.Archive)
}

func validateArchive(archive domain.ArchiveSettings) error {
	if archive.Path != "" && strings.TrimSpace(archive.Path) == "" {
		return domain.NewConfigurationError("archive.path must not be blank")
	}
	return nil
}

// ValidateRequest rejects flag combinations that cannot be honoured.
func ValidateRequest(req domain.FixRequest) error {
	if len(req.Inputs) == 0 {
		return domain.NewConfigurationError("at least one history file is required")
	}
	stdin := 0
	for _, in := range req.Inputs {
		if strings.TrimSpace(in) == "" {
			return domain.NewConfigurationError("history file path must not be empty")
		}
		if in == domain.StdioPath {
			stdin++
		}
	}
	if stdin > 1 {
		return domain.NewConfigurationError("standard input (-) can only be given once")
	}
	if req.Lint && req.OutPath != "" {
		return domain.NewConfigurationError("--lint cannot be combined with --out-fname")
	}
	if req.Lint && req.ArchivePath != "" {
		return domain.NewConfigurationError("--lint cannot be combined with --archive")
	}
	if req.Append && req.OutPath == "" {
		return domain.NewConfigurationError("--append requires --out-fname")
	}
	if req.OutPath != "" && req.OutPath != domain.StdioPath {
		for _, in := range req.Inputs {
			if in == req.OutPath && !req.Append {
				return domain.NewConfigurationError("--out-fname %s would truncate an input file; use --append or another path", in)
			}
		}
	}
	return nil
}
