package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// HistoryFilePermissions matches what fish uses for fish_history (rw-------)
	HistoryFilePermissions = 0o600
)

// Config constants
const (
	// ConfigFormatVersion is the only config layout understood
	ConfigFormatVersion = "1"
	// ConfigEnvVar overrides the config file location
	ConfigEnvVar = "FISHFIX_CONFIG"
	// DebugEnvVar forces verbose logging
	DebugEnvVar = "FISHFIX_DEBUG"
)
