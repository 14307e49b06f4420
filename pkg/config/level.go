package config

// ConfigLevel is where an effective configuration value came from.
// Ordered by precedence (highest to lowest)
type ConfigLevel int

const (
	// CommandLineLevel holds values passed as flags (highest precedence)
	CommandLineLevel ConfigLevel = iota

	// EnvironmentLevel holds SRCO_* environment variables
	// Example: SRCO_CORE_COMPRESSION=9
	EnvironmentLevel

	// RepositoryLevel holds values from .source/config
	RepositoryLevel

	// BuiltinLevel represents hardcoded default values (lowest precedence)
	BuiltinLevel
)

// String returns the string representation of the configuration level
func (l ConfigLevel) String() string {
	switch l {
	case CommandLineLevel:
		return "command-line"
	case EnvironmentLevel:
		return "environment"
	case RepositoryLevel:
		return "repository"
	case BuiltinLevel:
		return "builtin"
	default:
		return "unknown"
	}
}

// IsValid returns true if the configuration level is valid
func (l ConfigLevel) IsValid() bool {
	return l >= CommandLineLevel && l <= BuiltinLevel
}

// ParseLevel converts a string to a ConfigLevel
func ParseLevel(s string) (ConfigLevel, error) {
	switch s {
	case "command-line":
		return CommandLineLevel, nil
	case "environment":
		return EnvironmentLevel, nil
	case "repository":
		return RepositoryLevel, nil
	case "builtin":
		return BuiltinLevel, nil
	default:
		return 0, newError(CodeInvalidLevel, "parse level", "unknown level "+s, nil)
	}
}
