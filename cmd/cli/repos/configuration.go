package repos

import "strings"

const (
	configurationGitHostKeyConstant         = "git_host"
	configurationRenameDirectoryKeyConstant = "rename_directory"
	configurationAssumeYesKeyConstant       = "assume_yes"
	defaultGitHostConstant                  = "github.com"
)

// RenameConfiguration describes persisted defaults for the rename command.
type RenameConfiguration struct {
	GitHost         string `mapstructure:"git_host"`
	RenameDirectory bool   `mapstructure:"rename_directory"`
	AssumeYes       bool   `mapstructure:"assume_yes"`
}

// DefaultRenameConfiguration returns the built-in rename settings.
func DefaultRenameConfiguration() RenameConfiguration {
	return RenameConfiguration{GitHost: defaultGitHostConstant}
}

// DefaultConfigurationValues produces Viper defaults for the rename command rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultRenameConfiguration()
	return map[string]any{
		rootKey + "." + configurationGitHostKeyConstant:         defaults.GitHost,
		rootKey + "." + configurationRenameDirectoryKeyConstant: defaults.RenameDirectory,
		rootKey + "." + configurationAssumeYesKeyConstant:       defaults.AssumeYes,
	}
}

// Sanitize trims the host and restores the default when it is blank.
func (configuration RenameConfiguration) Sanitize() RenameConfiguration {
	sanitized := configuration
	sanitized.GitHost = strings.TrimSpace(configuration.GitHost)
	if len(sanitized.GitHost) == 0 {
		sanitized.GitHost = defaultGitHostConstant
	}
	return sanitized
}
