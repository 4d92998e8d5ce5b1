package release

import "strings"

const (
	configurationRemoteKeyConstant          = "remote"
	configurationMessageTemplateKeyConstant = "message_template"
	configurationListLimitKeyConstant       = "list_limit"
	defaultRemoteNameConstant               = "origin"
	defaultMessageTemplateConstant          = "Release %s"
	defaultListLimitConstant                = 30
)

// CommandConfiguration captures persisted defaults for the release commands.
type CommandConfiguration struct {
	RemoteName      string `mapstructure:"remote"`
	MessageTemplate string `mapstructure:"message_template"`
	ListLimit       int    `mapstructure:"list_limit"`
}

// DefaultCommandConfiguration returns the built-in release settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:      defaultRemoteNameConstant,
		MessageTemplate: defaultMessageTemplateConstant,
		ListLimit:       defaultListLimitConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the release commands rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRemoteKeyConstant:          defaults.RemoteName,
		rootKey + "." + configurationMessageTemplateKeyConstant: defaults.MessageTemplate,
		rootKey + "." + configurationListLimitKeyConstant:       defaults.ListLimit,
	}
}

// Sanitize restores defaults for blank or non-positive values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	if len(sanitized.RemoteName) == 0 {
		sanitized.RemoteName = defaults.RemoteName
	}
	sanitized.MessageTemplate = strings.TrimSpace(configuration.MessageTemplate)
	if len(sanitized.MessageTemplate) == 0 {
		sanitized.MessageTemplate = defaults.MessageTemplate
	}
	if sanitized.ListLimit <= 0 {
		sanitized.ListLimit = defaults.ListLimit
	}

	return sanitized
}
