package reconcile

import (
	"strings"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/reconcile"
)

const (
	configurationGitHostKeyConstant             = "git_host"
	configurationRepositoryListLimitKeyConstant = "repository_list_limit"
	configurationVisibilityKeyConstant          = "visibility"
	configurationCreateMessageKeyConstant       = "create_message"
	configurationPublishMessageKeyConstant      = "publish_message"
	configurationUpdateMessageKeyConstant       = "update_message"
	defaultGitHostConstant                      = "github.com"
)

// CommandConfiguration captures persisted settings shared by create, publish and update.
type CommandConfiguration struct {
	GitHost             string `mapstructure:"git_host"`
	RepositoryListLimit int    `mapstructure:"repository_list_limit"`
	Visibility          string `mapstructure:"visibility"`
	CreateMessage       string `mapstructure:"create_message"`
	PublishMessage      string `mapstructure:"publish_message"`
	UpdateMessage       string `mapstructure:"update_message"`
}

// DefaultCommandConfiguration returns the built-in reconciliation settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		GitHost:             defaultGitHostConstant,
		RepositoryListLimit: githubcli.DefaultRepositoryListLimit(),
		Visibility:          string(githubcli.RepositoryVisibilityPublic),
		CreateMessage:       reconcile.PolicyForMode(reconcile.ModeCreate).DefaultCommitMessage,
		PublishMessage:      reconcile.PolicyForMode(reconcile.ModePublish).DefaultCommitMessage,
		UpdateMessage:       reconcile.PolicyForMode(reconcile.ModeUpdate).DefaultCommitMessage,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationGitHostKeyConstant:             defaults.GitHost,
		rootKey + "." + configurationRepositoryListLimitKeyConstant: defaults.RepositoryListLimit,
		rootKey + "." + configurationVisibilityKeyConstant:          defaults.Visibility,
		rootKey + "." + configurationCreateMessageKeyConstant:       defaults.CreateMessage,
		rootKey + "." + configurationPublishMessageKeyConstant:      defaults.PublishMessage,
		rootKey + "." + configurationUpdateMessageKeyConstant:       defaults.UpdateMessage,
	}
}

// Sanitize trims values and restores defaults for anything left blank or out of range.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := CommandConfiguration{
		GitHost:             strings.TrimSpace(configuration.GitHost),
		RepositoryListLimit: configuration.RepositoryListLimit,
		Visibility:          strings.ToLower(strings.TrimSpace(configuration.Visibility)),
		CreateMessage:       strings.TrimSpace(configuration.CreateMessage),
		PublishMessage:      strings.TrimSpace(configuration.PublishMessage),
		UpdateMessage:       strings.TrimSpace(configuration.UpdateMessage),
	}
	if len(sanitized.GitHost) == 0 {
		sanitized.GitHost = defaults.GitHost
	}
	if sanitized.RepositoryListLimit <= 0 {
		sanitized.RepositoryListLimit = defaults.RepositoryListLimit
	}
	switch githubcli.RepositoryVisibility(sanitized.Visibility) {
	case githubcli.RepositoryVisibilityPublic, githubcli.RepositoryVisibilityPrivate, githubcli.RepositoryVisibilityInternal:
	default:
		sanitized.Visibility = defaults.Visibility
	}
	if len(sanitized.CreateMessage) == 0 {
		sanitized.CreateMessage = defaults.CreateMessage
	}
	if len(sanitized.PublishMessage) == 0 {
		sanitized.PublishMessage = defaults.PublishMessage
	}
	if len(sanitized.UpdateMessage) == 0 {
		sanitized.UpdateMessage = defaults.UpdateMessage
	}
	return sanitized
}

// MessageForMode returns the configured default commit message for mode.
func (configuration CommandConfiguration) MessageForMode(mode reconcile.Mode) string {
	switch mode {
	case reconcile.ModePublish:
		return configuration.PublishMessage
	case reconcile.ModeUpdate:
		return configuration.UpdateMessage
	default:
		return configuration.CreateMessage
	}
}
