package github

import (
	"strings"

	"github.com/temirov/ghrepo/internal/githubcli"
)

const (
	configurationPublicKeyConstant                 = "public"
	configurationDescriptionKeyConstant            = "description"
	configurationListLimitKeyConstant              = "list_limit"
	configurationCollaboratorPermissionKeyConstant = "collaborator_permission"
	defaultListLimitConstant                       = 30
)

// GistConfiguration captures persisted defaults for the gist command.
type GistConfiguration struct {
	Public      bool   `mapstructure:"public"`
	Description string `mapstructure:"description"`
}

// CommandConfiguration captures persisted defaults for the pull request, issue, secret and collaborator commands.
type CommandConfiguration struct {
	ListLimit              int    `mapstructure:"list_limit"`
	CollaboratorPermission string `mapstructure:"collaborator_permission"`
}

// DefaultGistConfiguration returns the built-in gist settings. Gists are secret unless configured otherwise.
func DefaultGistConfiguration() GistConfiguration {
	return GistConfiguration{}
}

// DefaultCommandConfiguration returns the built-in GitHub command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ListLimit:              defaultListLimitConstant,
		CollaboratorPermission: string(githubcli.CollaboratorPermissionPush),
	}
}

// DefaultGistConfigurationValues produces Viper defaults for the gist command rooted at rootKey.
func DefaultGistConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultGistConfiguration()
	return map[string]any{
		rootKey + "." + configurationPublicKeyConstant:      defaults.Public,
		rootKey + "." + configurationDescriptionKeyConstant: defaults.Description,
	}
}

// DefaultConfigurationValues produces Viper defaults for the GitHub commands rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationListLimitKeyConstant:              defaults.ListLimit,
		rootKey + "." + configurationCollaboratorPermissionKeyConstant: defaults.CollaboratorPermission,
	}
}

// Sanitize restores defaults for non-positive limits and unknown permissions.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration
	if sanitized.ListLimit <= 0 {
		sanitized.ListLimit = defaults.ListLimit
	}

	sanitized.CollaboratorPermission = defaults.CollaboratorPermission
	for _, permission := range collaboratorPermissionChoices() {
		if strings.EqualFold(permission, strings.TrimSpace(configuration.CollaboratorPermission)) {
			sanitized.CollaboratorPermission = permission
		}
	}
	return sanitized
}

// Sanitize trims the default description.
func (configuration GistConfiguration) Sanitize() GistConfiguration {
	sanitized := configuration
	sanitized.Description = strings.TrimSpace(configuration.Description)
	return sanitized
}

func collaboratorPermissionChoices() []string {
	return []string{
		string(githubcli.CollaboratorPermissionPull),
		string(githubcli.CollaboratorPermissionTriage),
		string(githubcli.CollaboratorPermissionPush),
		string(githubcli.CollaboratorPermissionMaintain),
		string(githubcli.CollaboratorPermissionAdmin),
	}
}
