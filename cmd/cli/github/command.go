package github

import (
	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubauth"
	"github.com/temirov/ghrepo/internal/repos/shared"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	limitFlagName  = "limit"
	limitFlagUsage = "Maximum number of entries to list"
	stateFlagName  = "state"
	stateFlagUsage = "Filter by state"
	titleFlagName  = "title"
	bodyFlagName   = "body"
	bodyFlagUsage  = "Body text"
)

// CommandBuilder assembles the gist, pr, issue, secret and collaborator commands.
type CommandBuilder struct {
	LoggerProvider            LoggerProvider
	ExecutorOptionsProvider   ExecutorOptionsProvider
	ConfigurationProvider     func() CommandConfiguration
	GistConfigurationProvider func() GistConfiguration
	GitExecutor               shared.GitExecutor
	FileSystem                shared.FileSystem
	HomeExpander              *pathutils.HomeExpander
	PrompterFactory           PrompterFactory
	ToggleSet                 *flagutils.ToggleSet
	WorkingDirectory          func() (string, error)
}

// Build constructs every GitHub-facing command. Each is marked for the authentication preflight.
func (builder *CommandBuilder) Build() ([]*cobra.Command, error) {
	commands := []*cobra.Command{
		builder.buildGistCommand(),
		builder.buildPullRequestCommand(),
		builder.buildIssueCommand(),
		builder.buildSecretCommand(),
		builder.buildCollaboratorCommand(),
	}
	for _, command := range commands {
		githubauth.MarkCommand(command)
	}
	return commands, nil
}

// newRepositoryGroup creates a parent command carrying the shared --repo flag.
func newRepositoryGroup(use string, short string) *cobra.Command {
	group := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}
	flagutils.BindRepositoryFlag(group, "")
	return group
}
