package github

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/prompt"
	"github.com/temirov/ghrepo/internal/repos/shared"
	"github.com/temirov/ghrepo/internal/ui"
	"github.com/temirov/ghrepo/internal/utils"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	workingDirectoryErrorTemplate = "resolve working directory: %w"
	renderingErrorTemplate        = "unable to render %s output: %w"
	urlDocumentKeyConstant        = "url"
	urlLineTemplate               = "%s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ExecutorOptionsProvider yields the shell executor settings for the current invocation.
type ExecutorOptionsProvider func() dependencies.ExecutorOptions

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

// gitHubTarget bundles the client and repository a repository-scoped command operates on.
type gitHubTarget struct {
	client     *githubcli.Client
	repository shared.RepositoryIdentifier
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveExecutorOptions(provider ExecutorOptionsProvider) dependencies.ExecutorOptions {
	if provider == nil {
		return dependencies.ExecutorOptions{}
	}
	return provider()
}

func resolvePrompter(factory PrompterFactory, command *cobra.Command) shared.ConfirmationPrompter {
	if factory != nil {
		if prompter := factory(command); prompter != nil {
			return prompter
		}
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}

func (builder *CommandBuilder) resolveExecutor() (shared.GitExecutor, error) {
	return dependencies.ResolveGitExecutor(builder.GitExecutor, resolveLogger(builder.LoggerProvider), resolveExecutorOptions(builder.ExecutorOptionsProvider))
}

func (builder *CommandBuilder) resolveClient() (*githubcli.Client, error) {
	gitExecutor, executorError := builder.resolveExecutor()
	if executorError != nil {
		return nil, executorError
	}
	return dependencies.ResolveGitHubClient(gitExecutor)
}

// resolveTarget picks the repository from --repo or, failing that, the origin remote of the working directory.
func (builder *CommandBuilder) resolveTarget(command *cobra.Command) (gitHubTarget, error) {
	gitExecutor, executorError := builder.resolveExecutor()
	if executorError != nil {
		return gitHubTarget{}, executorError
	}
	githubClient, clientError := dependencies.ResolveGitHubClient(gitExecutor)
	if clientError != nil {
		return gitHubTarget{}, clientError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(gitExecutor)
	if managerError != nil {
		return gitHubTarget{}, managerError
	}

	explicitRepository := ""
	if flagValue, flagError := command.Flags().GetString(flagutils.RepositoryFlagName); flagError == nil {
		explicitRepository = strings.TrimSpace(flagValue)
	}

	workingDirectory := ""
	if len(explicitRepository) == 0 {
		resolvedDirectory, directoryError := builder.workingDirectory()
		if directoryError != nil {
			return gitHubTarget{}, fmt.Errorf(workingDirectoryErrorTemplate, directoryError)
		}
		workingDirectory = resolvedDirectory
	}

	repository, repositoryError := dependencies.ResolveRepositoryIdentifier(command.Context(), explicitRepository, repositoryManager, workingDirectory)
	if repositoryError != nil {
		return gitHubTarget{}, repositoryError
	}
	return gitHubTarget{client: githubClient, repository: repository}, nil
}

func (builder *CommandBuilder) workingDirectory() (string, error) {
	if builder.WorkingDirectory == nil {
		return os.Getwd()
	}
	return builder.WorkingDirectory()
}

func (builder *CommandBuilder) gistConfiguration() GistConfiguration {
	if builder.GistConfigurationProvider == nil {
		return DefaultGistConfiguration()
	}
	return builder.GistConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) configuration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) toggleSet() *flagutils.ToggleSet {
	if builder.ToggleSet == nil {
		builder.ToggleSet = flagutils.NewToggleSet()
	}
	return builder.ToggleSet
}

func renderDocument(command *cobra.Command, subject string, document any, textRenderer func(io.Writer) error) error {
	outputFormat := utils.NewCommandContextAccessor().OutputFormat(command.Context())
	if renderError := ui.WriteDocument(command.OutOrStdout(), outputFormat, document, textRenderer); renderError != nil {
		return fmt.Errorf(renderingErrorTemplate, subject, renderError)
	}
	return nil
}

func renderURL(command *cobra.Command, subject string, url string) error {
	return renderDocument(command, subject, map[string]string{urlDocumentKeyConstant: url}, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, urlLineTemplate, url)
		return writeError
	})
}

func stringFlag(command *cobra.Command, name string) string {
	flagValue, flagError := command.Flags().GetString(name)
	if flagError != nil {
		return ""
	}
	return flagValue
}

func boolFlag(command *cobra.Command, name string) bool {
	flagValue, flagError := command.Flags().GetBool(name)
	if flagError != nil {
		return false
	}
	return flagValue
}

func limitFlag(command *cobra.Command, name string, fallback int) int {
	flagValue, flagError := command.Flags().GetInt(name)
	if flagError != nil || flagValue <= 0 {
		return fallback
	}
	return flagValue
}
