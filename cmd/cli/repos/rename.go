package repos

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubauth"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/rename"
	"github.com/temirov/ghrepo/internal/repos/shared"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	renameUseConstant             = "rename <directory> <new-name>"
	renameShortDescription        = "Rename a GitHub repository and relink its local clone"
	renameLongDescription         = "rename renames the GitHub repository behind a local directory, points origin at the new HTTPS URL and, with --rename-directory, renames the local folder after confirmation."
	renameExample                 = "ghrepo rename ~/Development/tools devtools --rename-directory"
	renameDirectoryFlagName       = "rename-directory"
	renameDirectoryFlagUsage      = "Rename the local folder to the new name as well"
	renameArgumentsMissingMessage = "rename requires a directory and a new repository name"
	renameArgumentCountConstant   = 2
	renameDirectoryArgumentIndex  = 0
	renameNewNameArgumentIndex    = 1
)

// RenameCommandBuilder assembles the rename command.
type RenameCommandBuilder struct {
	LoggerProvider          LoggerProvider
	ExecutorOptionsProvider ExecutorOptionsProvider
	ConfigurationProvider   func() RenameConfiguration
	GitExecutor             shared.GitExecutor
	FileSystem              shared.FileSystem
	PrompterFactory         PrompterFactory
	HomeExpander            *pathutils.HomeExpander
	ToggleSet               *flagutils.ToggleSet
}

// Build constructs the rename command.
func (builder *RenameCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     renameUseConstant,
		Short:   renameShortDescription,
		Long:    renameLongDescription,
		Example: renameExample,
		RunE:    builder.run,
	}
	githubauth.MarkCommand(command)

	toggleSet := builder.ToggleSet
	if toggleSet == nil {
		toggleSet = flagutils.NewToggleSet()
	}
	toggleSet.Add(command.Flags(), nil, renameDirectoryFlagName, "", false, renameDirectoryFlagUsage)
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.StandardExecutionFlagDefinitions())

	return command, nil
}

func (builder *RenameCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) != renameArgumentCountConstant {
		_ = command.Help()
		return errors.New(renameArgumentsMissingMessage)
	}

	configuration := builder.resolveConfiguration()
	executionFlags := flagutils.ResolveExecutionFlags(command)

	renameDirectory := configuration.RenameDirectory
	if directoryFlag := command.Flags().Lookup(renameDirectoryFlagName); directoryFlag != nil && directoryFlag.Changed {
		renameDirectory = directoryFlag.Value.String() == "true"
	}
	assumeYes := configuration.AssumeYes || executionFlags.AssumeYes

	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	logger := resolveLogger(builder.LoggerProvider)
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, resolveExecutorOptions(builder.ExecutorOptionsProvider))
	if executorError != nil {
		return executorError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(gitExecutor)
	if managerError != nil {
		return managerError
	}
	githubClient, clientError := dependencies.ResolveGitHubClient(gitExecutor)
	if clientError != nil {
		return clientError
	}

	executor, constructionError := rename.NewExecutor(rename.Dependencies{
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		GitManager: repositoryManager,
		GitHub:     githubClient,
		Prompter:   resolvePrompter(builder.PrompterFactory, command),
		Reporter:   shared.NewWriterReporter(command.OutOrStdout()),
	})
	if constructionError != nil {
		return constructionError
	}

	_, executionError := executor.Execute(command.Context(), rename.Options{
		RepositoryPath:     homeExpander.Expand(strings.TrimSpace(arguments[renameDirectoryArgumentIndex])),
		NewName:            arguments[renameNewNameArgumentIndex],
		GitHost:            configuration.GitHost,
		RenameDirectory:    renameDirectory,
		DryRun:             executionFlags.DryRun,
		ConfirmationPolicy: shared.ConfirmationPolicyFromBool(assumeYes),
	})
	return executionError
}

func (builder *RenameCommandBuilder) resolveConfiguration() RenameConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultRenameConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
