package reconcile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubauth"
	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/reconcile"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/shared"
	"github.com/temirov/ghrepo/internal/ui"
	"github.com/temirov/ghrepo/internal/utils"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	commandUseTemplate          = "%s [directory]"
	messageFlagName             = "message"
	messageFlagShorthand        = "m"
	messageFlagUsageTemplate    = "Commit message (default %q)"
	privateFlagName             = "private"
	privateFlagUsage            = "Create the GitHub repository as private"
	summaryTemplate             = "%s %s: initialized=%t created=%t linked=%t committed=%t pushed=%t\n"
	createShortDescription      = "Create a GitHub repository for a directory and push it"
	createLongDescription       = "create initializes git in the directory when needed, creates a same-named GitHub repository (or links the existing one as origin), commits every change and pushes the current branch."
	createExample               = "ghrepo create ~/Development/tools -m \"Import tools\""
	publishShortDescription     = "Publish an existing local repository to GitHub"
	publishLongDescription      = "publish requires an existing local repository, creates or links the same-named GitHub repository, commits outstanding changes and pushes the current branch."
	publishExample              = "ghrepo publish . --private"
	updateShortDescription      = "Commit and push changes to an existing GitHub repository"
	updateLongDescription       = "update commits every change and pushes it to the same-named GitHub repository. It never creates a repository on GitHub."
	updateExample               = "ghrepo update ~/notes -m \"Weekly notes\""
	serviceConstructionTemplate = "unable to construct reconciliation service: %w"
	summaryRenderingTemplate    = "unable to render reconciliation summary: %w"
)

type modeDescription struct {
	short   string
	long    string
	example string
}

var modeDescriptions = map[reconcile.Mode]modeDescription{
	reconcile.ModeCreate:  {short: createShortDescription, long: createLongDescription, example: createExample},
	reconcile.ModePublish: {short: publishShortDescription, long: publishLongDescription, example: publishExample},
	reconcile.ModeUpdate:  {short: updateShortDescription, long: updateLongDescription, example: updateExample},
}

// CommandBuilder assembles the create, publish and update commands.
type CommandBuilder struct {
	Mode                    reconcile.Mode
	LoggerProvider          LoggerProvider
	ExecutorOptionsProvider ExecutorOptionsProvider
	ConfigurationProvider   func() CommandConfiguration
	GitExecutor             shared.GitExecutor
	FileSystem              shared.FileSystem
	Inspector               reconcile.RepositoryInspector
	HomeExpander            *pathutils.HomeExpander
	IdentifierGenerator     reconcile.IdentifierGenerator
	ToggleSet               *flagutils.ToggleSet
}

// Build constructs the command for the builder's mode.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	mode, modeError := reconcile.ParseMode(string(builder.Mode))
	if modeError != nil {
		return nil, modeError
	}
	builder.Mode = mode
	description := modeDescriptions[mode]
	policy := reconcile.PolicyForMode(mode)

	command := &cobra.Command{
		Use:     fmt.Sprintf(commandUseTemplate, builder.Mode),
		Short:   description.short,
		Long:    description.long,
		Example: description.example,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.run,
	}
	githubauth.MarkCommand(command)

	command.Flags().StringP(messageFlagName, messageFlagShorthand, "", fmt.Sprintf(messageFlagUsageTemplate, policy.DefaultCommitMessage))
	if policy.MayCreateRemote {
		toggleSet := builder.ToggleSet
		if toggleSet == nil {
			toggleSet = flagutils.NewToggleSet()
		}
		toggleSet.Add(command.Flags(), nil, privateFlagName, "", false, privateFlagUsage)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	repositoryPath := ""
	if len(arguments) > 0 {
		repositoryPath = strings.TrimSpace(arguments[0])
	}

	commitMessage := configuration.MessageForMode(builder.Mode)
	if command.Flags().Changed(messageFlagName) {
		if flagValue, flagError := command.Flags().GetString(messageFlagName); flagError == nil && len(strings.TrimSpace(flagValue)) > 0 {
			commitMessage = flagValue
		}
	}

	visibility := githubcli.RepositoryVisibility(configuration.Visibility)
	if privateFlag := command.Flags().Lookup(privateFlagName); privateFlag != nil && privateFlag.Changed {
		visibility = githubcli.RepositoryVisibilityPublic
		if privateFlag.Value.String() == "true" {
			visibility = githubcli.RepositoryVisibilityPrivate
		}
	}

	outputFormat := utils.NewCommandContextAccessor().OutputFormat(command.Context())
	statusWriter := command.OutOrStdout()
	if outputFormat != ui.OutputFormatText {
		statusWriter = command.ErrOrStderr()
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

	inspector := builder.Inspector
	if inspector == nil {
		inspector = gitrepo.NewInspector()
	}

	service, serviceError := reconcile.NewService(reconcile.Dependencies{
		Logger:              logger,
		FileSystem:          dependencies.ResolveFileSystem(builder.FileSystem),
		Inspector:           inspector,
		Git:                 repositoryManager,
		GitHub:              githubClient,
		HomeExpander:        builder.HomeExpander,
		Output:              statusWriter,
		IdentifierGenerator: builder.IdentifierGenerator,
	})
	if serviceError != nil {
		return fmt.Errorf(serviceConstructionTemplate, serviceError)
	}

	outcome, reconcileError := service.Reconcile(command.Context(), reconcile.Options{
		RepositoryPath:      repositoryPath,
		Mode:                builder.Mode,
		CommitMessage:       commitMessage,
		GitHost:             configuration.GitHost,
		RepositoryListLimit: configuration.RepositoryListLimit,
		Visibility:          visibility,
	})
	if !outcome.Succeeded() && outputFormat == ui.OutputFormatText {
		return reconcileError
	}

	// Structured formats still receive the partial outcome so callers can see which steps ran.
	renderError := ui.WriteDocument(command.OutOrStdout(), outputFormat, outcome, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, summaryTemplate, outcome.Mode, outcome.Target.Name, outcome.Initialized, outcome.CreatedOnRemote, outcome.Linked, outcome.Committed, outcome.Pushed)
		return writeError
	})
	if renderError != nil {
		return errors.Join(reconcileError, fmt.Errorf(summaryRenderingTemplate, renderError))
	}
	return reconcileError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
