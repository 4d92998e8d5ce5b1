package release

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubauth"
	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/releases"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	"github.com/temirov/ghrepo/internal/repos/shared"
	"github.com/temirov/ghrepo/internal/ui"
	"github.com/temirov/ghrepo/internal/utils"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	groupUseConstant             = "release"
	groupShortDescription        = "Tag, publish and list releases"
	tagUseConstant               = "tag <tag> [directory]"
	tagShortDescription          = "Create and push an annotated release tag"
	tagLongDescription           = "tag annotates the provided tag (default message 'Release <tag>') and pushes it to the configured remote."
	tagExample                   = "ghrepo release tag v1.2.3 ~/Development/tools"
	createUseConstant            = "create <tag>"
	createShortDescription       = "Publish a GitHub release for a tag"
	createExample                = "ghrepo release create v1.2.3 --title \"First stable\" --prerelease"
	listUseConstant              = "list"
	listShortDescription         = "List the latest GitHub releases"
	messageFlagName              = "message"
	messageFlagUsage             = "Override the tag message"
	titleFlagName                = "title"
	titleFlagUsage               = "Release title (defaults to the tag)"
	notesFlagName                = "notes"
	notesFlagUsage               = "Release notes (generated by GitHub when empty)"
	draftFlagName                = "draft"
	draftFlagUsage               = "Save the release as a draft"
	prereleaseFlagName           = "prerelease"
	prereleaseFlagUsage          = "Mark the release as a prerelease"
	limitFlagName                = "limit"
	limitFlagUsage               = "Maximum number of releases to list"
	tagSuccessTemplate           = "RELEASED: %s -> %s (%s)\n"
	tagDryRunTemplate            = "PLAN: tag %s in %s and push to %s\n"
	createSuccessTemplate        = "%s\n"
	listRowTemplate              = "%s\t%s\t%s\t%s\n"
	draftStatusConstant          = "draft"
	prereleaseStatusConstant     = "prerelease"
	publishedStatusConstant      = "published"
	currentDirectoryConstant     = "."
	workingDirectoryTemplate     = "resolve working directory: %w"
	renderingErrorTemplate       = "unable to render release output: %w"
	createdReleaseDocumentURLKey = "url"
)

// CommandBuilder assembles the release command group.
type CommandBuilder struct {
	LoggerProvider          LoggerProvider
	ExecutorOptionsProvider ExecutorOptionsProvider
	ConfigurationProvider   func() CommandConfiguration
	GitExecutor             shared.GitExecutor
	HomeExpander            *pathutils.HomeExpander
	ToggleSet               *flagutils.ToggleSet
	WorkingDirectory        func() (string, error)
}

// Build constructs the release group with its tag, create and list subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	group := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
		RunE: func(command *cobra.Command, _ []string) error {
			return command.Help()
		},
	}
	flagutils.BindRepositoryFlag(group, "")

	toggleSet := builder.ToggleSet
	if toggleSet == nil {
		toggleSet = flagutils.NewToggleSet()
	}

	tagCommand := &cobra.Command{
		Use:     tagUseConstant,
		Short:   tagShortDescription,
		Long:    tagLongDescription,
		Example: tagExample,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    builder.runTag,
	}
	tagCommand.Flags().String(messageFlagName, "", messageFlagUsage)
	flagutils.EnsureRemoteFlag(tagCommand, "", flagutils.RemoteFlagUsage)
	flagutils.BindExecutionFlags(tagCommand, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
	})

	createCommand := &cobra.Command{
		Use:     createUseConstant,
		Short:   createShortDescription,
		Example: createExample,
		Args:    cobra.ExactArgs(1),
		RunE:    builder.runCreate,
	}
	githubauth.MarkCommand(createCommand)
	createCommand.Flags().String(titleFlagName, "", titleFlagUsage)
	createCommand.Flags().String(notesFlagName, "", notesFlagUsage)
	toggleSet.Add(createCommand.Flags(), nil, draftFlagName, "", false, draftFlagUsage)
	toggleSet.Add(createCommand.Flags(), nil, prereleaseFlagName, "", false, prereleaseFlagUsage)

	listCommand := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.runList,
	}
	githubauth.MarkCommand(listCommand)
	listCommand.Flags().Int(limitFlagName, 0, limitFlagUsage)

	group.AddCommand(tagCommand, createCommand, listCommand)
	return group, nil
}

func (builder *CommandBuilder) runTag(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	repositoryPath := currentDirectoryConstant
	if len(arguments) > 1 && len(strings.TrimSpace(arguments[1])) > 0 {
		repositoryPath = builder.homeExpander().Expand(strings.TrimSpace(arguments[1]))
	}

	messageValue := ""
	if command.Flags().Changed(messageFlagName) {
		if flagValue, flagError := command.Flags().GetString(messageFlagName); flagError == nil {
			messageValue = strings.TrimSpace(flagValue)
		}
	}
	remoteName := configuration.RemoteName
	if remoteValue, remoteError := command.Flags().GetString(flagutils.RemoteFlagName); remoteError == nil && len(strings.TrimSpace(remoteValue)) > 0 {
		remoteName = strings.TrimSpace(remoteValue)
	}
	dryRun := flagutils.ResolveExecutionFlags(command).DryRun

	gitExecutor, executorError := resolveGitExecutor(builder)
	if executorError != nil {
		return executorError
	}
	service, serviceError := releases.NewService(releases.ServiceDependencies{GitExecutor: gitExecutor})
	if serviceError != nil {
		return serviceError
	}

	result, releaseError := service.Release(command.Context(), releases.Options{
		RepositoryPath:  repositoryPath,
		TagName:         arguments[0],
		Message:         messageValue,
		MessageTemplate: configuration.MessageTemplate,
		RemoteName:      remoteName,
		DryRun:          dryRun,
	})
	if releaseError != nil {
		return releaseError
	}

	return builder.render(command, result, func(writer io.Writer) error {
		if result.DryRun {
			_, writeError := fmt.Fprintf(writer, tagDryRunTemplate, result.TagName, result.RepositoryPath, result.RemoteName)
			return writeError
		}
		_, writeError := fmt.Fprintf(writer, tagSuccessTemplate, result.RepositoryPath, result.TagName, result.RemoteName)
		return writeError
	})
}

func (builder *CommandBuilder) runCreate(command *cobra.Command, arguments []string) error {
	githubClient, repository, resolutionError := builder.resolveGitHubTarget(command)
	if resolutionError != nil {
		return resolutionError
	}

	title, _ := command.Flags().GetString(titleFlagName)
	notes, _ := command.Flags().GetString(notesFlagName)
	draft, _ := command.Flags().GetBool(draftFlagName)
	prerelease, _ := command.Flags().GetBool(prereleaseFlagName)

	releaseURL, createError := githubClient.CreateRelease(command.Context(), repository.String(), githubcli.ReleaseCreateOptions{
		TagName:    arguments[0],
		Title:      title,
		Notes:      notes,
		Draft:      draft,
		Prerelease: prerelease,
	})
	if createError != nil {
		return createError
	}

	document := map[string]string{createdReleaseDocumentURLKey: releaseURL}
	return builder.render(command, document, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, createSuccessTemplate, releaseURL)
		return writeError
	})
}

func (builder *CommandBuilder) runList(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	githubClient, repository, resolutionError := builder.resolveGitHubTarget(command)
	if resolutionError != nil {
		return resolutionError
	}

	limit := configuration.ListLimit
	if flagLimit, flagError := command.Flags().GetInt(limitFlagName); flagError == nil && flagLimit > 0 {
		limit = flagLimit
	}

	releaseList, listError := githubClient.ListReleases(command.Context(), repository.String(), limit)
	if listError != nil {
		return listError
	}

	return builder.render(command, releaseList, func(writer io.Writer) error {
		for _, release := range releaseList {
			if _, writeError := fmt.Fprintf(writer, listRowTemplate, release.TagName, release.Name, releaseStatus(release), release.PublishedAt); writeError != nil {
				return writeError
			}
		}
		return nil
	})
}

func (builder *CommandBuilder) resolveGitHubTarget(command *cobra.Command) (*githubcli.Client, shared.RepositoryIdentifier, error) {
	gitExecutor, executorError := resolveGitExecutor(builder)
	if executorError != nil {
		return nil, shared.RepositoryIdentifier{}, executorError
	}
	repositoryManager, managerError := dependencies.ResolveRepositoryManager(gitExecutor)
	if managerError != nil {
		return nil, shared.RepositoryIdentifier{}, managerError
	}
	githubClient, clientError := dependencies.ResolveGitHubClient(gitExecutor)
	if clientError != nil {
		return nil, shared.RepositoryIdentifier{}, clientError
	}

	workingDirectory, directoryError := builder.workingDirectory()
	if directoryError != nil {
		return nil, shared.RepositoryIdentifier{}, fmt.Errorf(workingDirectoryTemplate, directoryError)
	}
	repository, repositoryError := dependencies.ResolveRepositoryIdentifier(command.Context(), repositoryFlagValue(command), repositoryManager, workingDirectory)
	if repositoryError != nil {
		return nil, shared.RepositoryIdentifier{}, repositoryError
	}
	return githubClient, repository, nil
}

func (builder *CommandBuilder) render(command *cobra.Command, document any, textRenderer func(io.Writer) error) error {
	outputFormat := utils.NewCommandContextAccessor().OutputFormat(command.Context())
	if renderError := ui.WriteDocument(command.OutOrStdout(), outputFormat, document, textRenderer); renderError != nil {
		return fmt.Errorf(renderingErrorTemplate, renderError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) homeExpander() *pathutils.HomeExpander {
	if builder.HomeExpander == nil {
		return pathutils.NewHomeExpander()
	}
	return builder.HomeExpander
}

func (builder *CommandBuilder) workingDirectory() (string, error) {
	if builder.WorkingDirectory == nil {
		return os.Getwd()
	}
	return builder.WorkingDirectory()
}

func releaseStatus(release githubcli.Release) string {
	switch {
	case release.IsDraft:
		return draftStatusConstant
	case release.IsPrerelease:
		return prereleaseStatusConstant
	default:
		return publishedStatusConstant
	}
}
