package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed"
	genericExecutionFailureTemplateConstant = "%s could not run"
	failureSuffixTemplateConstant           = "%s (exit code %d%s)"
	executionFailureSuffixTemplateConstant  = "%s: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitInitSubcommandNameConstant         = "init"
	gitAddSubcommandNameConstant          = "add"
	gitDiffSubcommandNameConstant         = "diff"
	gitCommitSubcommandNameConstant       = "commit"
	gitSymbolicRefSubcommandNameConstant  = "symbolic-ref"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteAddSubcommandNameConstant    = "add"
	gitRemoteRemoveSubcommandNameConstant = "remove"
	gitRemoteGetURLSubcommandNameConstant = "get-url"
	gitRemoteSetURLSubcommandNameConstant = "set-url"
	gitPushSubcommandNameConstant         = "push"
	gitPullSubcommandNameConstant         = "pull"
	gitTagSubcommandNameConstant          = "tag"
	gitMessageFlagConstant                = "-m"
	gitAllFlagConstant                    = "-A"
	gitAllChangesLabelConstant            = "all changes"
)

const (
	githubVersionFlagConstant             = "--version"
	githubAuthSubcommandNameConstant      = "auth"
	githubRepoSubcommandNameConstant      = "repo"
	githubGistSubcommandNameConstant      = "gist"
	githubPullRequestSubcommandConstant   = "pr"
	githubIssueSubcommandNameConstant     = "issue"
	githubSecretSubcommandNameConstant    = "secret"
	githubReleaseSubcommandNameConstant   = "release"
	githubAPICommandNameConstant          = "api"
	githubListSubcommandNameConstant      = "list"
	githubCreateSubcommandNameConstant    = "create"
	githubViewSubcommandNameConstant      = "view"
	githubRenameSubcommandNameConstant    = "rename"
	githubSetSubcommandNameConstant       = "set"
	githubDeleteSubcommandNameConstant    = "delete"
	githubRepoFlagConstant                = "--repo"
	githubMethodFlagConstant              = "-X"
	githubUserEndpointConstant            = "user"
	githubCollaboratorsSegmentConstant    = "/collaborators"
	githubCurrentRepositoryLabelConstant  = "current repository"
	githubAuthenticatedOwnerLabelConstant = "authenticated user"
	httpMethodPutConstant                 = "PUT"
	httpMethodDeleteConstant              = "DELETE"
)

// messageTemplateSet holds the four lifecycle templates for one kind of command. Failure suffixes are appended by the formatter.
type messageTemplateSet struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

var (
	gitInitMessages                  = messageTemplateSet{"Initializing repository in %s", "Initialized repository in %s", "Failed to initialize repository in %s", "Unable to initialize repository in %s"}
	gitAddMessages                   = messageTemplateSet{"Staging %s in %s", "Staged %s in %s", "Failed to stage %s in %s", "Unable to stage %s in %s"}
	gitDiffMessages                  = messageTemplateSet{"Inspecting staged changes in %s", "Inspected staged changes in %s", "Failed to inspect staged changes in %s", "Unable to inspect staged changes in %s"}
	gitCommitMessages                = messageTemplateSet{"Creating commit in %s with message %q", "Created commit in %s with message %q", "Failed to create commit in %s with message %q", "Unable to create commit in %s with message %q"}
	gitCurrentBranchMessages         = messageTemplateSet{"Identifying current branch in %s", "Identified current branch in %s", "Failed to identify current branch in %s", "Unable to identify current branch in %s"}
	gitRemoteListMessages            = messageTemplateSet{"Listing remotes in %s", "Listed remotes in %s", "Failed to list remotes in %s", "Unable to list remotes in %s"}
	gitRemoteAddMessages             = messageTemplateSet{"Linking %s remote in %s to %s", "Linked %s remote in %s to %s", "Failed to link %s remote in %s to %s", "Unable to link %s remote in %s to %s"}
	gitRemoteRemoveMessages          = messageTemplateSet{"Removing %s remote in %s", "Removed %s remote in %s", "Failed to remove %s remote in %s", "Unable to remove %s remote in %s"}
	gitRemoteLookupMessages          = messageTemplateSet{"Checking %s remote for %s", "Read %s remote for %s", "Failed to read %s remote for %s", "Unable to read %s remote for %s"}
	gitRemoteUpdateMessages          = messageTemplateSet{"Updating %s remote for %s to %s", "%s remote for %s now points to %s", "Failed to update %s remote for %s to %s", "Unable to update %s remote for %s to %s"}
	gitPushMessages                  = messageTemplateSet{"Pushing %s to %s from %s", "Pushed %s to %s from %s", "Failed to push %s to %s from %s", "Unable to push %s to %s from %s"}
	gitPullRebaseMessages            = messageTemplateSet{"Rebasing %s onto %s/%s", "Rebased %s onto %s/%s", "Failed to rebase %s onto %s/%s", "Unable to rebase %s onto %s/%s"}
	gitTagMessages                   = messageTemplateSet{"Creating tag %s in %s", "Created tag %s in %s", "Failed to create tag %s in %s", "Unable to create tag %s in %s"}
	githubVersionMessages            = messageTemplateSet{"Checking GitHub CLI installation", "GitHub CLI is installed", "GitHub CLI installation check failed", "GitHub CLI is not available"}
	githubAuthMessages               = messageTemplateSet{"Checking GitHub CLI authentication", "GitHub CLI is authenticated", "GitHub CLI is not authenticated", "Unable to check GitHub CLI authentication"}
	githubUserMessages               = messageTemplateSet{"Resolving authenticated GitHub user", "Resolved authenticated GitHub user", "Failed to resolve authenticated GitHub user", "Unable to resolve authenticated GitHub user"}
	githubRepoListMessages           = messageTemplateSet{"Listing repositories for %s", "Listed repositories for %s", "Failed to list repositories for %s", "Unable to list repositories for %s"}
	githubRepoCreateMessages         = messageTemplateSet{"Creating repository %s", "Created repository %s", "Failed to create repository %s", "Unable to create repository %s"}
	githubRepoViewMessages           = messageTemplateSet{"Retrieving repository details for %s", "Retrieved repository details for %s", "Failed to retrieve repository details for %s", "Unable to retrieve repository details for %s"}
	githubRepoRenameMessages         = messageTemplateSet{"Renaming repository %s to %s", "Renamed repository %s to %s", "Failed to rename repository %s to %s", "Unable to rename repository %s to %s"}
	githubGistCreateMessages         = messageTemplateSet{"Creating gist from %s", "Created gist from %s", "Failed to create gist from %s", "Unable to create gist from %s"}
	githubResourceListMessages       = messageTemplateSet{"Listing %s for %s", "Listed %s for %s", "Failed to list %s for %s", "Unable to list %s for %s"}
	githubResourceCreateMessages     = messageTemplateSet{"Creating %s in %s", "Created %s in %s", "Failed to create %s in %s", "Unable to create %s in %s"}
	githubSecretSetMessages          = messageTemplateSet{"Setting secret %s for %s", "Set secret %s for %s", "Failed to set secret %s for %s", "Unable to set secret %s for %s"}
	githubSecretDeleteMessages       = messageTemplateSet{"Deleting secret %s from %s", "Deleted secret %s from %s", "Failed to delete secret %s from %s", "Unable to delete secret %s from %s"}
	githubCollaboratorAddMessages    = messageTemplateSet{"Adding collaborator %s to %s", "Added collaborator %s to %s", "Failed to add collaborator %s to %s", "Unable to add collaborator %s to %s"}
	githubCollaboratorRemoveMessages = messageTemplateSet{"Removing collaborator %s from %s", "Removed collaborator %s from %s", "Failed to remove collaborator %s from %s", "Unable to remove collaborator %s from %s"}
)

var githubResourceLabels = map[string]string{
	githubPullRequestSubcommandConstant: "pull request",
	githubIssueSubcommandNameConstant:   "issue",
	githubSecretSubcommandNameConstant:  "secrets",
	githubReleaseSubcommandNameConstant: "release",
}

var githubResourcePluralLabels = map[string]string{
	githubPullRequestSubcommandConstant: "pull requests",
	githubIssueSubcommandNameConstant:   "issues",
	githubSecretSubcommandNameConstant:  "secrets",
	githubReleaseSubcommandNameConstant: "releases",
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	var (
		templates messageTemplateSet
		subjects  []any
		matched   bool
	)

	switch command.Name {
	case CommandGit:
		templates, subjects, matched = formatter.resolveGitTemplates(command)
	case CommandGitHub:
		templates, subjects, matched = formatter.resolveGitHubTemplates(command)
	}

	if !matched {
		templates = messageTemplateSet{genericStartTemplateConstant, genericSuccessTemplateConstant, genericFailureTemplateConstant, genericExecutionFailureTemplateConstant}
		subjects = []any{formatter.formatCommandLabel(command)}
	}

	return formatter.render(templates, subjects, result, failure, stage)
}

func (formatter CommandMessageFormatter) render(templates messageTemplateSet, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		return fmt.Sprintf(failureSuffixTemplateConstant, fmt.Sprintf(templates.failure, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureSuffixTemplateConstant, fmt.Sprintf(templates.executionFailure, subjects...), formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) resolveGitTemplates(command ShellCommand) (messageTemplateSet, []any, bool) {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return messageTemplateSet{}, nil, false
	}
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch strings.TrimSpace(arguments[0]) {
	case gitInitSubcommandNameConstant:
		return gitInitMessages, []any{workingDirectory}, true
	case gitAddSubcommandNameConstant:
		target := formatter.extractFirstNonFlagArgument(arguments[1:])
		if len(target) == 0 && containsArgument(arguments, gitAllFlagConstant) {
			target = gitAllChangesLabelConstant
		}
		return gitAddMessages, []any{formatter.ensureValue(target), workingDirectory}, true
	case gitDiffSubcommandNameConstant:
		return gitDiffMessages, []any{workingDirectory}, true
	case gitCommitSubcommandNameConstant:
		return gitCommitMessages, []any{workingDirectory, formatter.ensureValue(findFlagValue(arguments, gitMessageFlagConstant))}, true
	case gitSymbolicRefSubcommandNameConstant:
		return gitCurrentBranchMessages, []any{workingDirectory}, true
	case gitRemoteSubcommandNameConstant:
		return formatter.resolveGitRemoteTemplates(arguments, workingDirectory)
	case gitPushSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
		return gitPushMessages, []any{formatter.ensureValue(strings.Join(references, ", ")), formatter.ensureValue(remoteName), workingDirectory}, true
	case gitPullSubcommandNameConstant:
		remoteName, references := formatter.extractRemoteAndReferences(arguments[1:])
		return gitPullRebaseMessages, []any{workingDirectory, formatter.ensureValue(remoteName), formatter.ensureValue(strings.Join(references, ", "))}, true
	case gitTagSubcommandNameConstant:
		return gitTagMessages, []any{formatter.ensureValue(formatter.extractTagName(arguments[1:])), workingDirectory}, true
	default:
		return messageTemplateSet{}, nil, false
	}
}

func (formatter CommandMessageFormatter) resolveGitRemoteTemplates(arguments []string, workingDirectory string) (messageTemplateSet, []any, bool) {
	if len(arguments) < 2 {
		return gitRemoteListMessages, []any{workingDirectory}, true
	}

	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	switch strings.TrimSpace(arguments[1]) {
	case gitRemoteAddSubcommandNameConstant:
		return gitRemoteAddMessages, []any{remoteName, workingDirectory, formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))}, true
	case gitRemoteRemoveSubcommandNameConstant:
		return gitRemoteRemoveMessages, []any{remoteName, workingDirectory}, true
	case gitRemoteGetURLSubcommandNameConstant:
		return gitRemoteLookupMessages, []any{remoteName, workingDirectory}, true
	case gitRemoteSetURLSubcommandNameConstant:
		return gitRemoteUpdateMessages, []any{remoteName, workingDirectory, formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))}, true
	default:
		return messageTemplateSet{}, nil, false
	}
}

func (formatter CommandMessageFormatter) resolveGitHubTemplates(command ShellCommand) (messageTemplateSet, []any, bool) {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return messageTemplateSet{}, nil, false
	}

	primary := strings.TrimSpace(arguments[0])
	secondary := strings.TrimSpace(formatter.argumentAtIndex(arguments, 1))
	repository := findFlagValue(arguments, githubRepoFlagConstant)
	if len(repository) == 0 {
		repository = githubCurrentRepositoryLabelConstant
	}

	switch primary {
	case githubVersionFlagConstant:
		return githubVersionMessages, nil, true
	case githubAuthSubcommandNameConstant:
		return githubAuthMessages, nil, true
	case githubRepoSubcommandNameConstant:
		return formatter.resolveGitHubRepoTemplates(arguments, secondary, repository)
	case githubGistSubcommandNameConstant:
		if secondary != githubCreateSubcommandNameConstant {
			return messageTemplateSet{}, nil, false
		}
		files := formatter.extractLeadingPositionalArguments(arguments[2:])
		return githubGistCreateMessages, []any{formatter.ensureValue(strings.Join(files, ", "))}, true
	case githubPullRequestSubcommandConstant, githubIssueSubcommandNameConstant, githubReleaseSubcommandNameConstant, githubSecretSubcommandNameConstant:
		return formatter.resolveGitHubResourceTemplates(arguments, primary, secondary, repository)
	case githubAPICommandNameConstant:
		return formatter.resolveGitHubAPITemplates(arguments)
	default:
		return messageTemplateSet{}, nil, false
	}
}

func (formatter CommandMessageFormatter) resolveGitHubRepoTemplates(arguments []string, subcommand string, repository string) (messageTemplateSet, []any, bool) {
	positional := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[2:]))
	switch subcommand {
	case githubListSubcommandNameConstant:
		owner := formatter.extractLeadingPositionalArguments(arguments[2:])
		if len(owner) == 0 {
			return githubRepoListMessages, []any{githubAuthenticatedOwnerLabelConstant}, true
		}
		return githubRepoListMessages, []any{owner[0]}, true
	case githubCreateSubcommandNameConstant:
		return githubRepoCreateMessages, []any{positional}, true
	case githubViewSubcommandNameConstant:
		return githubRepoViewMessages, []any{positional}, true
	case githubRenameSubcommandNameConstant:
		return githubRepoRenameMessages, []any{repository, positional}, true
	default:
		return messageTemplateSet{}, nil, false
	}
}

func (formatter CommandMessageFormatter) resolveGitHubResourceTemplates(arguments []string, resource string, subcommand string, repository string) (messageTemplateSet, []any, bool) {
	switch subcommand {
	case githubListSubcommandNameConstant:
		return githubResourceListMessages, []any{githubResourcePluralLabels[resource], repository}, true
	case githubCreateSubcommandNameConstant:
		return githubResourceCreateMessages, []any{githubResourceLabels[resource], repository}, true
	case githubSetSubcommandNameConstant:
		if resource != githubSecretSubcommandNameConstant {
			return messageTemplateSet{}, nil, false
		}
		return githubSecretSetMessages, []any{formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[2:])), repository}, true
	case githubDeleteSubcommandNameConstant:
		if resource != githubSecretSubcommandNameConstant {
			return messageTemplateSet{}, nil, false
		}
		return githubSecretDeleteMessages, []any{formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[2:])), repository}, true
	default:
		return messageTemplateSet{}, nil, false
	}
}

func (formatter CommandMessageFormatter) resolveGitHubAPITemplates(arguments []string) (messageTemplateSet, []any, bool) {
	endpoint := strings.TrimSpace(formatter.extractFirstNonFlagArgument(arguments[1:]))
	if endpoint == githubUserEndpointConstant {
		return githubUserMessages, nil, true
	}

	collaboratorIndex := strings.Index(endpoint, githubCollaboratorsSegmentConstant)
	if collaboratorIndex < 0 {
		return messageTemplateSet{}, nil, false
	}

	repository := strings.TrimPrefix(endpoint[:collaboratorIndex], "repos/")
	collaborator := strings.Trim(endpoint[collaboratorIndex+len(githubCollaboratorsSegmentConstant):], "/")
	switch findFlagValue(arguments, githubMethodFlagConstant) {
	case httpMethodPutConstant:
		return githubCollaboratorAddMessages, []any{formatter.ensureValue(collaborator), formatter.ensureValue(repository)}, true
	case httpMethodDeleteConstant:
		return githubCollaboratorRemoveMessages, []any{formatter.ensureValue(collaborator), formatter.ensureValue(repository)}, true
	default:
		return githubResourceListMessages, []any{"collaborators", formatter.ensureValue(repository)}, true
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// extractRemoteAndReferences skips flags and treats the first positional argument as the remote.
func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	positional := formatter.collectNonFlagArguments(arguments)
	if len(positional) == 0 {
		return emptyStringConstant, nil
	}
	return positional[0], positional[1:]
}

func (formatter CommandMessageFormatter) extractTagName(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if trimmed == gitMessageFlagConstant {
			index++
			continue
		}
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	positional := formatter.collectNonFlagArguments(arguments)
	if len(positional) == 0 {
		return emptyStringConstant
	}
	return positional[0]
}

// extractLeadingPositionalArguments returns the positional arguments that precede the first flag.
func (formatter CommandMessageFormatter) extractLeadingPositionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmed, flagPrefixConstant) {
			break
		}
		if len(trimmed) == 0 {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) collectNonFlagArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
