package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	initSubcommandConstant                = "init"
	addSubcommandConstant                 = "add"
	allChangesFlagConstant                = "-A"
	diffSubcommandConstant                = "diff"
	cachedFlagConstant                    = "--cached"
	nameOnlyFlagConstant                  = "--name-only"
	commitSubcommandConstant              = "commit"
	messageFlagConstant                   = "-m"
	symbolicRefSubcommandConstant         = "symbolic-ref"
	shortFlagConstant                     = "--short"
	headReferenceConstant                 = "HEAD"
	revParseSubcommandConstant            = "rev-parse"
	verifyFlagConstant                    = "--verify"
	quietFlagConstant                     = "--quiet"
	unresolvedReferenceExitCodeConstant   = 1
	remoteSubcommandConstant              = "remote"
	remoteAddSubcommandConstant           = "add"
	remoteRemoveSubcommandConstant        = "remove"
	remoteGetURLSubcommandConstant        = "get-url"
	remoteSetURLSubcommandConstant        = "set-url"
	pushSubcommandConstant                = "push"
	setUpstreamFlagConstant               = "-u"
	pullSubcommandConstant                = "pull"
	rebaseFlagConstant                    = "--rebase"
	tagSubcommandConstant                 = "tag"
	annotatedFlagConstant                 = "-a"
	requiredValueMessageConstant          = "value required"
	executorNotConfiguredMessageConstant  = "git repository manager executor not configured"
	invalidInputErrorTemplateConstant     = "%s: %s"
	operationErrorTemplateConstant        = "%s failed for %s: %v"
	repositoryPathFieldNameConstant       = "repository_path"
	remoteNameFieldNameConstant           = "remote_name"
	remoteURLFieldNameConstant            = "remote_url"
	commitMessageFieldNameConstant        = "commit_message"
	branchNameFieldNameConstant           = "branch_name"
	tagNameFieldNameConstant              = "tag_name"
	tagMessageFieldNameConstant           = "tag_message"
	initializeOperationNameConstant       = OperationName("Initialize")
	stageAllOperationNameConstant         = OperationName("StageAll")
	stagedChangesOperationNameConstant    = OperationName("HasStagedChanges")
	commitOperationNameConstant           = OperationName("Commit")
	currentBranchOperationNameConstant    = OperationName("CurrentBranch")
	hasCommitsOperationNameConstant       = OperationName("HasCommits")
	listRemotesOperationNameConstant      = OperationName("ListRemotes")
	addRemoteOperationNameConstant        = OperationName("AddRemote")
	removeRemoteOperationNameConstant     = OperationName("RemoveRemote")
	getRemoteURLOperationNameConstant     = OperationName("GetRemoteURL")
	setRemoteURLOperationNameConstant     = OperationName("SetRemoteURL")
	pushOperationNameConstant             = OperationName("Push")
	pullRebaseOperationNameConstant       = OperationName("PullRebase")
	createTagOperationNameConstant        = OperationName("CreateAnnotatedTag")
	pushTagOperationNameConstant          = OperationName("PushTag")
	emptyCurrentBranchMessageConstant     = "git reported an empty branch name"
	outputLineSeparatorConstant           = "\n"
	outputWhitespaceCharactersConstant    = " \t\r"
	repositoryManagerExecutorFieldMessage = "executor"
)

// OperationName identifies a git workflow performed by RepositoryManager.
type OperationName string

// GitExecutor is the subset of execshell.ShellExecutor the manager needs.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

var (
	// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrGitExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrEmptyCurrentBranch indicates git answered the branch query without a name.
	ErrEmptyCurrentBranch = errors.New(emptyCurrentBranchMessageConstant)
)

// InvalidInputError reports a missing or malformed argument.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps a failed git invocation with the repository it targeted.
type OperationError struct {
	Operation      OperationName
	RepositoryPath string
	Cause          error
}

// Error describes the failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorTemplateConstant, operationError.Operation, operationError.RepositoryPath, operationError.Cause)
}

// Unwrap exposes the underlying execution error.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// RepositoryManager runs git operations against an explicit working directory.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// Initialize creates an empty repository in repositoryPath.
func (manager *RepositoryManager) Initialize(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.run(executionContext, initializeOperationNameConstant, repositoryPath, initSubcommandConstant)
	return executionError
}

// StageAll stages every change in the working tree, including deletions.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.run(executionContext, stageAllOperationNameConstant, repositoryPath, addSubcommandConstant, allChangesFlagConstant)
	return executionError
}

// HasStagedChanges reports whether the index differs from HEAD.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.run(executionContext, stagedChangesOperationNameConstant, repositoryPath, diffSubcommandConstant, cachedFlagConstant, nameOnlyFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(splitOutputLines(executionResult.StandardOutput)) > 0, nil
}

// Commit records the staged changes with the provided message.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, message string) error {
	if len(strings.TrimSpace(message)) == 0 {
		return InvalidInputError{FieldName: commitMessageFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.run(executionContext, commitOperationNameConstant, repositoryPath, commitSubcommandConstant, messageFlagConstant, message)
	return executionError
}

// CurrentBranch returns the branch HEAD points to. Unborn branches are reported by name as well.
func (manager *RepositoryManager) CurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.run(executionContext, currentBranchOperationNameConstant, repositoryPath, symbolicRefSubcommandConstant, shortFlagConstant, headReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	branchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(branchName) == 0 {
		return "", OperationError{Operation: currentBranchOperationNameConstant, RepositoryPath: repositoryPath, Cause: ErrEmptyCurrentBranch}
	}
	return branchName, nil
}

// HasCommits reports whether HEAD resolves to a commit. A freshly initialized repository reports false.
func (manager *RepositoryManager) HasCommits(executionContext context.Context, repositoryPath string) (bool, error) {
	_, executionError := manager.run(executionContext, hasCommitsOperationNameConstant, repositoryPath, revParseSubcommandConstant, verifyFlagConstant, quietFlagConstant, headReferenceConstant)
	if executionError == nil {
		return true, nil
	}
	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) && failedError.Result.ExitCode == unresolvedReferenceExitCodeConstant {
		return false, nil
	}
	return false, executionError
}

// ListRemotes returns the configured remote names.
func (manager *RepositoryManager) ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.run(executionContext, listRemotesOperationNameConstant, repositoryPath, remoteSubcommandConstant)
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(executionResult.StandardOutput), nil
}

// AddRemote registers remoteName pointing at remoteURL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remoteURL)) == 0 {
		return InvalidInputError{FieldName: remoteURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.run(executionContext, addRemoteOperationNameConstant, repositoryPath, remoteSubcommandConstant, remoteAddSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// RemoveRemote deletes remoteName. A remote that is not configured is treated as already removed.
func (manager *RepositoryManager) RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) (bool, error) {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return false, InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	remoteNames, listError := manager.ListRemotes(executionContext, repositoryPath)
	if listError != nil {
		return false, listError
	}
	if !containsValue(remoteNames, remoteName) {
		return false, nil
	}
	_, executionError := manager.run(executionContext, removeRemoteOperationNameConstant, repositoryPath, remoteSubcommandConstant, remoteRemoveSubcommandConstant, remoteName)
	if executionError != nil {
		return false, executionError
	}
	return true, nil
}

// GetRemoteURL returns the fetch URL configured for remoteName.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return "", InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	executionResult, executionError := manager.run(executionContext, getRemoteURLOperationNameConstant, repositoryPath, remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// SetRemoteURL points an existing remote at remoteURL.
func (manager *RepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remoteURL)) == 0 {
		return InvalidInputError{FieldName: remoteURLFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.run(executionContext, setRemoteURLOperationNameConstant, repositoryPath, remoteSubcommandConstant, remoteSetURLSubcommandConstant, remoteName, remoteURL)
	return executionError
}

// Push publishes branchName to remoteName and records it as the upstream.
func (manager *RepositoryManager) Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := validateRemoteAndBranch(remoteName, branchName); validationError != nil {
		return validationError
	}
	_, executionError := manager.run(executionContext, pushOperationNameConstant, repositoryPath, pushSubcommandConstant, setUpstreamFlagConstant, remoteName, branchName)
	return executionError
}

// PullRebase replays local commits on top of remoteName/branchName.
func (manager *RepositoryManager) PullRebase(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	if validationError := validateRemoteAndBranch(remoteName, branchName); validationError != nil {
		return validationError
	}
	_, executionError := manager.run(executionContext, pullRebaseOperationNameConstant, repositoryPath, pullSubcommandConstant, rebaseFlagConstant, remoteName, branchName)
	return executionError
}

// CreateAnnotatedTag creates tagName at HEAD with message.
func (manager *RepositoryManager) CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, message string) error {
	if len(strings.TrimSpace(tagName)) == 0 {
		return InvalidInputError{FieldName: tagNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(message)) == 0 {
		return InvalidInputError{FieldName: tagMessageFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.run(executionContext, createTagOperationNameConstant, repositoryPath, tagSubcommandConstant, annotatedFlagConstant, tagName, messageFlagConstant, message)
	return executionError
}

// PushTag publishes tagName to remoteName.
func (manager *RepositoryManager) PushTag(executionContext context.Context, repositoryPath string, remoteName string, tagName string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(tagName)) == 0 {
		return InvalidInputError{FieldName: tagNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	_, executionError := manager.run(executionContext, pushTagOperationNameConstant, repositoryPath, pushSubcommandConstant, remoteName, tagName)
	return executionError
}

func (manager *RepositoryManager) run(executionContext context.Context, operation OperationName, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	if manager == nil || manager.executor == nil {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: repositoryManagerExecutorFieldMessage, Message: executorNotConfiguredMessageConstant}
	}
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return execshell.ExecutionResult{}, InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: trimmedRepositoryPath,
	})
	if executionError != nil {
		return execshell.ExecutionResult{}, OperationError{Operation: operation, RepositoryPath: trimmedRepositoryPath, Cause: executionError}
	}
	return executionResult, nil
}

func validateRemoteAndBranch(remoteName string, branchName string) error {
	if len(strings.TrimSpace(remoteName)) == 0 {
		return InvalidInputError{FieldName: remoteNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(branchName)) == 0 {
		return InvalidInputError{FieldName: branchNameFieldNameConstant, Message: requiredValueMessageConstant}
	}
	return nil
}

func splitOutputLines(output string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(output, outputLineSeparatorConstant) {
		trimmedLine := strings.Trim(line, outputWhitespaceCharactersConstant)
		if len(trimmedLine) == 0 {
			continue
		}
		lines = append(lines, trimmedLine)
	}
	return lines
}

func containsValue(values []string, expected string) bool {
	for _, value := range values {
		if value == expected {
			return true
		}
	}
	return false
}
