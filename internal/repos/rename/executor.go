package rename

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/repos/shared"
)

const (
	planRemoteMessage               = "PLAN-OK: rename %s → %s\n"
	planRelinkMessage               = "PLAN-OK: origin → %s\n"
	planDirectoryMessage            = "PLAN-OK: %s → %s\n"
	planCaseOnlyMessage             = "PLAN-CASE-ONLY: %s → %s (two-step move required)\n"
	planSkipDirectoryMessage        = "PLAN-SKIP (already named): %s\n"
	promptTemplate                  = "Rename folder '%s' → '%s'? [y/N] "
	canonicalSourceMessage          = "GitHub reports %s as %s\n"
	skipDirectoryMessage            = "SKIP folder rename: %s\n"
	remoteRenamedMessage            = "Renamed %s → %s\n"
	remoteRelinkedMessage           = "Updated origin → %s\n"
	directoryRenamedMessage         = "Renamed %s → %s\n"
	intermediateRenameTemplate      = "%s.rename.%d"
	intermediateRenameAttemptsLimit = 5
	missingFileSystemMessage        = "rename filesystem not configured"
	missingGitManagerMessage        = "rename git manager not configured"
	missingGitHubMessage            = "rename github client not configured"
	invalidNewNameMessage           = "new repository name must be a single path segment"
	alreadyNamedMessage             = "repository already has the requested name"
	targetExistsMessage             = "target directory already exists"
	notDirectoryMessage             = "repository path is not a directory"
	directoryRenameFailedMessage    = "folder rename failed"
	pathErrorTemplate               = "%s: %w"
	remoteRenameErrorTemplate       = "rename %s on GitHub: %w"
	relinkErrorTemplate             = "point origin at %s: %w"
	sourceResolutionErrorTemplate   = "resolve repository owner for %s: %w"
	directoryRenameErrorTemplate    = "%s → %s: %w"
	promptErrorTemplate             = "confirm folder rename: %w"
)

var (
	// ErrFileSystemNotConfigured indicates a missing filesystem dependency.
	ErrFileSystemNotConfigured = errors.New(missingFileSystemMessage)
	// ErrGitManagerNotConfigured indicates a missing git dependency.
	ErrGitManagerNotConfigured = errors.New(missingGitManagerMessage)
	// ErrGitHubNotConfigured indicates a missing GitHub dependency.
	ErrGitHubNotConfigured = errors.New(missingGitHubMessage)
	// ErrInvalidNewName indicates an empty name or one containing a path separator.
	ErrInvalidNewName = errors.New(invalidNewNameMessage)
	// ErrAlreadyNamed indicates the remote already carries the requested name.
	ErrAlreadyNamed = errors.New(alreadyNamedMessage)
	// ErrTargetExists indicates the destination folder is taken.
	ErrTargetExists = errors.New(targetExistsMessage)
	// ErrNotDirectory indicates the repository path is a file.
	ErrNotDirectory = errors.New(notDirectoryMessage)
	// ErrDirectoryRenameFailed indicates every rename attempt failed.
	ErrDirectoryRenameFailed = errors.New(directoryRenameFailedMessage)
)

// GitRemoteManager is the remote subset of gitrepo.RepositoryManager rename drives.
type GitRemoteManager interface {
	shared.GitRemoteManager
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
}

// Options configures a rename execution.
type Options struct {
	RepositoryPath     string
	NewName            string
	GitHost            string
	RenameDirectory    bool
	DryRun             bool
	ConfirmationPolicy shared.ConfirmationPolicy
}

// Dependencies supplies collaborators required to evaluate rename operations.
type Dependencies struct {
	FileSystem shared.FileSystem
	GitManager GitRemoteManager
	GitHub     shared.GitHubRepositoryRenamer
	Prompter   shared.ConfirmationPrompter
	Reporter   shared.Reporter
}

// Result records what the rename changed.
type Result struct {
	Plan             Plan
	RemoteRenamed    bool
	OriginUpdated    bool
	DirectoryRenamed bool
}

// Executor renames a repository on GitHub, relinks origin, and optionally renames the local folder.
type Executor struct {
	dependencies Dependencies
}

// NewExecutor validates dependencies and constructs an Executor.
func NewExecutor(dependencies Dependencies) (*Executor, error) {
	switch {
	case dependencies.FileSystem == nil:
		return nil, ErrFileSystemNotConfigured
	case dependencies.GitManager == nil:
		return nil, ErrGitManagerNotConfigured
	case dependencies.GitHub == nil:
		return nil, ErrGitHubNotConfigured
	}
	if dependencies.Reporter == nil {
		dependencies.Reporter = shared.NewWriterReporter(nil)
	}
	return &Executor{dependencies: dependencies}, nil
}

// Execute performs the rename workflow.
func (executor *Executor) Execute(executionContext context.Context, options Options) (Result, error) {
	newName := strings.TrimSpace(options.NewName)
	if len(newName) == 0 || strings.ContainsAny(newName, `/\`) || newName == "." || newName == ".." {
		return Result{}, ErrInvalidNewName
	}

	absolutePath, absError := executor.dependencies.FileSystem.Abs(options.RepositoryPath)
	if absError != nil {
		return Result{}, fmt.Errorf(pathErrorTemplate, options.RepositoryPath, absError)
	}
	fileInfo, statError := executor.dependencies.FileSystem.Stat(absolutePath)
	if statError != nil {
		return Result{}, fmt.Errorf(pathErrorTemplate, absolutePath, statError)
	}
	if !fileInfo.IsDir() {
		return Result{}, fmt.Errorf(pathErrorTemplate, absolutePath, ErrNotDirectory)
	}

	source, currentRemoteURL, sourceError := executor.resolveSource(executionContext, absolutePath)
	if sourceError != nil {
		return Result{}, sourceError
	}
	if source.Name == newName {
		return Result{}, fmt.Errorf(pathErrorTemplate, source.String(), ErrAlreadyNamed)
	}

	plan, planError := NewPlanner(options.GitHost).Plan(absolutePath, source, currentRemoteURL, newName, options.RenameDirectory)
	if planError != nil {
		return Result{}, planError
	}
	result := Result{Plan: plan}

	if !plan.DirectoryUnchanged() && !plan.CaseOnlyDirectoryRename() && executor.pathExists(plan.NewPath) {
		return result, fmt.Errorf(pathErrorTemplate, plan.NewPath, ErrTargetExists)
	}

	if options.DryRun {
		executor.printPlan(plan)
		return result, nil
	}

	renameDirectory := !plan.DirectoryUnchanged()
	if renameDirectory && options.ConfirmationPolicy.ShouldPrompt() && executor.dependencies.Prompter != nil {
		confirmed, promptError := executor.dependencies.Prompter.Confirm(fmt.Sprintf(promptTemplate, plan.CurrentPath, plan.NewPath))
		if promptError != nil {
			return result, fmt.Errorf(promptErrorTemplate, promptError)
		}
		if !confirmed {
			executor.dependencies.Reporter.Printf(skipDirectoryMessage, plan.CurrentPath)
			renameDirectory = false
		}
	}

	if renameError := executor.dependencies.GitHub.RenameRepository(executionContext, plan.Source.String(), plan.Target.Name); renameError != nil {
		return result, fmt.Errorf(remoteRenameErrorTemplate, plan.Source.String(), renameError)
	}
	result.RemoteRenamed = true
	executor.dependencies.Reporter.Printf(remoteRenamedMessage, plan.Source.String(), plan.Target.String())

	if relinkError := executor.relinkOrigin(executionContext, plan, currentRemoteURL); relinkError != nil {
		return result, fmt.Errorf(relinkErrorTemplate, plan.NewRemoteURL, relinkError)
	}
	result.OriginUpdated = true
	executor.dependencies.Reporter.Printf(remoteRelinkedMessage, plan.NewRemoteURL)

	if !renameDirectory {
		return result, nil
	}
	if directoryError := executor.performRename(plan.CurrentPath, plan.NewPath); directoryError != nil {
		return result, fmt.Errorf(directoryRenameErrorTemplate, plan.CurrentPath, plan.NewPath, directoryError)
	}
	result.DirectoryRenamed = true
	executor.dependencies.Reporter.Printf(directoryRenamedMessage, plan.CurrentPath, plan.NewPath)

	return result, nil
}

// resolveSource reads owner/name from origin, falling back to the authenticated user and folder name.
func (executor *Executor) resolveSource(executionContext context.Context, absolutePath string) (shared.RepositoryIdentifier, string, error) {
	currentRemoteURL, remoteError := executor.dependencies.GitManager.GetRemoteURL(executionContext, absolutePath, shared.OriginRemoteNameConstant)
	if remoteError == nil {
		if parsedRemote, parseError := gitrepo.ParseRemoteURL(currentRemoteURL); parseError == nil {
			source := shared.RepositoryIdentifier{Owner: parsedRemote.Owner, Name: parsedRemote.Repository}
			return executor.canonicalSource(executionContext, source), currentRemoteURL, nil
		}
	}

	owner, userError := executor.dependencies.GitHub.ResolveAuthenticatedUser(executionContext)
	if userError != nil {
		return shared.RepositoryIdentifier{}, "", fmt.Errorf(sourceResolutionErrorTemplate, absolutePath, userError)
	}
	source := shared.RepositoryIdentifier{Owner: owner, Name: filepath.Base(absolutePath)}
	return executor.canonicalSource(executionContext, source), "", nil
}

// canonicalSource follows GitHub's transfer and rename redirects so origin is relinked under the real owner.
// A failed lookup keeps source; the rename itself reports a missing repository.
func (executor *Executor) canonicalSource(executionContext context.Context, source shared.RepositoryIdentifier) shared.RepositoryIdentifier {
	metadata, metadataError := executor.dependencies.GitHub.ResolveRepoMetadata(executionContext, source.String())
	if metadataError != nil {
		return source
	}
	canonical, parseError := shared.ParseRepositoryIdentifier(metadata.NameWithOwner)
	if parseError != nil || canonical == source {
		return source
	}
	executor.dependencies.Reporter.Printf(canonicalSourceMessage, source.String(), canonical.String())
	return canonical
}

func (executor *Executor) relinkOrigin(executionContext context.Context, plan Plan, currentRemoteURL string) error {
	if len(currentRemoteURL) == 0 {
		return executor.dependencies.GitManager.AddRemote(executionContext, plan.CurrentPath, shared.OriginRemoteNameConstant, plan.NewRemoteURL)
	}
	return executor.dependencies.GitManager.SetRemoteURL(executionContext, plan.CurrentPath, shared.OriginRemoteNameConstant, plan.NewRemoteURL)
}

func (executor *Executor) printPlan(plan Plan) {
	executor.dependencies.Reporter.Printf(planRemoteMessage, plan.Source.String(), plan.Target.String())
	executor.dependencies.Reporter.Printf(planRelinkMessage, plan.NewRemoteURL)
	switch {
	case !plan.RenameDirectory:
		return
	case plan.DirectoryUnchanged():
		executor.dependencies.Reporter.Printf(planSkipDirectoryMessage, plan.CurrentPath)
	case plan.CaseOnlyDirectoryRename():
		executor.dependencies.Reporter.Printf(planCaseOnlyMessage, plan.CurrentPath, plan.NewPath)
	default:
		executor.dependencies.Reporter.Printf(planDirectoryMessage, plan.CurrentPath, plan.NewPath)
	}
}

func (executor *Executor) pathExists(path string) bool {
	_, statError := executor.dependencies.FileSystem.Stat(path)
	return statError == nil
}

// performRename falls back to a two-step move through an intermediate name for case-insensitive filesystems.
func (executor *Executor) performRename(oldAbsolutePath string, newAbsolutePath string) error {
	renameError := executor.dependencies.FileSystem.Rename(oldAbsolutePath, newAbsolutePath)
	if renameError == nil {
		return nil
	}

	for attempt := 0; attempt < intermediateRenameAttemptsLimit; attempt++ {
		intermediate := fmt.Sprintf(intermediateRenameTemplate, oldAbsolutePath, attempt)
		if executor.dependencies.FileSystem.Rename(oldAbsolutePath, intermediate) != nil {
			continue
		}
		if executor.dependencies.FileSystem.Rename(intermediate, newAbsolutePath) == nil {
			return nil
		}
		_ = executor.dependencies.FileSystem.Rename(intermediate, oldAbsolutePath)
	}

	return errors.Join(ErrDirectoryRenameFailed, renameError)
}
