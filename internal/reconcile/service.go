package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/repos/shared"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	originRemoteNameConstant               = "origin"
	fallbackBranchNameConstant             = "main"
	defaultGitHostConstant                 = "github.com"
	currentDirectoryConstant               = "."
	loggerNotConfiguredMessageConstant     = "reconcile service logger not configured"
	fileSystemNotConfiguredMessageConstant = "reconcile service filesystem not configured"
	inspectorNotConfiguredMessageConstant  = "reconcile service repository inspector not configured"
	gitNotConfiguredMessageConstant        = "reconcile service git operations not configured"
	gitHubNotConfiguredMessageConstant     = "reconcile service github operations not configured"
	initializedStatusTemplateConstant      = "Initialized git repository in %s\n"
	existingLocalStatusTemplateConstant    = "Local git repository already exists in %s; skipping initialization\n"
	createdRemoteStatusTemplateConstant    = "Created GitHub repository %s\n"
	existingRemoteStatusTemplateConstant   = "Repository %s already exists on GitHub; skipping creation\n"
	alreadyLinkedStatusTemplateConstant    = "origin already points to %s; skipping relink\n"
	linkedStatusTemplateConstant           = "Linked origin to %s\n"
	noChangesStatusConstant                = "No changes to commit\n"
	committedStatusTemplateConstant        = "Committed changes: %s\n"
	pushRejectedStatusTemplateConstant     = "Push rejected; rebasing onto origin/%s and retrying once\n"
	pushedStatusTemplateConstant           = "Pushed %s to origin\n"
	nothingToPushStatusTemplateConstant    = "Nothing to push: %s has no commits\n"
	branchFallbackStatusTemplateConstant   = "Could not determine current branch; using %s\n"
	startLogMessageConstant                = "reconciliation started"
	finishLogMessageConstant               = "reconciliation finished"
	failureLogMessageConstant              = "reconciliation failed"
	truncatedListLogMessageConstant        = "repository list reached the configured limit; the existence check may miss repositories"
	logFieldReconciliationIDConstant       = "reconciliation_id"
	logFieldRepositoryPathConstant         = "repository_path"
	logFieldRepositoryNameConstant         = "repository_name"
	logFieldModeConstant                   = "mode"
	logFieldLimitConstant                  = "limit"
	logFieldErrorKindConstant              = "error_kind"
	logFieldPushedConstant                 = "pushed"
)

// GitOperations is the subset of gitrepo.RepositoryManager the reconciler drives.
type GitOperations interface {
	Initialize(executionContext context.Context, repositoryPath string) error
	StageAll(executionContext context.Context, repositoryPath string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	Commit(executionContext context.Context, repositoryPath string, message string) error
	CurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	HasCommits(executionContext context.Context, repositoryPath string) (bool, error)
	ListRemotes(executionContext context.Context, repositoryPath string) ([]string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	RemoveRemote(executionContext context.Context, repositoryPath string, remoteName string) (bool, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	Push(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
	PullRebase(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// GitHubOperations is the subset of githubcli.Client the reconciler drives.
type GitHubOperations interface {
	ListRepositories(executionContext context.Context, options githubcli.RepositoryListOptions) ([]string, error)
	CreateRepository(executionContext context.Context, options githubcli.RepositoryCreateOptions) error
	ResolveAuthenticatedUser(executionContext context.Context) (string, error)
}

// RepositoryInspector reports whether a directory already holds a repository.
type RepositoryInspector interface {
	IsRepository(repositoryPath string) (bool, error)
}

// IdentifierGenerator produces correlation identifiers for log entries.
type IdentifierGenerator func() string

var (
	// ErrLoggerNotConfigured indicates a missing logger dependency.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates a missing filesystem dependency.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
	// ErrInspectorNotConfigured indicates a missing repository inspector dependency.
	ErrInspectorNotConfigured = errors.New(inspectorNotConfiguredMessageConstant)
	// ErrGitOperationsNotConfigured indicates a missing git dependency.
	ErrGitOperationsNotConfigured = errors.New(gitNotConfiguredMessageConstant)
	// ErrGitHubOperationsNotConfigured indicates a missing GitHub dependency.
	ErrGitHubOperationsNotConfigured = errors.New(gitHubNotConfiguredMessageConstant)
)

// Dependencies wires collaborators required by Service.
type Dependencies struct {
	Logger              *zap.Logger
	FileSystem          shared.FileSystem
	Inspector           RepositoryInspector
	Git                 GitOperations
	GitHub              GitHubOperations
	HomeExpander        *pathutils.HomeExpander
	Output              io.Writer
	IdentifierGenerator IdentifierGenerator
}

// Options configures a single reconciliation.
type Options struct {
	RepositoryPath      string
	Mode                Mode
	CommitMessage       string
	GitHost             string
	RepositoryListLimit int
	Visibility          githubcli.RepositoryVisibility
}

// Service brings a local directory and its same-named GitHub repository into agreement.
type Service struct {
	logger              *zap.Logger
	fileSystem          shared.FileSystem
	inspector           RepositoryInspector
	git                 GitOperations
	gitHub              GitHubOperations
	homeExpander        *pathutils.HomeExpander
	output              io.Writer
	identifierGenerator IdentifierGenerator
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	switch {
	case dependencies.Logger == nil:
		return nil, ErrLoggerNotConfigured
	case dependencies.FileSystem == nil:
		return nil, ErrFileSystemNotConfigured
	case dependencies.Inspector == nil:
		return nil, ErrInspectorNotConfigured
	case dependencies.Git == nil:
		return nil, ErrGitOperationsNotConfigured
	case dependencies.GitHub == nil:
		return nil, ErrGitHubOperationsNotConfigured
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}
	identifierGenerator := dependencies.IdentifierGenerator
	if identifierGenerator == nil {
		identifierGenerator = uuid.NewString
	}
	homeExpander := dependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		logger:              dependencies.Logger,
		fileSystem:          dependencies.FileSystem,
		inspector:           dependencies.Inspector,
		git:                 dependencies.Git,
		gitHub:              dependencies.GitHub,
		homeExpander:        homeExpander,
		output:              output,
		identifierGenerator: identifierGenerator,
	}, nil
}

// ResolveTarget converts a user-supplied directory into an absolute path and the repository name derived from it.
func (service *Service) ResolveTarget(directory string) (RepoTarget, error) {
	trimmedDirectory := strings.TrimSpace(directory)
	if len(trimmedDirectory) == 0 {
		trimmedDirectory = currentDirectoryConstant
	}
	absolutePath, absError := service.fileSystem.Abs(service.homeExpander.Expand(trimmedDirectory))
	if absError != nil {
		return RepoTarget{}, &Failure{Kind: ErrorKindPathNotFound, Cause: absError}
	}
	cleanedPath := filepath.Clean(absolutePath)
	return RepoTarget{LocalPath: cleanedPath, Name: filepath.Base(cleanedPath)}, nil
}

// Reconcile runs the reconciliation for options and returns the steps performed.
// A terminal failure is recorded in Outcome.Error and returned as a *Failure.
func (service *Service) Reconcile(executionContext context.Context, options Options) (Outcome, error) {
	policy := PolicyForMode(options.Mode)
	outcome := Outcome{ReconciliationID: service.identifierGenerator(), Mode: policy.Mode}
	logger := service.logger.With(
		zap.String(logFieldReconciliationIDConstant, outcome.ReconciliationID),
		zap.String(logFieldModeConstant, string(policy.Mode)),
	)

	target, targetError := service.ResolveTarget(options.RepositoryPath)
	if targetError != nil {
		return service.fail(logger, outcome, targetError)
	}
	outcome.Target = target
	logger = logger.With(zap.String(logFieldRepositoryPathConstant, target.LocalPath), zap.String(logFieldRepositoryNameConstant, target.Name))
	logger.Info(startLogMessageConstant)

	if failure := service.ensureDirectory(target); failure != nil {
		return service.fail(logger, outcome, failure)
	}

	if failure := service.ensureLocalRepository(executionContext, policy, target, &outcome); failure != nil {
		return service.fail(logger, outcome, failure)
	}

	if failure := service.ensureRemoteRepository(executionContext, logger, policy, options, target, &outcome); failure != nil {
		return service.fail(logger, outcome, failure)
	}

	commitMessage := strings.TrimSpace(options.CommitMessage)
	if len(commitMessage) == 0 {
		commitMessage = policy.DefaultCommitMessage
	}
	if failure := service.commitChanges(executionContext, target, commitMessage, &outcome); failure != nil {
		return service.fail(logger, outcome, failure)
	}

	outcome.Branch = service.resolveBranch(executionContext, target)
	outcome.Remote.DefaultBranch = outcome.Branch
	if !outcome.Committed && !service.hasCommits(executionContext, target) {
		service.printf(nothingToPushStatusTemplateConstant, outcome.Branch)
		logger.Info(finishLogMessageConstant, zap.Bool(logFieldPushedConstant, outcome.Pushed))
		return outcome, nil
	}
	if failure := service.pushWithSingleRetry(executionContext, target, &outcome); failure != nil {
		return service.fail(logger, outcome, failure)
	}

	logger.Info(finishLogMessageConstant, zap.Bool(logFieldPushedConstant, outcome.Pushed))
	return outcome, nil
}

func (service *Service) ensureDirectory(target RepoTarget) *Failure {
	fileInfo, statError := service.fileSystem.Stat(target.LocalPath)
	if statError != nil {
		return &Failure{Kind: ErrorKindPathNotFound, Cause: statError}
	}
	if !fileInfo.IsDir() {
		return &Failure{Kind: ErrorKindPathNotFound, Cause: fmt.Errorf("%s: %w", target.LocalPath, ErrPathNotDirectory)}
	}
	return nil
}

func (service *Service) ensureLocalRepository(executionContext context.Context, policy Policy, target RepoTarget, outcome *Outcome) *Failure {
	isRepository, inspectionError := service.inspector.IsRepository(target.LocalPath)
	if inspectionError != nil {
		return &Failure{Kind: ErrorKindRepositoryInitFailed, Cause: inspectionError}
	}
	if isRepository {
		service.printf(existingLocalStatusTemplateConstant, target.LocalPath)
		return nil
	}
	if !policy.MayInitializeLocal {
		return &Failure{Kind: ErrorKindLocalRepositoryMissing, Cause: fmt.Errorf("%s: %w", target.LocalPath, ErrLocalRepositoryMissing)}
	}
	if initializationError := service.git.Initialize(executionContext, target.LocalPath); initializationError != nil {
		return &Failure{Kind: ErrorKindRepositoryInitFailed, Cause: initializationError}
	}
	outcome.Initialized = true
	service.printf(initializedStatusTemplateConstant, target.LocalPath)
	return nil
}

func (service *Service) ensureRemoteRepository(executionContext context.Context, logger *zap.Logger, policy Policy, options Options, target RepoTarget, outcome *Outcome) *Failure {
	listLimit := options.RepositoryListLimit
	if listLimit <= 0 {
		listLimit = githubcli.DefaultRepositoryListLimit()
	}
	repositoryNames, listError := service.gitHub.ListRepositories(executionContext, githubcli.RepositoryListOptions{ResultLimit: listLimit})
	if listError != nil {
		return &Failure{Kind: ErrorKindRemoteQueryFailed, Cause: listError}
	}
	if len(repositoryNames) >= listLimit {
		logger.Warn(truncatedListLogMessageConstant, zap.Int(logFieldLimitConstant, listLimit))
	}

	outcome.Remote.Exists = containsRepositoryName(repositoryNames, target.Name)
	if !outcome.Remote.Exists {
		if !policy.MayCreateRemote {
			return &Failure{Kind: ErrorKindRemoteRepositoryMissing, Cause: fmt.Errorf("%s: %w", target.Name, ErrRemoteRepositoryMissing)}
		}
		creationError := service.gitHub.CreateRepository(executionContext, githubcli.RepositoryCreateOptions{
			Name:           target.Name,
			RepositoryPath: target.LocalPath,
			Visibility:     options.Visibility,
			RemoteName:     originRemoteNameConstant,
		})
		if creationError != nil {
			return &Failure{Kind: ErrorKindRemoteCreateFailed, Cause: creationError}
		}
		outcome.CreatedOnRemote = true
		service.printf(createdRemoteStatusTemplateConstant, target.Name)
		return nil
	}

	service.printf(existingRemoteStatusTemplateConstant, target.Name)
	return service.linkOrigin(executionContext, options, target, outcome)
}

func (service *Service) linkOrigin(executionContext context.Context, options Options, target RepoTarget, outcome *Outcome) *Failure {
	username, userError := service.gitHub.ResolveAuthenticatedUser(executionContext)
	if userError != nil {
		return &Failure{Kind: ErrorKindRemoteQueryFailed, Cause: userError}
	}
	outcome.Remote.Username = username

	gitHost := strings.TrimSpace(options.GitHost)
	if len(gitHost) == 0 {
		gitHost = defaultGitHostConstant
	}
	remoteURL, urlError := gitrepo.BuildHTTPSRemoteURL(gitHost, username, target.Name)
	if urlError != nil {
		return &Failure{Kind: ErrorKindRemoteLinkFailed, Cause: urlError}
	}
	outcome.RemoteURL = remoteURL

	remoteNames, listError := service.git.ListRemotes(executionContext, target.LocalPath)
	if listError != nil {
		return &Failure{Kind: ErrorKindRemoteLinkFailed, Cause: listError}
	}
	if slices.Contains(remoteNames, originRemoteNameConstant) {
		currentURL, lookupError := service.git.GetRemoteURL(executionContext, target.LocalPath, originRemoteNameConstant)
		if lookupError == nil && sameRemote(currentURL, gitHost, username, target.Name) {
			service.printf(alreadyLinkedStatusTemplateConstant, currentURL)
			outcome.RemoteURL = currentURL
			return nil
		}
		if _, removeError := service.git.RemoveRemote(executionContext, target.LocalPath, originRemoteNameConstant); removeError != nil {
			return &Failure{Kind: ErrorKindRemoteLinkFailed, Cause: removeError}
		}
	}

	if addError := service.git.AddRemote(executionContext, target.LocalPath, originRemoteNameConstant, remoteURL); addError != nil {
		return &Failure{Kind: ErrorKindRemoteLinkFailed, Cause: addError}
	}
	outcome.Linked = true
	service.printf(linkedStatusTemplateConstant, remoteURL)
	return nil
}

func (service *Service) commitChanges(executionContext context.Context, target RepoTarget, commitMessage string, outcome *Outcome) *Failure {
	if stageError := service.git.StageAll(executionContext, target.LocalPath); stageError != nil {
		return &Failure{Kind: ErrorKindStageFailed, Cause: stageError}
	}
	hasChanges, inspectionError := service.git.HasStagedChanges(executionContext, target.LocalPath)
	if inspectionError != nil {
		return &Failure{Kind: ErrorKindStageFailed, Cause: inspectionError}
	}
	if !hasChanges {
		service.printf(noChangesStatusConstant)
		return nil
	}
	if commitError := service.git.Commit(executionContext, target.LocalPath, commitMessage); commitError != nil {
		return &Failure{Kind: ErrorKindCommitFailed, Cause: commitError}
	}
	outcome.Committed = true
	service.printf(committedStatusTemplateConstant, commitMessage)
	return nil
}

func (service *Service) resolveBranch(executionContext context.Context, target RepoTarget) string {
	branchName, branchError := service.git.CurrentBranch(executionContext, target.LocalPath)
	if branchError != nil || len(strings.TrimSpace(branchName)) == 0 {
		service.printf(branchFallbackStatusTemplateConstant, fallbackBranchNameConstant)
		return fallbackBranchNameConstant
	}
	return strings.TrimSpace(branchName)
}

// hasCommits reports false only when git confirms HEAD is unborn; an inconclusive check lets the push decide.
func (service *Service) hasCommits(executionContext context.Context, target RepoTarget) bool {
	hasCommits, inspectionError := service.git.HasCommits(executionContext, target.LocalPath)
	return hasCommits || inspectionError != nil
}

// pushWithSingleRetry pushes once, and on rejection rebases once and pushes once more.
func (service *Service) pushWithSingleRetry(executionContext context.Context, target RepoTarget, outcome *Outcome) *Failure {
	outcome.PushAttempts++
	firstPushError := service.git.Push(executionContext, target.LocalPath, originRemoteNameConstant, outcome.Branch)
	if firstPushError == nil {
		outcome.Pushed = true
		service.printf(pushedStatusTemplateConstant, outcome.Branch)
		return nil
	}

	service.printf(pushRejectedStatusTemplateConstant, outcome.Branch)
	if rebaseError := service.git.PullRebase(executionContext, target.LocalPath, originRemoteNameConstant, outcome.Branch); rebaseError != nil {
		return &Failure{Kind: ErrorKindPushConflictUnresolved, Cause: errors.Join(firstPushError, rebaseError)}
	}
	outcome.Rebased = true

	outcome.PushAttempts++
	if retryError := service.git.Push(executionContext, target.LocalPath, originRemoteNameConstant, outcome.Branch); retryError != nil {
		return &Failure{Kind: ErrorKindPushConflictUnresolved, Cause: retryError}
	}
	outcome.Pushed = true
	service.printf(pushedStatusTemplateConstant, outcome.Branch)
	return nil
}

func (service *Service) fail(logger *zap.Logger, outcome Outcome, err error) (Outcome, error) {
	var failure *Failure
	if !errors.As(err, &failure) {
		failure = &Failure{Kind: ErrorKindPathNotFound, Cause: err}
	}
	outcome.Error = failure
	logger.Error(failureLogMessageConstant, zap.String(logFieldErrorKindConstant, string(failure.Kind)), zap.Error(failure.Cause))
	return outcome, failure
}

func (service *Service) printf(format string, arguments ...any) {
	fmt.Fprintf(service.output, format, arguments...)
}

// containsRepositoryName matches case-insensitively because GitHub repository names are case-insensitive.
func containsRepositoryName(names []string, expected string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), expected) {
			return true
		}
	}
	return false
}

func sameRemote(remoteURL string, host string, owner string, repository string) bool {
	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURL)
	if parseError != nil {
		return false
	}
	return strings.EqualFold(parsedRemote.Host, host) &&
		strings.EqualFold(parsedRemote.Owner, owner) &&
		strings.EqualFold(parsedRemote.Repository, repository)
}
