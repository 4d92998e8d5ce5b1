package releases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghrepo/internal/gitrepo"
)

const (
	defaultRemoteNameConstant                = "origin"
	defaultMessageTemplateConstant           = "Release %s"
	missingExecutorMessageConstant           = "git executor not configured"
	missingRepositoryPathMessageConstant     = "repository path required"
	missingTagNameMessageConstant            = "tag name required"
	tagCreationErrorTemplateConstant         = "create tag %s: %w"
	tagPushErrorTemplateConstant             = "push tag %s to %s: %w"
	managerConstructionErrorTemplateConstant = "construct repository manager: %w"
)

var (
	// ErrGitExecutorNotConfigured indicates the service was constructed without a git executor.
	ErrGitExecutorNotConfigured = errors.New(missingExecutorMessageConstant)
	// ErrRepositoryPathRequired indicates the options omitted the repository path.
	ErrRepositoryPathRequired = errors.New(missingRepositoryPathMessageConstant)
	// ErrTagNameRequired indicates the options omitted the tag name.
	ErrTagNameRequired = errors.New(missingTagNameMessageConstant)
)

// ServiceDependencies wires collaborators for the release service.
type ServiceDependencies struct {
	GitExecutor gitrepo.GitExecutor
}

// Options configures a single tag release.
type Options struct {
	RepositoryPath  string
	TagName         string
	Message         string
	MessageTemplate string
	RemoteName      string
	DryRun          bool
}

// Result describes the tag that was (or would be) published.
type Result struct {
	RepositoryPath string `json:"repository_path" yaml:"repository_path"`
	TagName        string `json:"tag" yaml:"tag"`
	Message        string `json:"message" yaml:"message"`
	RemoteName     string `json:"remote" yaml:"remote"`
	DryRun         bool   `json:"dry_run" yaml:"dry_run"`
}

// Service annotates a tag and pushes it to a remote.
type Service struct {
	repositoryManager *gitrepo.RepositoryManager
}

// NewService constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	repositoryManager, managerError := gitrepo.NewRepositoryManager(dependencies.GitExecutor)
	if managerError != nil {
		return nil, fmt.Errorf(managerConstructionErrorTemplateConstant, managerError)
	}
	return &Service{repositoryManager: repositoryManager}, nil
}

// Release creates an annotated tag and pushes it. Dry runs resolve the plan without executing git.
func (service *Service) Release(executionContext context.Context, options Options) (Result, error) {
	repositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(repositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}
	tagName := strings.TrimSpace(options.TagName)
	if len(tagName) == 0 {
		return Result{}, ErrTagNameRequired
	}

	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	result := Result{
		RepositoryPath: repositoryPath,
		TagName:        tagName,
		Message:        resolveMessage(options, tagName),
		RemoteName:     remoteName,
		DryRun:         options.DryRun,
	}
	if options.DryRun {
		return result, nil
	}

	if tagError := service.repositoryManager.CreateAnnotatedTag(executionContext, repositoryPath, tagName, result.Message); tagError != nil {
		return Result{}, fmt.Errorf(tagCreationErrorTemplateConstant, tagName, tagError)
	}
	if pushError := service.repositoryManager.PushTag(executionContext, repositoryPath, remoteName, tagName); pushError != nil {
		return Result{}, fmt.Errorf(tagPushErrorTemplateConstant, tagName, remoteName, pushError)
	}

	return result, nil
}

func resolveMessage(options Options, tagName string) string {
	message := strings.TrimSpace(options.Message)
	if len(message) > 0 {
		return message
	}
	template := strings.TrimSpace(options.MessageTemplate)
	if len(template) == 0 || !strings.Contains(template, "%s") {
		template = defaultMessageTemplateConstant
	}
	return fmt.Sprintf(template, tagName)
}
