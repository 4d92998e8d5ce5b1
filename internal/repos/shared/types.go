package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/ghrepo/internal/execshell"
	"github.com/temirov/ghrepo/internal/githubcli"
)

// OriginRemoteNameConstant identifies the remote every workflow links and pushes to.
const OriginRemoteNameConstant = "origin"

// FileSystem exposes filesystem operations required by repository services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Rename(oldPath string, newPath string) error
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRemoteManager exposes the remote-level git operations rename depends on.
type GitRemoteManager interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
}

// GitHubRepositoryRenamer renames repositories on GitHub, identifies the authenticated account,
// and reports the canonical owner/name GitHub redirects a repository to.
type GitHubRepositoryRenamer interface {
	RenameRepository(executionContext context.Context, repository string, newName string) error
	ResolveAuthenticatedUser(executionContext context.Context) (string, error)
	ResolveRepoMetadata(executionContext context.Context, repository string) (githubcli.RepositoryMetadata, error)
}
