package dependencies

import (
	"time"

	"go.uber.org/zap"

	"github.com/temirov/ghrepo/internal/execshell"
	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/repos/filesystem"
	"github.com/temirov/ghrepo/internal/repos/shared"
	"github.com/temirov/ghrepo/internal/ui"
)

// ExecutorOptions tunes the default shell executor.
type ExecutorOptions struct {
	HumanReadable  bool
	CommandTimeout time.Duration
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging routes command lifecycle events through the console logger.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, options ExecutorOptions) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	shellExecutor = shellExecutor.WithCommandTimeout(options.CommandTimeout)
	if options.HumanReadable {
		shellExecutor = shellExecutor.WithObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

// ResolveRepositoryManager constructs a git repository manager over the executor.
func ResolveRepositoryManager(executor shared.GitExecutor) (*gitrepo.RepositoryManager, error) {
	return gitrepo.NewRepositoryManager(executor)
}

// ResolveGitHubClient constructs a GitHub CLI client over the executor.
func ResolveGitHubClient(executor shared.GitExecutor) (*githubcli.Client, error) {
	return githubcli.NewClient(executor)
}
