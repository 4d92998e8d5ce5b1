package rename

import (
	"path/filepath"
	"strings"

	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/repos/shared"
)

const defaultGitHostConstant = "github.com"

// Plan describes every change a rename will apply.
type Plan struct {
	Source          shared.RepositoryIdentifier
	Target          shared.RepositoryIdentifier
	NewRemoteURL    string
	CurrentPath     string
	NewPath         string
	RenameDirectory bool
}

// DirectoryUnchanged reports whether the local folder already carries the new name.
func (plan Plan) DirectoryUnchanged() bool {
	return !plan.RenameDirectory || plan.CurrentPath == plan.NewPath
}

// CaseOnlyDirectoryRename reports whether the folder rename differs only by letter case.
func (plan Plan) CaseOnlyDirectoryRename() bool {
	return plan.RenameDirectory && strings.EqualFold(plan.CurrentPath, plan.NewPath) && plan.CurrentPath != plan.NewPath
}

// Planner derives rename plans from the repository's current state.
type Planner struct {
	gitHost string
}

// NewPlanner constructs a planner that builds remotes on gitHost when the current origin cannot be parsed.
func NewPlanner(gitHost string) Planner {
	trimmedHost := strings.TrimSpace(gitHost)
	if len(trimmedHost) == 0 {
		trimmedHost = defaultGitHostConstant
	}
	return Planner{gitHost: trimmedHost}
}

// Plan computes the rename of source to newName for the repository at absolutePath.
// The host of currentRemoteURL wins over the planner's default when it parses.
func (planner Planner) Plan(absolutePath string, source shared.RepositoryIdentifier, currentRemoteURL string, newName string, renameDirectory bool) (Plan, error) {
	trimmedNewName := strings.TrimSpace(newName)
	gitHost := planner.gitHost
	if parsedRemote, parseError := gitrepo.ParseRemoteURL(currentRemoteURL); parseError == nil && len(parsedRemote.Host) > 0 {
		gitHost = parsedRemote.Host
	}

	newRemoteURL, urlError := gitrepo.BuildHTTPSRemoteURL(gitHost, source.Owner, trimmedNewName)
	if urlError != nil {
		return Plan{}, urlError
	}

	cleanedPath := filepath.Clean(absolutePath)
	plan := Plan{
		Source:          source,
		Target:          shared.RepositoryIdentifier{Owner: source.Owner, Name: trimmedNewName},
		NewRemoteURL:    newRemoteURL,
		CurrentPath:     cleanedPath,
		NewPath:         cleanedPath,
		RenameDirectory: renameDirectory,
	}
	if renameDirectory {
		plan.NewPath = filepath.Join(filepath.Dir(cleanedPath), trimmedNewName)
	}
	return plan, nil
}
