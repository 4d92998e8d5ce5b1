package dependencies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghrepo/internal/gitrepo"
	"github.com/temirov/ghrepo/internal/repos/shared"
)

const (
	remoteReaderNotConfiguredMessageConstant = "remote reader not configured"
	originLookupErrorTemplateConstant        = "determine repository from %s remote in %s (pass --repo OWNER/NAME): %w"
)

// ErrRemoteReaderNotConfigured indicates identifier resolution needed the origin remote without a way to read it.
var ErrRemoteReaderNotConfigured = errors.New(remoteReaderNotConfiguredMessageConstant)

// RemoteURLReader reads a configured remote URL.
type RemoteURLReader interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// ResolveRepositoryIdentifier prefers an explicit OWNER/NAME and otherwise derives it from the origin remote of workingDirectory.
func ResolveRepositoryIdentifier(executionContext context.Context, explicitIdentifier string, reader RemoteURLReader, workingDirectory string) (shared.RepositoryIdentifier, error) {
	if len(strings.TrimSpace(explicitIdentifier)) > 0 {
		return shared.ParseRepositoryIdentifier(explicitIdentifier)
	}
	if reader == nil {
		return shared.RepositoryIdentifier{}, ErrRemoteReaderNotConfigured
	}

	remoteURL, remoteError := reader.GetRemoteURL(executionContext, workingDirectory, shared.OriginRemoteNameConstant)
	if remoteError != nil {
		return shared.RepositoryIdentifier{}, fmt.Errorf(originLookupErrorTemplateConstant, shared.OriginRemoteNameConstant, workingDirectory, remoteError)
	}
	parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURL)
	if parseError != nil {
		return shared.RepositoryIdentifier{}, fmt.Errorf(originLookupErrorTemplateConstant, shared.OriginRemoteNameConstant, workingDirectory, parseError)
	}
	return shared.RepositoryIdentifier{Owner: parsedRemote.Owner, Name: parsedRemote.Repository}, nil
}
