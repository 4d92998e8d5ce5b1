package gitrepo

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

const inspectRepositoryErrorTemplateConstant = "unable to inspect %s for a git repository: %w"

// Inspector reads repository state directly from disk.
type Inspector struct{}

// NewInspector constructs an Inspector.
func NewInspector() Inspector {
	return Inspector{}
}

// IsRepository reports whether repositoryPath itself holds a git repository.
// Parent directories are not searched, so a subdirectory of an existing
// repository is reported as absent.
func (Inspector) IsRepository(repositoryPath string) (bool, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return false, InvalidInputError{FieldName: repositoryPathFieldNameConstant, Message: requiredValueMessageConstant}
	}

	_, openError := gogit.PlainOpenWithOptions(trimmedRepositoryPath, &gogit.PlainOpenOptions{DetectDotGit: false})
	if openError == nil {
		return true, nil
	}
	if errors.Is(openError, gogit.ErrRepositoryNotExists) {
		return false, nil
	}
	return false, fmt.Errorf(inspectRepositoryErrorTemplateConstant, trimmedRepositoryPath, openError)
}
