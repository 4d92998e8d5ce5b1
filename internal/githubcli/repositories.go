package githubcli

import (
	"context"
	"strconv"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	repositoryNameFieldNameConstant          = "repository_name"
	repositoryPathFieldNameConstant          = "repository_path"
	newRepositoryNameFieldNameConstant       = "new_repository_name"
	repositoryNameJSONFieldConstant          = "name"
	sourceFlagPrefixConstant                 = "--source="
	remoteFlagPrefixConstant                 = "--remote="
	confirmFlagConstant                      = "--yes"
	currentDirectoryReferenceConstant        = "."
	defaultRemoteNameConstant                = "origin"
	repositoryListLimitDefaultValueConstant  = 1000
	listRepositoriesOperationNameConstant    = OperationName("ListRepositories")
	createRepositoryOperationNameConstant    = OperationName("CreateRepository")
	renameRepositoryOperationNameConstant    = OperationName("RenameRepository")
	repositoryVisibilityPublicFlagConstant   = "--public"
	repositoryVisibilityPrivateFlagConstant  = "--private"
	repositoryVisibilityInternalFlagConstant = "--internal"
)

// RepositoryVisibility selects who can see a newly created repository.
type RepositoryVisibility string

// Repository visibility enumerations.
const (
	RepositoryVisibilityPublic   RepositoryVisibility = RepositoryVisibility("public")
	RepositoryVisibilityPrivate  RepositoryVisibility = RepositoryVisibility("private")
	RepositoryVisibilityInternal RepositoryVisibility = RepositoryVisibility("internal")
)

// RepositoryListOptions configures ListRepositories.
type RepositoryListOptions struct {
	// Owner restricts the listing to a user or organization. Empty means the authenticated user.
	Owner       string
	ResultLimit int
}

// RepositoryCreateOptions configures CreateRepository.
type RepositoryCreateOptions struct {
	Name           string
	RepositoryPath string
	Visibility     RepositoryVisibility
	RemoteName     string
}

// DefaultRepositoryListLimit is the listing size used when callers do not specify one.
func DefaultRepositoryListLimit() int {
	return repositoryListLimitDefaultValueConstant
}

// ListRepositories returns repository names owned by the selected account.
func (client *Client) ListRepositories(executionContext context.Context, options RepositoryListOptions) ([]string, error) {
	resultLimit := options.ResultLimit
	if resultLimit <= 0 {
		resultLimit = repositoryListLimitDefaultValueConstant
	}

	arguments := []string{repoSubcommandConstant, listSubcommandConstant}
	if owner := strings.TrimSpace(options.Owner); len(owner) > 0 {
		arguments = append(arguments, owner)
	}
	arguments = append(arguments, jsonFlagConstant, repositoryNameJSONFieldConstant, limitFlagConstant, strconv.Itoa(resultLimit))

	executionResult, executionError := client.execute(executionContext, listRepositoriesOperationNameConstant, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return nil, executionError
	}

	var response []struct {
		Name string `json:"name"`
	}
	if decodingError := decodeJSONResponse(listRepositoriesOperationNameConstant, executionResult.StandardOutput, &response); decodingError != nil {
		return nil, decodingError
	}

	repositoryNames := make([]string, 0, len(response))
	for _, repositoryEntry := range response {
		repositoryNames = append(repositoryNames, repositoryEntry.Name)
	}
	return repositoryNames, nil
}

// CreateRepository creates a GitHub repository from the local repository at RepositoryPath
// and registers it as the configured remote.
func (client *Client) CreateRepository(executionContext context.Context, options RepositoryCreateOptions) error {
	repositoryName, nameError := requireValue(repositoryNameFieldNameConstant, options.Name)
	if nameError != nil {
		return nameError
	}
	repositoryPath, pathError := requireValue(repositoryPathFieldNameConstant, options.RepositoryPath)
	if pathError != nil {
		return pathError
	}

	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = defaultRemoteNameConstant
	}

	_, executionError := client.execute(executionContext, createRepositoryOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			createSubcommandConstant,
			repositoryName,
			visibilityFlag(options.Visibility),
			sourceFlagPrefixConstant + currentDirectoryReferenceConstant,
			remoteFlagPrefixConstant + remoteName,
		},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// RenameRepository renames owner/repository on GitHub to newName.
func (client *Client) RenameRepository(executionContext context.Context, repository string, newName string) error {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return validationError
	}
	trimmedNewName, nameError := requireValue(newRepositoryNameFieldNameConstant, newName)
	if nameError != nil {
		return nameError
	}

	_, executionError := client.execute(executionContext, renameRepositoryOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			renameSubcommandConstant,
			trimmedNewName,
			repoFlagConstant,
			repositoryIdentifier,
			confirmFlagConstant,
		},
	})
	return executionError
}

func visibilityFlag(visibility RepositoryVisibility) string {
	switch visibility {
	case RepositoryVisibilityPrivate:
		return repositoryVisibilityPrivateFlagConstant
	case RepositoryVisibilityInternal:
		return repositoryVisibilityInternalFlagConstant
	default:
		return repositoryVisibilityPublicFlagConstant
	}
}
