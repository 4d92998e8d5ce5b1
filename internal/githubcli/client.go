package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	repoSubcommandConstant                  = "repo"
	viewSubcommandConstant                  = "view"
	listSubcommandConstant                  = "list"
	createSubcommandConstant                = "create"
	renameSubcommandConstant                = "rename"
	setSubcommandConstant                   = "set"
	deleteSubcommandConstant                = "delete"
	authSubcommandConstant                  = "auth"
	statusSubcommandConstant                = "status"
	apiSubcommandConstant                   = "api"
	versionFlagConstant                     = "--version"
	jsonFlagConstant                        = "--json"
	repoFlagConstant                        = "--repo"
	limitFlagConstant                       = "--limit"
	methodFlagConstant                      = "-X"
	inputFlagConstant                       = "--input"
	stdinReferenceConstant                  = "-"
	acceptHeaderFlagConstant                = "-H"
	acceptHeaderValueConstant               = "Accept: application/vnd.github+json"
	userEndpointConstant                    = "user"
	repositoryFieldNameConstant             = "repository"
	requiredValueMessageConstant            = "value required"
	ownerRepositoryFormatMessageConstant    = "expected owner/repository"
	executorNotConfiguredMessageConstant    = "github cli executor not configured"
	emptyLoginMessageConstant               = "response did not include a login"
	repoViewJSONFieldsConstant              = "defaultBranchRef,nameWithOwner,description"
	ownerRepositorySeparatorConstant        = "/"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant   = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant    = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant       = "%s: %s"
	outputLineSeparatorConstant             = "\n"
	checkInstalledOperationNameConstant     = OperationName("CheckInstalled")
	checkAuthOperationNameConstant          = OperationName("CheckAuthentication")
	resolveUserOperationNameConstant        = OperationName("ResolveAuthenticatedUser")
	repositoryMetadataOperationNameConstant = OperationName("ResolveRepoMetadata")
)

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// RepositoryMetadata contains key details resolved from GitHub.
type RepositoryMetadata struct {
	NameWithOwner string
	Description   string
	DefaultBranch string
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrEmptyLogin indicates gh api user answered without a login.
	ErrEmptyLogin = errors.New(emptyLoginMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CheckInstalled confirms the gh executable can be started.
func (client *Client) CheckInstalled(executionContext context.Context) error {
	_, executionError := client.execute(executionContext, checkInstalledOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{versionFlagConstant},
	})
	return executionError
}

// CheckAuthentication confirms gh holds valid credentials for the default host.
func (client *Client) CheckAuthentication(executionContext context.Context) error {
	_, executionError := client.execute(executionContext, checkAuthOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, statusSubcommandConstant},
	})
	return executionError
}

// ResolveAuthenticatedUser returns the login of the account gh is authenticated as.
func (client *Client) ResolveAuthenticatedUser(executionContext context.Context) (string, error) {
	executionResult, executionError := client.execute(executionContext, resolveUserOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, userEndpointConstant},
	})
	if executionError != nil {
		return "", executionError
	}

	var response struct {
		Login string `json:"login"`
	}
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response); decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveUserOperationNameConstant, Cause: decodingError}
	}

	login := strings.TrimSpace(response.Login)
	if len(login) == 0 {
		return "", ResponseDecodingError{Operation: resolveUserOperationNameConstant, Cause: ErrEmptyLogin}
	}
	return login, nil
}

// ResolveRepoMetadata retrieves canonical metadata for a repository using gh repo view.
func (client *Client) ResolveRepoMetadata(executionContext context.Context, repository string) (RepositoryMetadata, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return RepositoryMetadata{}, validationError
	}

	executionResult, executionError := client.execute(executionContext, repositoryMetadataOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewJSONFieldsConstant,
		},
	})
	if executionError != nil {
		return RepositoryMetadata{}, executionError
	}

	var response struct {
		NameWithOwner    string `json:"nameWithOwner"`
		Description      string `json:"description"`
		DefaultBranchRef struct {
			Name string `json:"name"`
		} `json:"defaultBranchRef"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return RepositoryMetadata{}, ResponseDecodingError{Operation: repositoryMetadataOperationNameConstant, Cause: decodingError}
	}

	return RepositoryMetadata{
		NameWithOwner: response.NameWithOwner,
		Description:   response.Description,
		DefaultBranch: response.DefaultBranchRef.Name,
	}, nil
}

func (client *Client) execute(executionContext context.Context, operation OperationName, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if client == nil || client.executor == nil {
		return execshell.ExecutionResult{}, OperationError{Operation: operation, Cause: ErrExecutorNotConfigured}
	}
	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, details)
	if executionError != nil {
		return execshell.ExecutionResult{}, OperationError{Operation: operation, Cause: executionError}
	}
	return executionResult, nil
}

func decodeJSONResponse(operation OperationName, output string, target any) error {
	if decodingError := json.Unmarshal([]byte(output), target); decodingError != nil {
		return ResponseDecodingError{Operation: operation, Cause: decodingError}
	}
	return nil
}

// normalizeRepositoryIdentifier trims and validates an owner/repository pair.
func normalizeRepositoryIdentifier(repository string) (string, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}
	segments := strings.Split(repositoryIdentifier, ownerRepositorySeparatorConstant)
	if len(segments) != 2 || len(strings.TrimSpace(segments[0])) == 0 || len(strings.TrimSpace(segments[1])) == 0 {
		return "", InvalidInputError{FieldName: repositoryFieldNameConstant, Message: ownerRepositoryFormatMessageConstant}
	}
	return repositoryIdentifier, nil
}

func requireValue(fieldName string, value string) (string, error) {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return "", InvalidInputError{FieldName: fieldName, Message: requiredValueMessageConstant}
	}
	return trimmedValue, nil
}

// lastOutputLine returns the final non-empty line gh printed, which is where create commands report URLs.
func lastOutputLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), outputLineSeparatorConstant)
	for index := len(lines) - 1; index >= 0; index-- {
		trimmedLine := strings.TrimSpace(lines[index])
		if len(trimmedLine) > 0 {
			return trimmedLine
		}
	}
	return ""
}
