package githubcli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	collaboratorEndpointTemplateConstant    = "repos/%s/collaborators/%s"
	collaboratorsEndpointTemplateConstant   = "repos/%s/collaborators?per_page=100"
	httpMethodPutConstant                   = "PUT"
	httpMethodDeleteConstant                = "DELETE"
	collaboratorFieldNameConstant           = "collaborator"
	defaultCollaboratorPermissionConstant   = CollaboratorPermission("push")
	addCollaboratorOperationNameConstant    = OperationName("AddCollaborator")
	removeCollaboratorOperationNameConstant = OperationName("RemoveCollaborator")
	listCollaboratorsOperationNameConstant  = OperationName("ListCollaborators")
)

// CollaboratorPermission is the repository role granted to a collaborator.
type CollaboratorPermission string

// Collaborator permission enumerations.
const (
	CollaboratorPermissionPull     CollaboratorPermission = CollaboratorPermission("pull")
	CollaboratorPermissionTriage   CollaboratorPermission = CollaboratorPermission("triage")
	CollaboratorPermissionPush     CollaboratorPermission = CollaboratorPermission("push")
	CollaboratorPermissionMaintain CollaboratorPermission = CollaboratorPermission("maintain")
	CollaboratorPermissionAdmin    CollaboratorPermission = CollaboratorPermission("admin")
)

// Collaborator describes a user with access to a repository.
type Collaborator struct {
	Login    string `json:"login" yaml:"login"`
	RoleName string `json:"role_name" yaml:"role"`
}

// AddCollaborator invites username to the repository with the given permission.
// An empty permission grants push access.
func (client *Client) AddCollaborator(executionContext context.Context, repository string, username string, permission CollaboratorPermission) error {
	endpoint, endpointError := collaboratorEndpoint(repository, username)
	if endpointError != nil {
		return endpointError
	}
	if len(strings.TrimSpace(string(permission))) == 0 {
		permission = defaultCollaboratorPermissionConstant
	}

	payload := struct {
		Permission string `json:"permission"`
	}{Permission: string(permission)}
	payloadBytes, encodingError := json.Marshal(payload)
	if encodingError != nil {
		return PayloadEncodingError{Operation: addCollaboratorOperationNameConstant, Cause: encodingError}
	}

	_, executionError := client.execute(executionContext, addCollaboratorOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			endpoint,
			methodFlagConstant,
			httpMethodPutConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	})
	return executionError
}

// RemoveCollaborator revokes username's access to the repository.
func (client *Client) RemoveCollaborator(executionContext context.Context, repository string, username string) error {
	endpoint, endpointError := collaboratorEndpoint(repository, username)
	if endpointError != nil {
		return endpointError
	}

	_, executionError := client.execute(executionContext, removeCollaboratorOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			endpoint,
			methodFlagConstant,
			httpMethodDeleteConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	})
	return executionError
}

// ListCollaborators returns the first page of up to one hundred collaborators.
func (client *Client) ListCollaborators(executionContext context.Context, repository string) ([]Collaborator, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return nil, validationError
	}

	executionResult, executionError := client.execute(executionContext, listCollaboratorsOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(collaboratorsEndpointTemplateConstant, repositoryIdentifier),
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
	})
	if executionError != nil {
		return nil, executionError
	}

	collaborators := []Collaborator{}
	if decodingError := decodeJSONResponse(listCollaboratorsOperationNameConstant, executionResult.StandardOutput, &collaborators); decodingError != nil {
		return nil, decodingError
	}
	return collaborators, nil
}

func collaboratorEndpoint(repository string, username string) (string, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return "", validationError
	}
	collaborator, collaboratorError := requireValue(collaboratorFieldNameConstant, username)
	if collaboratorError != nil {
		return "", collaboratorError
	}
	return fmt.Sprintf(collaboratorEndpointTemplateConstant, repositoryIdentifier, collaborator), nil
}
