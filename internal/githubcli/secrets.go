package githubcli

import (
	"context"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	secretSubcommandConstant          = "secret"
	secretNameFieldNameConstant       = "secret_name"
	secretValueFieldNameConstant      = "secret_value"
	secretJSONFieldsConstant          = "name,updatedAt"
	setSecretOperationNameConstant    = OperationName("SetSecret")
	listSecretsOperationNameConstant  = OperationName("ListSecrets")
	deleteSecretOperationNameConstant = OperationName("DeleteSecret")
)

// Secret describes a repository Actions secret. Values are never readable.
type Secret struct {
	Name      string `json:"name" yaml:"name"`
	UpdatedAt string `json:"updatedAt" yaml:"updated_at"`
}

// SetSecret creates or replaces a repository secret. The value travels over standard input.
func (client *Client) SetSecret(executionContext context.Context, repository string, name string, value string) error {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return validationError
	}
	secretName, nameError := requireValue(secretNameFieldNameConstant, name)
	if nameError != nil {
		return nameError
	}
	if len(value) == 0 {
		return InvalidInputError{FieldName: secretValueFieldNameConstant, Message: requiredValueMessageConstant}
	}

	_, executionError := client.execute(executionContext, setSecretOperationNameConstant, execshell.CommandDetails{
		Arguments:     []string{secretSubcommandConstant, setSubcommandConstant, secretName, repoFlagConstant, repositoryIdentifier},
		StandardInput: []byte(value),
	})
	return executionError
}

// ListSecrets returns the secret names configured for the repository.
func (client *Client) ListSecrets(executionContext context.Context, repository string) ([]Secret, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return nil, validationError
	}

	executionResult, executionError := client.execute(executionContext, listSecretsOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{secretSubcommandConstant, listSubcommandConstant, repoFlagConstant, repositoryIdentifier, jsonFlagConstant, secretJSONFieldsConstant},
	})
	if executionError != nil {
		return nil, executionError
	}

	secrets := []Secret{}
	if decodingError := decodeJSONResponse(listSecretsOperationNameConstant, executionResult.StandardOutput, &secrets); decodingError != nil {
		return nil, decodingError
	}
	return secrets, nil
}

// DeleteSecret removes a repository secret.
func (client *Client) DeleteSecret(executionContext context.Context, repository string, name string) error {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return validationError
	}
	secretName, nameError := requireValue(secretNameFieldNameConstant, name)
	if nameError != nil {
		return nameError
	}

	_, executionError := client.execute(executionContext, deleteSecretOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{secretSubcommandConstant, deleteSubcommandConstant, secretName, repoFlagConstant, repositoryIdentifier},
	})
	return executionError
}
