package githubcli

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	gistSubcommandConstant          = "gist"
	descriptionFlagConstant         = "--desc"
	publicFlagConstant              = "--public"
	gistFilesFieldNameConstant      = "files"
	missingGistURLMessageConstant   = "gh gist create did not print a URL"
	createGistOperationNameConstant = OperationName("CreateGist")
)

// ErrMissingGistURL indicates gh reported success without printing the gist URL.
var ErrMissingGistURL = errors.New(missingGistURLMessageConstant)

// GistCreateOptions configures CreateGist.
type GistCreateOptions struct {
	Files            []string
	Description      string
	Public           bool
	WorkingDirectory string
}

// CreateGist uploads the files as a gist and returns its URL.
func (client *Client) CreateGist(executionContext context.Context, options GistCreateOptions) (string, error) {
	files := make([]string, 0, len(options.Files))
	for _, file := range options.Files {
		trimmedFile := strings.TrimSpace(file)
		if len(trimmedFile) > 0 {
			files = append(files, trimmedFile)
		}
	}
	if len(files) == 0 {
		return "", InvalidInputError{FieldName: gistFilesFieldNameConstant, Message: requiredValueMessageConstant}
	}

	arguments := append([]string{gistSubcommandConstant, createSubcommandConstant}, files...)
	if description := strings.TrimSpace(options.Description); len(description) > 0 {
		arguments = append(arguments, descriptionFlagConstant, description)
	}
	if options.Public {
		arguments = append(arguments, publicFlagConstant)
	}

	executionResult, executionError := client.execute(executionContext, createGistOperationNameConstant, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: strings.TrimSpace(options.WorkingDirectory),
	})
	if executionError != nil {
		return "", executionError
	}

	gistURL := lastOutputLine(executionResult.StandardOutput)
	if len(gistURL) == 0 {
		return "", OperationError{Operation: createGistOperationNameConstant, Cause: ErrMissingGistURL}
	}
	return gistURL, nil
}
