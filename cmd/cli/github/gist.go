package github

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/repos/dependencies"
	pathutils "github.com/temirov/ghrepo/internal/utils/path"
)

const (
	gistUseConstant          = "gist <file...>"
	gistShortDescription     = "Upload files as a GitHub gist"
	gistLongDescription      = "gist uploads one or more files as a single gist and prints its URL. Gists are secret unless --public is given or tools.gist.public is set."
	gistExample              = "ghrepo gist notes.md ~/snippets/deploy.sh --description \"Deploy notes\" --public"
	gistDescriptionFlagName  = "description"
	gistDescriptionShorthand = "d"
	gistDescriptionUsage     = "Gist description"
	gistPublicFlagName       = "public"
	gistPublicFlagUsage      = "Create a public gist"
	gistSubjectConstant      = "gist"
	gistMissingFilesMessage  = "gist requires at least one file"
	gistMissingFileTemplate  = "gist file %s does not exist"
	gistDirectoryTemplate    = "gist file %s is a directory"
	gistInspectErrorTemplate = "inspect gist file %s: %w"
)

func (builder *CommandBuilder) buildGistCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     gistUseConstant,
		Short:   gistShortDescription,
		Long:    gistLongDescription,
		Example: gistExample,
		RunE:    builder.runGist,
	}
	command.Flags().StringP(gistDescriptionFlagName, gistDescriptionShorthand, "", gistDescriptionUsage)
	builder.toggleSet().Add(command.Flags(), nil, gistPublicFlagName, "", false, gistPublicFlagUsage)
	return command
}

func (builder *CommandBuilder) runGist(command *cobra.Command, arguments []string) error {
	configuration := builder.gistConfiguration()

	files := pathutils.NewPathListSanitizer(builder.HomeExpander).Sanitize(arguments)
	if len(files) == 0 {
		_ = command.Help()
		return errors.New(gistMissingFilesMessage)
	}

	description := configuration.Description
	if command.Flags().Changed(gistDescriptionFlagName) {
		description = stringFlag(command, gistDescriptionFlagName)
	}
	public := configuration.Public
	if command.Flags().Changed(gistPublicFlagName) {
		public = boolFlag(command, gistPublicFlagName)
	}

	workingDirectory, directoryError := builder.workingDirectory()
	if directoryError != nil {
		return directoryError
	}
	if fileError := builder.requireGistFiles(workingDirectory, files); fileError != nil {
		return fileError
	}
	githubClient, clientError := builder.resolveClient()
	if clientError != nil {
		return clientError
	}

	gistURL, gistError := githubClient.CreateGist(command.Context(), githubcli.GistCreateOptions{
		Files:            files,
		Description:      description,
		Public:           public,
		WorkingDirectory: workingDirectory,
	})
	if gistError != nil {
		return gistError
	}
	return renderURL(command, gistSubjectConstant, gistURL)
}

// requireGistFiles rejects missing files and directories before gh is invoked.
func (builder *CommandBuilder) requireGistFiles(workingDirectory string, files []string) error {
	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	for _, file := range files {
		filePath := file
		if !filepath.IsAbs(filePath) {
			filePath = filepath.Join(workingDirectory, filePath)
		}
		fileInfo, statError := fileSystem.Stat(filePath)
		switch {
		case errors.Is(statError, fs.ErrNotExist):
			return fmt.Errorf(gistMissingFileTemplate, file)
		case statError != nil:
			return fmt.Errorf(gistInspectErrorTemplate, file, statError)
		case fileInfo.IsDir():
			return fmt.Errorf(gistDirectoryTemplate, file)
		}
	}
	return nil
}
