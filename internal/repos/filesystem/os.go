// Package filesystem backs shared.FileSystem with the host disk.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/ghrepo/internal/repos/shared"
)

const (
	renameErrorTemplateConstant = "move %s to %s: %w"
)

var _ shared.FileSystem = OSFileSystem{}

// OSFileSystem is the production shared.FileSystem handed to commands that touch local directories.
type OSFileSystem struct{}

// Stat follows symlinks, so a linked repository directory reports as a directory.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Rename moves oldPath to newPath and names both paths in the returned error.
func (OSFileSystem) Rename(oldPath string, newPath string) error {
	if renameError := os.Rename(oldPath, newPath); renameError != nil {
		return fmt.Errorf(renameErrorTemplateConstant, oldPath, newPath, renameError)
	}
	return nil
}

func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (OSFileSystem) MkdirAll(path string, permissions fs.FileMode) error {
	return os.MkdirAll(path, permissions)
}
