package githubauth

import "github.com/spf13/cobra"

const (
	// CommandAnnotationKey marks cobra commands that talk to GitHub and therefore need the preflight.
	CommandAnnotationKey           = "ghrepo/requires-github"
	commandAnnotationValueConstant = "true"
)

// MarkCommand flags command (and, through inheritance, its subcommands) as requiring GitHub access.
func MarkCommand(command *cobra.Command) {
	if command == nil {
		return
	}
	if command.Annotations == nil {
		command.Annotations = map[string]string{}
	}
	command.Annotations[CommandAnnotationKey] = commandAnnotationValueConstant
}

// CommandRequiresGitHub reports whether command or any of its parents was marked with MarkCommand.
func CommandRequiresGitHub(command *cobra.Command) bool {
	for current := command; current != nil; current = current.Parent() {
		if current.Annotations[CommandAnnotationKey] == commandAnnotationValueConstant {
			return true
		}
	}
	return false
}
