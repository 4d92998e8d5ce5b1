package github

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubcli"
	"github.com/temirov/ghrepo/internal/repos/shared"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	collaboratorUseConstant           = "collaborator"
	collaboratorShortDescription      = "Manage repository collaborators"
	collaboratorAddUseConstant        = "add <user>"
	collaboratorAddShort              = "Invite a collaborator"
	collaboratorAddExample            = "ghrepo collaborator add octocat --permission maintain"
	collaboratorRemoveUseConstant     = "remove <user>"
	collaboratorRemoveShort           = "Revoke a collaborator's access"
	collaboratorListUseConstant       = "list"
	collaboratorListShort             = "List collaborators"
	collaboratorPermissionFlagName    = "permission"
	collaboratorPermissionFlagUsage   = "Repository role to grant"
	collaboratorSubjectConstant       = "collaborator"
	collaboratorAddedTemplate         = "Invited %s to %s as %s\n"
	collaboratorRemovedTemplate       = "Removed %s from %s\n"
	collaboratorRemoveSkippedTemplate = "SKIP remove collaborator %s\n"
	collaboratorRemovePromptTemplate  = "Remove %s from %s? [y/N] "
	collaboratorPromptErrorTemplate   = "confirm collaborator removal: %w"
	collaboratorRowTemplate           = "%s\t%s\n"
)

type collaboratorChange struct {
	Repository string `json:"repository" yaml:"repository"`
	Login      string `json:"login" yaml:"login"`
	Permission string `json:"permission,omitempty" yaml:"permission,omitempty"`
	Removed    bool   `json:"removed,omitempty" yaml:"removed,omitempty"`
}

func (builder *CommandBuilder) buildCollaboratorCommand() *cobra.Command {
	group := newRepositoryGroup(collaboratorUseConstant, collaboratorShortDescription)

	addCommand := &cobra.Command{
		Use:     collaboratorAddUseConstant,
		Short:   collaboratorAddShort,
		Example: collaboratorAddExample,
		Args:    cobra.ExactArgs(1),
		RunE:    builder.runCollaboratorAdd,
	}
	flagutils.AddChoiceFlag(addCommand.Flags(), nil, collaboratorPermissionFlagName, "", collaboratorPermissionChoices(), collaboratorPermissionFlagUsage)

	removeCommand := &cobra.Command{
		Use:   collaboratorRemoveUseConstant,
		Short: collaboratorRemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runCollaboratorRemove,
	}
	flagutils.BindExecutionFlags(removeCommand, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Usage: flagutils.AssumeYesFlagUsage, Shorthand: flagutils.AssumeYesFlagShorthand, Enabled: true},
	})

	listCommand := &cobra.Command{
		Use:   collaboratorListUseConstant,
		Short: collaboratorListShort,
		Args:  cobra.NoArgs,
		RunE:  builder.runCollaboratorList,
	}

	group.AddCommand(addCommand, removeCommand, listCommand)
	return group
}

func (builder *CommandBuilder) runCollaboratorAdd(command *cobra.Command, arguments []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	permission := builder.configuration().CollaboratorPermission
	if command.Flags().Changed(collaboratorPermissionFlagName) {
		permission = stringFlag(command, collaboratorPermissionFlagName)
	}
	change := collaboratorChange{Repository: target.repository.String(), Login: strings.TrimSpace(arguments[0]), Permission: permission}

	if addError := target.client.AddCollaborator(command.Context(), change.Repository, change.Login, githubcli.CollaboratorPermission(permission)); addError != nil {
		return addError
	}
	return renderDocument(command, collaboratorSubjectConstant, change, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, collaboratorAddedTemplate, change.Login, change.Repository, change.Permission)
		return writeError
	})
}

func (builder *CommandBuilder) runCollaboratorRemove(command *cobra.Command, arguments []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}
	change := collaboratorChange{Repository: target.repository.String(), Login: strings.TrimSpace(arguments[0])}

	policy := shared.ConfirmationPolicyFromBool(flagutils.ResolveExecutionFlags(command).AssumeYes)
	if policy.ShouldPrompt() {
		confirmed, promptError := resolvePrompter(builder.PrompterFactory, command).Confirm(fmt.Sprintf(collaboratorRemovePromptTemplate, change.Login, change.Repository))
		if promptError != nil {
			return fmt.Errorf(collaboratorPromptErrorTemplate, promptError)
		}
		if !confirmed {
			_, writeError := fmt.Fprintf(command.ErrOrStderr(), collaboratorRemoveSkippedTemplate, change.Login)
			return writeError
		}
	}

	if removeError := target.client.RemoveCollaborator(command.Context(), change.Repository, change.Login); removeError != nil {
		return removeError
	}
	change.Removed = true
	return renderDocument(command, collaboratorSubjectConstant, change, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, collaboratorRemovedTemplate, change.Login, change.Repository)
		return writeError
	})
}

func (builder *CommandBuilder) runCollaboratorList(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	collaborators, listError := target.client.ListCollaborators(command.Context(), target.repository.String())
	if listError != nil {
		return listError
	}

	return renderDocument(command, collaboratorSubjectConstant, collaborators, func(writer io.Writer) error {
		for _, collaborator := range collaborators {
			if _, writeError := fmt.Fprintf(writer, collaboratorRowTemplate, collaborator.Login, collaborator.RoleName); writeError != nil {
				return writeError
			}
		}
		return nil
	})
}
