package github

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/repos/shared"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	secretUseConstant           = "secret"
	secretShortDescription      = "Manage repository Actions secrets"
	secretSetUseConstant        = "set <name>"
	secretSetShort              = "Create or replace a secret"
	secretSetLong               = "set stores a repository secret. The value comes from --body or, when omitted, from standard input; it is passed to gh over standard input and never appears on a command line."
	secretSetExample            = "ghrepo secret set DEPLOY_TOKEN < token.txt"
	secretListUseConstant       = "list"
	secretListShort             = "List secret names"
	secretDeleteUseConstant     = "delete <name>"
	secretDeleteShort           = "Delete a secret"
	secretBodyFlagUsage         = "Secret value (read from standard input when omitted)"
	secretSubjectConstant       = "secret"
	secretStoredTemplate        = "Stored secret %s in %s\n"
	secretDeletedTemplate       = "Deleted secret %s from %s\n"
	secretDeleteSkippedTemplate = "SKIP delete secret %s\n"
	secretDeletePromptTemplate  = "Delete secret %s from %s? [y/N] "
	secretRowTemplate           = "%s\t%s\n"
	secretValueReadTemplate     = "read secret value: %w"
	secretEmptyValueMessage     = "secret value is empty"
	secretPromptErrorTemplate   = "confirm secret deletion: %w"
)

type secretChange struct {
	Repository string `json:"repository" yaml:"repository"`
	Name       string `json:"name" yaml:"name"`
	Deleted    bool   `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Stored     bool   `json:"stored,omitempty" yaml:"stored,omitempty"`
}

func (builder *CommandBuilder) buildSecretCommand() *cobra.Command {
	group := newRepositoryGroup(secretUseConstant, secretShortDescription)

	setCommand := &cobra.Command{
		Use:     secretSetUseConstant,
		Short:   secretSetShort,
		Long:    secretSetLong,
		Example: secretSetExample,
		Args:    cobra.ExactArgs(1),
		RunE:    builder.runSecretSet,
	}
	setCommand.Flags().String(bodyFlagName, "", secretBodyFlagUsage)

	listCommand := &cobra.Command{
		Use:   secretListUseConstant,
		Short: secretListShort,
		Args:  cobra.NoArgs,
		RunE:  builder.runSecretList,
	}

	deleteCommand := &cobra.Command{
		Use:   secretDeleteUseConstant,
		Short: secretDeleteShort,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.runSecretDelete,
	}
	flagutils.BindExecutionFlags(deleteCommand, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Usage: flagutils.AssumeYesFlagUsage, Shorthand: flagutils.AssumeYesFlagShorthand, Enabled: true},
	})

	group.AddCommand(setCommand, listCommand, deleteCommand)
	return group
}

func (builder *CommandBuilder) runSecretSet(command *cobra.Command, arguments []string) error {
	secretValue := stringFlag(command, bodyFlagName)
	if !command.Flags().Changed(bodyFlagName) {
		rawValue, readError := io.ReadAll(command.InOrStdin())
		if readError != nil {
			return fmt.Errorf(secretValueReadTemplate, readError)
		}
		secretValue = strings.TrimRight(string(rawValue), "\r\n")
	}
	if len(secretValue) == 0 {
		return errors.New(secretEmptyValueMessage)
	}

	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}
	secretName := strings.TrimSpace(arguments[0])
	if setError := target.client.SetSecret(command.Context(), target.repository.String(), secretName, secretValue); setError != nil {
		return setError
	}

	change := secretChange{Repository: target.repository.String(), Name: secretName, Stored: true}
	return renderDocument(command, secretSubjectConstant, change, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, secretStoredTemplate, change.Name, change.Repository)
		return writeError
	})
}

func (builder *CommandBuilder) runSecretList(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	secrets, listError := target.client.ListSecrets(command.Context(), target.repository.String())
	if listError != nil {
		return listError
	}

	return renderDocument(command, secretSubjectConstant, secrets, func(writer io.Writer) error {
		for _, secret := range secrets {
			if _, writeError := fmt.Fprintf(writer, secretRowTemplate, secret.Name, secret.UpdatedAt); writeError != nil {
				return writeError
			}
		}
		return nil
	})
}

func (builder *CommandBuilder) runSecretDelete(command *cobra.Command, arguments []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}
	secretName := strings.TrimSpace(arguments[0])
	change := secretChange{Repository: target.repository.String(), Name: secretName}

	policy := shared.ConfirmationPolicyFromBool(flagutils.ResolveExecutionFlags(command).AssumeYes)
	if policy.ShouldPrompt() {
		confirmed, promptError := resolvePrompter(builder.PrompterFactory, command).Confirm(fmt.Sprintf(secretDeletePromptTemplate, secretName, change.Repository))
		if promptError != nil {
			return fmt.Errorf(secretPromptErrorTemplate, promptError)
		}
		if !confirmed {
			_, writeError := fmt.Fprintf(command.ErrOrStderr(), secretDeleteSkippedTemplate, secretName)
			return writeError
		}
	}

	if deleteError := target.client.DeleteSecret(command.Context(), change.Repository, secretName); deleteError != nil {
		return deleteError
	}
	change.Deleted = true
	return renderDocument(command, secretSubjectConstant, change, func(writer io.Writer) error {
		_, writeError := fmt.Fprintf(writer, secretDeletedTemplate, change.Name, change.Repository)
		return writeError
	})
}
