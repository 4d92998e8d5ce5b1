package github

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubcli"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	issueUseConstant       = "issue"
	issueShortDescription  = "Open and list issues"
	issueCreateUseConstant = "create"
	issueCreateShort       = "Open an issue"
	issueCreateExample     = "ghrepo issue create --title \"Rename drops origin\" --label bug --label cli"
	issueListUseConstant   = "list"
	issueListShort         = "List issues"
	issueTitleUsage        = "Issue title"
	issueLabelFlagName     = "label"
	issueLabelFlagUsage    = "Label to apply (repeatable or comma separated)"
	issueSubjectConstant   = "issue"
	issueRowTemplate       = "#%d\t%s\t%s\t%s\n"
)

func (builder *CommandBuilder) buildIssueCommand() *cobra.Command {
	group := newRepositoryGroup(issueUseConstant, issueShortDescription)

	createCommand := &cobra.Command{
		Use:     issueCreateUseConstant,
		Short:   issueCreateShort,
		Example: issueCreateExample,
		Args:    cobra.NoArgs,
		RunE:    builder.runIssueCreate,
	}
	createCommand.Flags().String(titleFlagName, "", issueTitleUsage)
	createCommand.Flags().String(bodyFlagName, "", bodyFlagUsage)
	createCommand.Flags().StringSlice(issueLabelFlagName, nil, issueLabelFlagUsage)

	listCommand := &cobra.Command{
		Use:   issueListUseConstant,
		Short: issueListShort,
		Args:  cobra.NoArgs,
		RunE:  builder.runIssueList,
	}
	flagutils.AddChoiceFlag(listCommand.Flags(), nil, stateFlagName, string(githubcli.IssueStateOpen), []string{
		string(githubcli.IssueStateOpen),
		string(githubcli.IssueStateClosed),
		string(githubcli.IssueStateAll),
	}, stateFlagUsage)
	listCommand.Flags().Int(limitFlagName, 0, limitFlagUsage)

	group.AddCommand(createCommand, listCommand)
	return group
}

func (builder *CommandBuilder) runIssueCreate(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	labels, _ := command.Flags().GetStringSlice(issueLabelFlagName)
	issueURL, createError := target.client.CreateIssue(command.Context(), target.repository.String(), githubcli.IssueCreateOptions{
		Title:  stringFlag(command, titleFlagName),
		Body:   stringFlag(command, bodyFlagName),
		Labels: labels,
	})
	if createError != nil {
		return createError
	}
	return renderURL(command, issueSubjectConstant, issueURL)
}

func (builder *CommandBuilder) runIssueList(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	issues, listError := target.client.ListIssues(command.Context(), target.repository.String(), githubcli.IssueListOptions{
		State:       githubcli.IssueState(stringFlag(command, stateFlagName)),
		ResultLimit: limitFlag(command, limitFlagName, builder.configuration().ListLimit),
	})
	if listError != nil {
		return listError
	}

	return renderDocument(command, issueSubjectConstant, issues, func(writer io.Writer) error {
		for _, issue := range issues {
			if _, writeError := fmt.Fprintf(writer, issueRowTemplate, issue.Number, issue.State, issue.Title, issue.URL); writeError != nil {
				return writeError
			}
		}
		return nil
	})
}
