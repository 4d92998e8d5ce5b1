package github

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/temirov/ghrepo/internal/githubcli"
	flagutils "github.com/temirov/ghrepo/internal/utils/flags"
)

const (
	pullRequestUseConstant       = "pr"
	pullRequestShortDescription  = "Open and list pull requests"
	pullRequestCreateUseConstant = "create"
	pullRequestCreateShort       = "Open a pull request"
	pullRequestCreateExample     = "ghrepo pr create --title \"Add rename\" --base main --head feature/rename --draft"
	pullRequestListUseConstant   = "list"
	pullRequestListShort         = "List pull requests"
	pullRequestTitleUsage        = "Pull request title"
	pullRequestBaseFlagName      = "base"
	pullRequestBaseFlagUsage     = "Base branch"
	pullRequestHeadFlagName      = "head"
	pullRequestHeadFlagUsage     = "Head branch (defaults to the current branch)"
	pullRequestDraftFlagName     = "draft"
	pullRequestDraftFlagUsage    = "Open the pull request as a draft"
	pullRequestSubjectConstant   = "pull request"
	pullRequestRowTemplate       = "#%d\t%s\t%s\t%s\n"
)

func (builder *CommandBuilder) buildPullRequestCommand() *cobra.Command {
	group := newRepositoryGroup(pullRequestUseConstant, pullRequestShortDescription)

	createCommand := &cobra.Command{
		Use:     pullRequestCreateUseConstant,
		Short:   pullRequestCreateShort,
		Example: pullRequestCreateExample,
		Args:    cobra.NoArgs,
		RunE:    builder.runPullRequestCreate,
	}
	createCommand.Flags().String(titleFlagName, "", pullRequestTitleUsage)
	createCommand.Flags().String(bodyFlagName, "", bodyFlagUsage)
	createCommand.Flags().String(pullRequestBaseFlagName, "", pullRequestBaseFlagUsage)
	createCommand.Flags().String(pullRequestHeadFlagName, "", pullRequestHeadFlagUsage)
	builder.toggleSet().Add(createCommand.Flags(), nil, pullRequestDraftFlagName, "", false, pullRequestDraftFlagUsage)

	listCommand := &cobra.Command{
		Use:   pullRequestListUseConstant,
		Short: pullRequestListShort,
		Args:  cobra.NoArgs,
		RunE:  builder.runPullRequestList,
	}
	flagutils.AddChoiceFlag(listCommand.Flags(), nil, stateFlagName, string(githubcli.PullRequestStateOpen), []string{
		string(githubcli.PullRequestStateOpen),
		string(githubcli.PullRequestStateClosed),
		string(githubcli.PullRequestStateMerged),
		string(githubcli.PullRequestStateAll),
	}, stateFlagUsage)
	listCommand.Flags().String(pullRequestBaseFlagName, "", pullRequestBaseFlagUsage)
	listCommand.Flags().Int(limitFlagName, 0, limitFlagUsage)

	group.AddCommand(createCommand, listCommand)
	return group
}

func (builder *CommandBuilder) runPullRequestCreate(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	pullRequestURL, createError := target.client.CreatePullRequest(command.Context(), target.repository.String(), githubcli.PullRequestCreateOptions{
		Title:      stringFlag(command, titleFlagName),
		Body:       stringFlag(command, bodyFlagName),
		BaseBranch: stringFlag(command, pullRequestBaseFlagName),
		HeadBranch: stringFlag(command, pullRequestHeadFlagName),
		Draft:      boolFlag(command, pullRequestDraftFlagName),
	})
	if createError != nil {
		return createError
	}
	return renderURL(command, pullRequestSubjectConstant, pullRequestURL)
}

func (builder *CommandBuilder) runPullRequestList(command *cobra.Command, _ []string) error {
	target, targetError := builder.resolveTarget(command)
	if targetError != nil {
		return targetError
	}

	pullRequests, listError := target.client.ListPullRequests(command.Context(), target.repository.String(), githubcli.PullRequestListOptions{
		State:       githubcli.PullRequestState(stringFlag(command, stateFlagName)),
		BaseBranch:  stringFlag(command, pullRequestBaseFlagName),
		ResultLimit: limitFlag(command, limitFlagName, builder.configuration().ListLimit),
	})
	if listError != nil {
		return listError
	}

	return renderDocument(command, pullRequestSubjectConstant, pullRequests, func(writer io.Writer) error {
		for _, pullRequest := range pullRequests {
			if _, writeError := fmt.Fprintf(writer, pullRequestRowTemplate, pullRequest.Number, pullRequest.HeadRefName, pullRequest.Title, pullRequest.URL); writeError != nil {
				return writeError
			}
		}
		return nil
	})
}
