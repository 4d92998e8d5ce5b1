package githubcli

import (
	"context"
	"strconv"
	"strings"

	"github.com/temirov/ghrepo/internal/execshell"
)

const (
	pullRequestSubcommandConstant          = "pr"
	issueSubcommandConstant                = "issue"
	stateFlagConstant                      = "--state"
	baseFlagConstant                       = "--base"
	headFlagConstant                       = "--head"
	titleFlagConstant                      = "--title"
	bodyFlagConstant                       = "--body"
	labelFlagConstant                      = "--label"
	draftFlagConstant                      = "--draft"
	titleFieldNameConstant                 = "title"
	pullRequestLimitDefaultValueConstant   = 100
	issueLimitDefaultValueConstant         = 100
	pullRequestJSONFieldsConstant          = "number,title,headRefName,url"
	issueJSONFieldsConstant                = "number,title,state,url"
	createPullRequestOperationNameConstant = OperationName("CreatePullRequest")
	listPullRequestsOperationNameConstant  = OperationName("ListPullRequests")
	createIssueOperationNameConstant       = OperationName("CreateIssue")
	listIssuesOperationNameConstant        = OperationName("ListIssues")
)

// PullRequestState describes acceptable GitHub pull request states.
type PullRequestState string

// Pull request state enumerations.
const (
	PullRequestStateOpen   PullRequestState = PullRequestState("open")
	PullRequestStateClosed PullRequestState = PullRequestState("closed")
	PullRequestStateMerged PullRequestState = PullRequestState("merged")
	PullRequestStateAll    PullRequestState = PullRequestState("all")
)

// IssueState describes acceptable GitHub issue states.
type IssueState string

// Issue state enumerations.
const (
	IssueStateOpen   IssueState = IssueState("open")
	IssueStateClosed IssueState = IssueState("closed")
	IssueStateAll    IssueState = IssueState("all")
)

// PullRequest represents minimal PR details returned by GitHub CLI.
type PullRequest struct {
	Number      int    `json:"number" yaml:"number"`
	Title       string `json:"title" yaml:"title"`
	HeadRefName string `json:"head" yaml:"head"`
	URL         string `json:"url" yaml:"url"`
}

// PullRequestListOptions configures ListPullRequests queries.
type PullRequestListOptions struct {
	State       PullRequestState
	BaseBranch  string
	ResultLimit int
}

// PullRequestCreateOptions configures CreatePullRequest.
type PullRequestCreateOptions struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
	Draft      bool
}

// Issue represents minimal issue details returned by GitHub CLI.
type Issue struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	State  string `json:"state" yaml:"state"`
	URL    string `json:"url" yaml:"url"`
}

// IssueListOptions configures ListIssues queries.
type IssueListOptions struct {
	State       IssueState
	ResultLimit int
}

// IssueCreateOptions configures CreateIssue.
type IssueCreateOptions struct {
	Title  string
	Body   string
	Labels []string
}

// CreatePullRequest opens a pull request and returns its URL.
func (client *Client) CreatePullRequest(executionContext context.Context, repository string, options PullRequestCreateOptions) (string, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return "", validationError
	}
	title, titleError := requireValue(titleFieldNameConstant, options.Title)
	if titleError != nil {
		return "", titleError
	}

	arguments := []string{
		pullRequestSubcommandConstant,
		createSubcommandConstant,
		repoFlagConstant,
		repositoryIdentifier,
		titleFlagConstant,
		title,
		bodyFlagConstant,
		options.Body,
	}
	if baseBranch := strings.TrimSpace(options.BaseBranch); len(baseBranch) > 0 {
		arguments = append(arguments, baseFlagConstant, baseBranch)
	}
	if headBranch := strings.TrimSpace(options.HeadBranch); len(headBranch) > 0 {
		arguments = append(arguments, headFlagConstant, headBranch)
	}
	if options.Draft {
		arguments = append(arguments, draftFlagConstant)
	}

	executionResult, executionError := client.execute(executionContext, createPullRequestOperationNameConstant, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return "", executionError
	}
	return lastOutputLine(executionResult.StandardOutput), nil
}

// ListPullRequests enumerates pull requests using gh pr list.
func (client *Client) ListPullRequests(executionContext context.Context, repository string, options PullRequestListOptions) ([]PullRequest, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return nil, validationError
	}

	state := options.State
	if len(state) == 0 {
		state = PullRequestStateOpen
	}

	resultLimit := options.ResultLimit
	if resultLimit <= 0 {
		resultLimit = pullRequestLimitDefaultValueConstant
	}

	arguments := []string{
		pullRequestSubcommandConstant,
		listSubcommandConstant,
		repoFlagConstant,
		repositoryIdentifier,
		stateFlagConstant,
		string(state),
	}
	if baseBranch := strings.TrimSpace(options.BaseBranch); len(baseBranch) > 0 {
		arguments = append(arguments, baseFlagConstant, baseBranch)
	}
	arguments = append(arguments, jsonFlagConstant, pullRequestJSONFieldsConstant, limitFlagConstant, strconv.Itoa(resultLimit))

	executionResult, executionError := client.execute(executionContext, listPullRequestsOperationNameConstant, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return nil, executionError
	}

	var response []struct {
		Number      int    `json:"number"`
		Title       string `json:"title"`
		HeadRefName string `json:"headRefName"`
		URL         string `json:"url"`
	}
	if decodingError := decodeJSONResponse(listPullRequestsOperationNameConstant, executionResult.StandardOutput, &response); decodingError != nil {
		return nil, decodingError
	}

	pullRequests := make([]PullRequest, 0, len(response))
	for _, pullRequestEntry := range response {
		pullRequests = append(pullRequests, PullRequest{
			Number:      pullRequestEntry.Number,
			Title:       pullRequestEntry.Title,
			HeadRefName: pullRequestEntry.HeadRefName,
			URL:         pullRequestEntry.URL,
		})
	}

	return pullRequests, nil
}

// CreateIssue opens an issue and returns its URL.
func (client *Client) CreateIssue(executionContext context.Context, repository string, options IssueCreateOptions) (string, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return "", validationError
	}
	title, titleError := requireValue(titleFieldNameConstant, options.Title)
	if titleError != nil {
		return "", titleError
	}

	arguments := []string{
		issueSubcommandConstant,
		createSubcommandConstant,
		repoFlagConstant,
		repositoryIdentifier,
		titleFlagConstant,
		title,
		bodyFlagConstant,
		options.Body,
	}
	for _, label := range options.Labels {
		if trimmedLabel := strings.TrimSpace(label); len(trimmedLabel) > 0 {
			arguments = append(arguments, labelFlagConstant, trimmedLabel)
		}
	}

	executionResult, executionError := client.execute(executionContext, createIssueOperationNameConstant, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return "", executionError
	}
	return lastOutputLine(executionResult.StandardOutput), nil
}

// ListIssues enumerates issues using gh issue list.
func (client *Client) ListIssues(executionContext context.Context, repository string, options IssueListOptions) ([]Issue, error) {
	repositoryIdentifier, validationError := normalizeRepositoryIdentifier(repository)
	if validationError != nil {
		return nil, validationError
	}

	state := options.State
	if len(state) == 0 {
		state = IssueStateOpen
	}
	resultLimit := options.ResultLimit
	if resultLimit <= 0 {
		resultLimit = issueLimitDefaultValueConstant
	}

	executionResult, executionError := client.execute(executionContext, listIssuesOperationNameConstant, execshell.CommandDetails{
		Arguments: []string{
			issueSubcommandConstant,
			listSubcommandConstant,
			repoFlagConstant,
			repositoryIdentifier,
			stateFlagConstant,
			string(state),
			jsonFlagConstant,
			issueJSONFieldsConstant,
			limitFlagConstant,
			strconv.Itoa(resultLimit),
		},
	})
	if executionError != nil {
		return nil, executionError
	}

	var issues []Issue
	if decodingError := decodeJSONResponse(listIssuesOperationNameConstant, executionResult.StandardOutput, &issues); decodingError != nil {
		return nil, decodingError
	}
	if issues == nil {
		issues = []Issue{}
	}
	return issues, nil
}
