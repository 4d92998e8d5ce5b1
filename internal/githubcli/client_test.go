package githubcli_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghrepo/internal/execshell"
	"github.com/temirov/ghrepo/internal/githubcli"
)

const (
	testRepositoryIdentifierConstant          = "owner/example"
	testBaseBranchConstant                    = "main"
	testPullRequestTitleConstant              = "Example"
	testPullRequestHeadConstant               = "feature/example"
	testResolveSuccessCaseNameConstant        = "resolve_success"
	testResolveDecodeFailureCaseNameConstant  = "resolve_decode_failure"
	testResolveCommandFailureCaseNameConstant = "resolve_command_failure"
	testResolveInputFailureCaseNameConstant   = "resolve_input_failure"
	testResolveMalformedInputCaseNameConstant = "resolve_malformed_repository"
	testListSuccessCaseNameConstant           = "list_success"
	testListDecodeFailureCaseNameConstant     = "list_decode_failure"
	testListCommandFailureCaseNameConstant    = "list_command_failure"
	testListRepositoryValidationCaseConstant  = "list_repository_validation"
	testListDefaultsCaseNameConstant          = "list_defaults_state_and_limit"
)

type stubGitHubExecutor struct {
	executeFunc     func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error)
	recordedDetails []execshell.CommandDetails
}

func (executor *stubGitHubExecutor) ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executeFunc != nil {
		return executor.executeFunc(executionContext, details)
	}
	return execshell.ExecutionResult{}, nil
}

func respondWith(output string) *stubGitHubExecutor {
	return &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
		return execshell.ExecutionResult{StandardOutput: output}, nil
	}}
}

func failWith(failure error) *stubGitHubExecutor {
	return &stubGitHubExecutor{executeFunc: func(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
		return execshell.ExecutionResult{}, failure
	}}
}

func TestNewClientValidation(testInstance *testing.T) {
	testInstance.Run("nil_executor", func(testInstance *testing.T) {
		client, creationError := githubcli.NewClient(nil)
		require.Error(testInstance, creationError)
		require.ErrorIs(testInstance, creationError, githubcli.ErrExecutorNotConfigured)
		require.Nil(testInstance, client)
	})
}

func TestResolveRepoMetadata(testInstance *testing.T) {
	testCases := []struct {
		name        string
		repository  string
		executor    *stubGitHubExecutor
		expectError bool
		errorType   any
		verify      func(testInstance *testing.T, metadata githubcli.RepositoryMetadata, executor *stubGitHubExecutor)
	}{
		{
			name:       testResolveSuccessCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor:   respondWith(`{"nameWithOwner":"owner/example","description":"Example repo","defaultBranchRef":{"name":"main"}}`),
			verify: func(testInstance *testing.T, metadata githubcli.RepositoryMetadata, executor *stubGitHubExecutor) {
				require.Equal(testInstance, "owner/example", metadata.NameWithOwner)
				require.Equal(testInstance, "Example repo", metadata.Description)
				require.Equal(testInstance, "main", metadata.DefaultBranch)
				require.Len(testInstance, executor.recordedDetails, 1)
				require.Contains(testInstance, executor.recordedDetails[0].Arguments, testRepositoryIdentifierConstant)
			},
		},
		{
			name:        testResolveDecodeFailureCaseNameConstant,
			repository:  testRepositoryIdentifierConstant,
			executor:    respondWith("not-json"),
			expectError: true,
			errorType:   githubcli.ResponseDecodingError{},
		},
		{
			name:        testResolveCommandFailureCaseNameConstant,
			repository:  testRepositoryIdentifierConstant,
			executor:    failWith(execshell.CommandFailedError{Command: execshell.ShellCommand{Name: execshell.CommandGitHub}, Result: execshell.ExecutionResult{ExitCode: 1}}),
			expectError: true,
			errorType:   githubcli.OperationError{},
		},
		{
			name:        testResolveInputFailureCaseNameConstant,
			repository:  "  ",
			executor:    &stubGitHubExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
		{
			name:        testResolveMalformedInputCaseNameConstant,
			repository:  "example",
			executor:    &stubGitHubExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			metadata, resolutionError := client.ResolveRepoMetadata(context.Background(), testCase.repository)
			if testCase.expectError {
				require.Error(testInstance, resolutionError)
				require.IsType(testInstance, testCase.errorType, resolutionError)
			} else {
				require.NoError(testInstance, resolutionError)
				require.NotNil(testInstance, testCase.verify)
				testCase.verify(testInstance, metadata, testCase.executor)
			}
		})
	}
}

func TestListPullRequests(testInstance *testing.T) {
	testCases := []struct {
		name        string
		repository  string
		options     githubcli.PullRequestListOptions
		executor    *stubGitHubExecutor
		expectError bool
		errorType   any
		verify      func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *stubGitHubExecutor)
	}{
		{
			name:       testListSuccessCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			options: githubcli.PullRequestListOptions{
				State:       githubcli.PullRequestStateOpen,
				BaseBranch:  testBaseBranchConstant,
				ResultLimit: 50,
			},
			executor: respondWith(`[{"number":42,"title":"Example","headRefName":"feature/example","url":"https://github.com/owner/example/pull/42"}]`),
			verify: func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *stubGitHubExecutor) {
				require.Len(testInstance, pullRequests, 1)
				require.Equal(testInstance, 42, pullRequests[0].Number)
				require.Equal(testInstance, testPullRequestTitleConstant, pullRequests[0].Title)
				require.Equal(testInstance, testPullRequestHeadConstant, pullRequests[0].HeadRefName)
				require.Equal(testInstance, "https://github.com/owner/example/pull/42", pullRequests[0].URL)
				require.Len(testInstance, executor.recordedDetails, 1)
				require.Equal(testInstance, []string{
					"pr", "list", "--repo", testRepositoryIdentifierConstant, "--state", "open", "--base", testBaseBranchConstant,
					"--json", "number,title,headRefName,url", "--limit", "50",
				}, executor.recordedDetails[0].Arguments)
			},
		},
		{
			name:       testListDefaultsCaseNameConstant,
			repository: testRepositoryIdentifierConstant,
			executor:   respondWith(`[]`),
			verify: func(testInstance *testing.T, pullRequests []githubcli.PullRequest, executor *stubGitHubExecutor) {
				require.Empty(testInstance, pullRequests)
				require.NotContains(testInstance, executor.recordedDetails[0].Arguments, "--base")
				require.Contains(testInstance, executor.recordedDetails[0].Arguments, "open")
				require.Contains(testInstance, executor.recordedDetails[0].Arguments, "100")
			},
		},
		{
			name:        testListDecodeFailureCaseNameConstant,
			repository:  testRepositoryIdentifierConstant,
			options:     githubcli.PullRequestListOptions{State: githubcli.PullRequestStateOpen, BaseBranch: testBaseBranchConstant},
			executor:    respondWith("not-json"),
			expectError: true,
			errorType:   githubcli.ResponseDecodingError{},
		},
		{
			name:        testListCommandFailureCaseNameConstant,
			repository:  testRepositoryIdentifierConstant,
			options:     githubcli.PullRequestListOptions{State: githubcli.PullRequestStateClosed, BaseBranch: testBaseBranchConstant},
			executor:    failWith(execshell.CommandExecutionError{Command: execshell.ShellCommand{Name: execshell.CommandGitHub}, Cause: errors.New("failed")}),
			expectError: true,
			errorType:   githubcli.OperationError{},
		},
		{
			name:        testListRepositoryValidationCaseConstant,
			repository:  "",
			options:     githubcli.PullRequestListOptions{State: githubcli.PullRequestStateOpen, BaseBranch: testBaseBranchConstant},
			executor:    &stubGitHubExecutor{},
			expectError: true,
			errorType:   githubcli.InvalidInputError{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			client, creationError := githubcli.NewClient(testCase.executor)
			require.NoError(testInstance, creationError)

			pullRequests, listError := client.ListPullRequests(context.Background(), testCase.repository, testCase.options)
			if testCase.expectError {
				require.Error(testInstance, listError)
				require.IsType(testInstance, testCase.errorType, listError)
			} else {
				require.NoError(testInstance, listError)
				require.NotNil(testInstance, testCase.verify)
				testCase.verify(testInstance, pullRequests, testCase.executor)
			}
		})
	}
}

func TestPreflightOperations(testInstance *testing.T) {
	testInstance.Run("check_installed", func(testInstance *testing.T) {
		executor := &stubGitHubExecutor{}
		client, _ := githubcli.NewClient(executor)
		require.NoError(testInstance, client.CheckInstalled(context.Background()))
		require.Equal(testInstance, []string{"--version"}, executor.recordedDetails[0].Arguments)
	})

	testInstance.Run("check_authentication_failure", func(testInstance *testing.T) {
		executor := failWith(execshell.CommandFailedError{Command: execshell.ShellCommand{Name: execshell.CommandGitHub}, Result: execshell.ExecutionResult{ExitCode: 1}})
		client, _ := githubcli.NewClient(executor)
		authenticationError := client.CheckAuthentication(context.Background())
		var operationError githubcli.OperationError
		require.ErrorAs(testInstance, authenticationError, &operationError)
		require.Equal(testInstance, githubcli.OperationName("CheckAuthentication"), operationError.Operation)
		require.Equal(testInstance, []string{"auth", "status"}, executor.recordedDetails[0].Arguments)
	})
}

func TestResolveAuthenticatedUser(testInstance *testing.T) {
	testCases := []struct {
		name          string
		output        string
		expectedLogin string
		expectError   error
	}{
		{name: "login_present", output: `{"login":"octocat","id":1}`, expectedLogin: "octocat"},
		{name: "login_missing", output: `{"id":1}`, expectError: githubcli.ErrEmptyLogin},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := respondWith(testCase.output)
			client, _ := githubcli.NewClient(executor)

			login, resolutionError := client.ResolveAuthenticatedUser(context.Background())
			require.Equal(testInstance, []string{"api", "user"}, executor.recordedDetails[0].Arguments)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, resolutionError, testCase.expectError)
				return
			}
			require.NoError(testInstance, resolutionError)
			require.Equal(testInstance, testCase.expectedLogin, login)
		})
	}
}
