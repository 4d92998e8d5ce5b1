package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testMessagesWorkingDirectoryConstant = "/workspace/proj"
)

func TestCommandMessageFormatterStartedMessages(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name:            "git_init",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"init"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Initializing repository in /workspace/proj",
		},
		{
			name:            "git_add_all",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"add", "-A"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Staging all changes in /workspace/proj",
		},
		{
			name:            "git_commit",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"commit", "-m", "Initial commit"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Creating commit in /workspace/proj with message \"Initial commit\"",
		},
		{
			name:            "git_remote_add",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"remote", "add", "origin", "https://github.com/octocat/proj.git"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Linking origin remote in /workspace/proj to https://github.com/octocat/proj.git",
		},
		{
			name:            "git_push_upstream",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Pushing main to origin from /workspace/proj",
		},
		{
			name:            "git_pull_rebase",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"pull", "--rebase", "origin", "main"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Rebasing /workspace/proj onto origin/main",
		},
		{
			name:            "git_annotated_tag",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"tag", "-a", "v1.0.0", "-m", "Release v1.0.0"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}},
			expectedMessage: "Creating tag v1.0.0 in /workspace/proj",
		},
		{
			name:            "gh_repo_list_authenticated",
			command:         ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"repo", "list", "--json", "name", "--limit", "1000"}}},
			expectedMessage: "Listing repositories for authenticated user",
		},
		{
			name:            "gh_repo_create",
			command:         ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"repo", "create", "proj", "--public", "--source=.", "--remote=origin"}}},
			expectedMessage: "Creating repository proj",
		},
		{
			name:            "gh_gist_create",
			command:         ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"gist", "create", "notes.md", "todo.md", "--desc", "scratch"}}},
			expectedMessage: "Creating gist from notes.md, todo.md",
		},
		{
			name:            "gh_secret_set",
			command:         ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"secret", "set", "API_KEY", "--repo", "octocat/proj"}}},
			expectedMessage: "Setting secret API_KEY for octocat/proj",
		},
		{
			name:            "gh_collaborator_add",
			command:         ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"api", "repos/octocat/proj/collaborators/hubot", "-X", "PUT", "-f", "permission=push"}}},
			expectedMessage: "Adding collaborator hubot to octocat/proj",
		},
		{
			name:            "unknown_command_falls_back_to_generic",
			command:         ShellCommand{Name: CommandName("ssh"), Details: CommandDetails{Arguments: []string{"-V"}}},
			expectedMessage: "Running ssh -V",
		},
	}

	formatter := CommandMessageFormatter{}
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, formatter.BuildStartedMessage(testCase.command))
		})
	}
}

func TestCommandMessageFormatterFailureIncludesExitCodeAndStandardError(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}, WorkingDirectory: testMessagesWorkingDirectoryConstant}}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "! [rejected] main -> main (fetch first)\n"})

	require.Equal(testInstance, "Failed to push main to origin from /workspace/proj (exit code 1: ! [rejected] main -> main (fetch first))", message)
}

func TestCommandMessageFormatterExecutionFailureDescribesCause(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGitHub, Details: CommandDetails{Arguments: []string{"--version"}}}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found in $PATH"))

	require.Equal(testInstance, "GitHub CLI is not available: executable file not found in $PATH", message)
}
