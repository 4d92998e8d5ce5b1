package execshell

import (
	"context"
	"fmt"
	"strings"
)

const (
	commandGitNameConstant                   = "git"
	commandGitHubNameConstant                = "gh"
	commandFailedErrorTemplateConstant       = "%s exited with code %d"
	commandFailedWithOutputTemplateConstant  = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant    = "%s could not be executed: %v"
	commandDescriptionTemplateConstant       = "%s %s"
	commandDescriptionArgumentSeparatorConst = " "
)

// CommandName identifies an executable the tool knows how to drive.
type CommandName string

// Supported executables.
const (
	CommandGit    CommandName = CommandName(commandGitNameConstant)
	CommandGitHub CommandName = CommandName(commandGitHubNameConstant)
)

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands. Implementations report non-zero exit codes through ExecutionResult
// and reserve the error return for failures to start or wait on the process.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failedError CommandFailedError) Error() string {
	description := describeCommand(failedError.Command)
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, description, failedError.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, description, failedError.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command the runner was unable to execute.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(executionError.Command), executionError.Cause)
}

// Unwrap exposes the runner failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

func describeCommand(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return fmt.Sprintf(commandDescriptionTemplateConstant, command.Name, strings.Join(command.Details.Arguments, commandDescriptionArgumentSeparatorConst))
}
