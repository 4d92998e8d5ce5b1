package githubauth

import (
	"context"
	"errors"
	"fmt"
)

const (
	checkerNotConfiguredMessageConstant = "github cli checker not configured"
	preflightErrorTemplateConstant      = "%s: %v (%s)"
	installHintConstant                 = "install the GitHub CLI from https://cli.github.com"
	loginHintConstant                   = "run `gh auth login` or export GH_TOKEN"
	rejectedTokenHintTemplateConstant   = "the token in %s was rejected; refresh it or unset it and run `gh auth login`"
	notInstalledMessageConstant         = "GitHub CLI is not installed"
	notAuthenticatedMessageConstant     = "GitHub CLI is not authenticated"
)

// PreflightStage names the check that failed.
type PreflightStage string

// Preflight stages in execution order.
const (
	PreflightStageInstallation   PreflightStage = PreflightStage("installation")
	PreflightStageAuthentication PreflightStage = PreflightStage("authentication")
)

// ErrCheckerNotConfigured indicates the preflight was constructed without a CLI checker.
var ErrCheckerNotConfigured = errors.New(checkerNotConfiguredMessageConstant)

// CLIChecker is implemented by githubcli.Client.
type CLIChecker interface {
	CheckInstalled(executionContext context.Context) error
	CheckAuthentication(executionContext context.Context) error
}

// PreflightError reports a failed startup check with a remediation hint.
type PreflightError struct {
	Stage PreflightStage
	Hint  string
	Cause error
}

// Error describes the failed check.
func (preflightError PreflightError) Error() string {
	message := notAuthenticatedMessageConstant
	if preflightError.Stage == PreflightStageInstallation {
		message = notInstalledMessageConstant
	}
	return fmt.Sprintf(preflightErrorTemplateConstant, message, preflightError.Cause, preflightError.Hint)
}

// Unwrap exposes the underlying check failure.
func (preflightError PreflightError) Unwrap() error {
	return preflightError.Cause
}

// Preflight verifies gh is usable before any command talks to GitHub.
type Preflight struct {
	checker     CLIChecker
	environment map[string]string
}

// NewPreflight constructs a Preflight. The environment map overrides process variables when looking up tokens.
func NewPreflight(checker CLIChecker, environment map[string]string) (*Preflight, error) {
	if checker == nil {
		return nil, ErrCheckerNotConfigured
	}
	return &Preflight{checker: checker, environment: environment}, nil
}

// Verify runs the installation check and then the authentication check.
func (preflight *Preflight) Verify(executionContext context.Context) error {
	if installationError := preflight.checker.CheckInstalled(executionContext); installationError != nil {
		return PreflightError{Stage: PreflightStageInstallation, Hint: installHintConstant, Cause: installationError}
	}

	if authenticationError := preflight.checker.CheckAuthentication(executionContext); authenticationError != nil {
		hint := loginHintConstant
		if variableName, _, found := ResolveTokenVariable(preflight.environment); found {
			hint = fmt.Sprintf(rejectedTokenHintTemplateConstant, variableName)
		}
		return PreflightError{Stage: PreflightStageAuthentication, Hint: hint, Cause: authenticationError}
	}

	return nil
}
