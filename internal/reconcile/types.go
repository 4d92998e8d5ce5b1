package reconcile

import (
	"fmt"
	"strings"
)

const (
	unknownModeErrorTemplateConstant = "unknown reconciliation mode %q (expected create, publish, or update)"
	createCommitMessageConstant      = "Initial commit"
	publishCommitMessageConstant     = "Initial commit"
	updateCommitMessageConstant      = "Automatic commit: Updated files"
)

// Mode selects which reconciliation steps a command is allowed to perform.
type Mode string

// Reconciliation modes.
const (
	ModeCreate  Mode = Mode("create")
	ModePublish Mode = Mode("publish")
	ModeUpdate  Mode = Mode("update")
)

// Policy captures the permissions and defaults attached to a Mode.
type Policy struct {
	Mode                 Mode
	MayInitializeLocal   bool
	MayCreateRemote      bool
	DefaultCommitMessage string
}

var policies = map[Mode]Policy{
	ModeCreate:  {Mode: ModeCreate, MayInitializeLocal: true, MayCreateRemote: true, DefaultCommitMessage: createCommitMessageConstant},
	ModePublish: {Mode: ModePublish, MayInitializeLocal: false, MayCreateRemote: true, DefaultCommitMessage: publishCommitMessageConstant},
	ModeUpdate:  {Mode: ModeUpdate, MayInitializeLocal: true, MayCreateRemote: false, DefaultCommitMessage: updateCommitMessageConstant},
}

// ParseMode normalizes a user-supplied mode name. An empty value selects ModeCreate.
func ParseMode(rawMode string) (Mode, error) {
	normalizedMode := Mode(strings.ToLower(strings.TrimSpace(rawMode)))
	if len(normalizedMode) == 0 {
		return ModeCreate, nil
	}
	if _, known := policies[normalizedMode]; !known {
		return "", fmt.Errorf(unknownModeErrorTemplateConstant, rawMode)
	}
	return normalizedMode, nil
}

// PolicyForMode returns the policy for mode, falling back to the create policy for unknown modes.
func PolicyForMode(mode Mode) Policy {
	if policy, known := policies[mode]; known {
		return policy
	}
	return policies[ModeCreate]
}

// RepoTarget identifies the local directory being reconciled and the repository name derived from it.
type RepoTarget struct {
	LocalPath string `json:"local_path" yaml:"local_path"`
	Name      string `json:"name" yaml:"name"`
}

// RemoteState is what the hosting service reported during a single reconciliation.
type RemoteState struct {
	Exists        bool
	DefaultBranch string
	Username      string
}

// Outcome records every step a reconciliation performed.
type Outcome struct {
	ReconciliationID string      `json:"reconciliation_id" yaml:"reconciliation_id"`
	Mode             Mode        `json:"mode" yaml:"mode"`
	Target           RepoTarget  `json:"target" yaml:"target"`
	RemoteURL        string      `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
	Branch           string      `json:"branch,omitempty" yaml:"branch,omitempty"`
	Initialized      bool        `json:"initialized" yaml:"initialized"`
	CreatedOnRemote  bool        `json:"created_on_remote" yaml:"created_on_remote"`
	Linked           bool        `json:"linked" yaml:"linked"`
	Committed        bool        `json:"committed" yaml:"committed"`
	Rebased          bool        `json:"rebased" yaml:"rebased"`
	PushAttempts     int         `json:"push_attempts" yaml:"push_attempts"`
	Pushed           bool        `json:"pushed" yaml:"pushed"`
	Remote           RemoteState `json:"-" yaml:"-"`
	Error            *Failure    `json:"-" yaml:"-"`
}

// Succeeded reports whether the reconciliation finished without a terminal failure.
func (outcome Outcome) Succeeded() bool {
	return outcome.Error == nil
}
