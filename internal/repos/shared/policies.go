package shared

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ownerRepositorySeparatorConstant              = "/"
	invalidRepositoryIdentifierTemplateConstant   = "invalid repository %q: %w"
	repositoryIdentifierFormatMessageConstant     = "expected owner/name"
	repositoryIdentifierStringTemplateConstant    = "%s/%s"
	repositoryIdentifierWhitespaceMessageConstant = "repository identifiers must not contain whitespace"
)

// ErrRepositoryIdentifierFormat indicates an identifier that is not owner/name.
var ErrRepositoryIdentifierFormat = errors.New(repositoryIdentifierFormatMessageConstant)

// ConfirmationPolicy specifies how executors should handle user confirmations.
type ConfirmationPolicy int

const (
	// ConfirmationPrompt indicates the executor should prompt the user.
	ConfirmationPrompt ConfirmationPolicy = iota
	// ConfirmationAssumeYes indicates the executor should continue without prompting.
	ConfirmationAssumeYes
)

// ConfirmationPolicyFromBool converts the --yes flag into a policy.
func ConfirmationPolicyFromBool(assumeYes bool) ConfirmationPolicy {
	if assumeYes {
		return ConfirmationAssumeYes
	}
	return ConfirmationPrompt
}

// ShouldPrompt reports whether the executor must prompt the user.
func (policy ConfirmationPolicy) ShouldPrompt() bool {
	return policy != ConfirmationAssumeYes
}

// RepositoryIdentifier names a GitHub repository as owner/name.
type RepositoryIdentifier struct {
	Owner string
	Name  string
}

// ParseRepositoryIdentifier validates an owner/name string.
func ParseRepositoryIdentifier(raw string) (RepositoryIdentifier, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return RepositoryIdentifier{}, fmt.Errorf(invalidRepositoryIdentifierTemplateConstant, raw, errors.New(repositoryIdentifierWhitespaceMessageConstant))
	}
	segments := strings.Split(trimmed, ownerRepositorySeparatorConstant)
	if len(segments) != 2 || len(segments[0]) == 0 || len(segments[1]) == 0 {
		return RepositoryIdentifier{}, fmt.Errorf(invalidRepositoryIdentifierTemplateConstant, raw, ErrRepositoryIdentifierFormat)
	}
	return RepositoryIdentifier{Owner: segments[0], Name: segments[1]}, nil
}

// ParseRepositoryIdentifierOptional normalizes owner/name tuples, returning nil when empty.
func ParseRepositoryIdentifierOptional(raw string) (*RepositoryIdentifier, error) {
	if len(strings.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	identifier, parseError := ParseRepositoryIdentifier(raw)
	if parseError != nil {
		return nil, parseError
	}
	return &identifier, nil
}

// String renders the identifier as owner/name.
func (identifier RepositoryIdentifier) String() string {
	return fmt.Sprintf(repositoryIdentifierStringTemplateConstant, identifier.Owner, identifier.Name)
}
