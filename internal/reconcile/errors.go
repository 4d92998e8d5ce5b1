package reconcile

import (
	"errors"
	"fmt"
)

const (
	failureTemplateConstant                = "%s: %v"
	failureWithoutCauseTemplateConstant    = "%s"
	pathNotDirectoryMessageConstant        = "path is not a directory"
	localRepositoryMissingMessageConstant  = "no git repository in directory"
	remoteRepositoryMissingMessageConstant = "repository does not exist on GitHub"
)

// ErrorKind classifies a terminal reconciliation failure.
type ErrorKind string

// Terminal failure kinds.
const (
	ErrorKindPathNotFound            ErrorKind = ErrorKind("PathNotFound")
	ErrorKindRepositoryInitFailed    ErrorKind = ErrorKind("RepositoryInitFailed")
	ErrorKindRemoteQueryFailed       ErrorKind = ErrorKind("RemoteQueryFailed")
	ErrorKindRemoteCreateFailed      ErrorKind = ErrorKind("RemoteCreateFailed")
	ErrorKindRemoteLinkFailed        ErrorKind = ErrorKind("RemoteLinkFailed")
	ErrorKindStageFailed             ErrorKind = ErrorKind("StageFailed")
	ErrorKindCommitFailed            ErrorKind = ErrorKind("CommitFailed")
	ErrorKindPushConflictUnresolved  ErrorKind = ErrorKind("PushConflictUnresolved")
	ErrorKindLocalRepositoryMissing  ErrorKind = ErrorKind("LocalRepositoryMissing")
	ErrorKindRemoteRepositoryMissing ErrorKind = ErrorKind("RemoteRepositoryMissing")
)

var (
	// ErrPathNotDirectory indicates the target path exists but is a file.
	ErrPathNotDirectory = errors.New(pathNotDirectoryMessageConstant)
	// ErrLocalRepositoryMissing indicates the mode requires an existing local repository.
	ErrLocalRepositoryMissing = errors.New(localRepositoryMissingMessageConstant)
	// ErrRemoteRepositoryMissing indicates the mode requires an existing GitHub repository.
	ErrRemoteRepositoryMissing = errors.New(remoteRepositoryMissingMessageConstant)
)

// Failure is the terminal error of a reconciliation.
type Failure struct {
	Kind  ErrorKind
	Cause error
}

// Error describes the failure.
func (failure *Failure) Error() string {
	if failure.Cause == nil {
		return fmt.Sprintf(failureWithoutCauseTemplateConstant, failure.Kind)
	}
	return fmt.Sprintf(failureTemplateConstant, failure.Kind, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure *Failure) Unwrap() error {
	return failure.Cause
}

// KindOf returns the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind, true
	}
	return "", false
}
