// Package apperr defines the user-facing failures of gitlet.
//
// Every Error is reported to the user by printing its message; none of them
// is fatal to later invocations. Infrastructure failures (I/O, corrupt
// databases) are ordinary wrapped errors and never use this package.
package apperr

import "errors"

type Kind string

const (
	KindUsage                 Kind = "USAGE"
	KindNoCommand             Kind = "NO_COMMAND"
	KindUnknownCommand        Kind = "UNKNOWN_COMMAND"
	KindNotInitialized        Kind = "NOT_INITIALIZED"
	KindAlreadyInitialized    Kind = "ALREADY_INITIALIZED"
	KindNoSuchFile            Kind = "NO_SUCH_FILE"
	KindNoSuchFileInCommit    Kind = "NO_SUCH_FILE_IN_COMMIT"
	KindNoSuchCommit          Kind = "NO_SUCH_COMMIT"
	KindNoMatchingCommit      Kind = "NO_MATCHING_COMMIT"
	KindNoSuchBranch          Kind = "NO_SUCH_BRANCH"
	KindBranchDoesNotExist    Kind = "BRANCH_DOES_NOT_EXIST"
	KindBranchAlreadyExists   Kind = "BRANCH_ALREADY_EXISTS"
	KindAlreadyOnBranch       Kind = "ALREADY_ON_BRANCH"
	KindCannotRemoveActive    Kind = "CANNOT_REMOVE_ACTIVE_BRANCH"
	KindNothingToRemove       Kind = "NOTHING_TO_REMOVE"
	KindEmptyCommitMessage    Kind = "EMPTY_COMMIT_MESSAGE"
	KindNothingStaged         Kind = "NOTHING_STAGED"
	KindUntrackedFileConflict Kind = "UNTRACKED_FILE_CONFLICT"
	KindUncommittedChanges    Kind = "UNCOMMITTED_CHANGES"
	KindBranchIsAncestor      Kind = "BRANCH_IS_ANCESTOR"
	KindCannotMergeSelf       Kind = "CANNOT_MERGE_SELF"
	KindInvalidBranchName     Kind = "INVALID_BRANCH_NAME"
)

// Error is a failure reported to the user verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error of the same kind, so callers can compare against
// the sentinels below even when the message was customised.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrIncorrectOperands   = New(KindUsage, "Incorrect operands.")
	ErrNoCommand           = New(KindNoCommand, "Please enter a command.")
	ErrUnknownCommand      = New(KindUnknownCommand, "No command with that name exists.")
	ErrNotInitialized      = New(KindNotInitialized, "Not in an initialized Gitlet directory.")
	ErrAlreadyInitialized  = New(KindAlreadyInitialized, "A Gitlet version-control system already exists in the current directory.")
	ErrNoSuchFile          = New(KindNoSuchFile, "File does not exist.")
	ErrNoSuchFileInCommit  = New(KindNoSuchFileInCommit, "File does not exist in that commit.")
	ErrNoSuchCommit        = New(KindNoSuchCommit, "No commit with that id exists.")
	ErrNoMatchingCommit    = New(KindNoMatchingCommit, "Found no commit with that message.")
	ErrNoSuchBranch        = New(KindNoSuchBranch, "No such branch exists.")
	ErrBranchDoesNotExist  = New(KindBranchDoesNotExist, "A branch with that name does not exist.")
	ErrBranchAlreadyExists = New(KindBranchAlreadyExists, "A branch with that name already exists.")
	ErrAlreadyOnBranch     = New(KindAlreadyOnBranch, "No need to checkout the current branch.")
	ErrCannotRemoveActive  = New(KindCannotRemoveActive, "Cannot remove the current branch.")
	ErrNothingToRemove     = New(KindNothingToRemove, "No reason to remove the file.")
	ErrEmptyCommitMessage  = New(KindEmptyCommitMessage, "Please enter a commit message.")
	ErrNothingStaged       = New(KindNothingStaged, "No changes added to the commit.")
	ErrUntrackedFile       = New(KindUntrackedFileConflict, "There is an untracked file in the way; delete it, or add and commit it first.")
	ErrUncommittedChanges  = New(KindUncommittedChanges, "You have uncommitted changes.")
	ErrBranchIsAncestor    = New(KindBranchIsAncestor, "Given branch is an ancestor of the current branch.")
	ErrCannotMergeSelf     = New(KindCannotMergeSelf, "Cannot merge a branch with itself.")
	ErrInvalidBranchName   = New(KindInvalidBranchName, "Invalid branch name.")
)

// Message returns the user-facing message carried by err, if any.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}
