package errs

import (
	"github.com/pkg/errors"
)

// ErrRejected is matched by every precondition failure of the catalog.
var ErrRejected = errors.New("rejected")

var (
	ErrBookNotFound        = rejected("book not found")
	ErrDuplicateISBN       = rejected("isbn already exists")
	ErrInvalidGenre        = rejected("genre is invalid")
	ErrInvalidCopies       = rejected("total copies must be at least 1")
	ErrCopiesBelowLoans    = rejected("total copies below copies on loan")
	ErrBookOnLoan          = rejected("book has copies on loan")
	ErrMemberNotFound      = rejected("member not found")
	ErrDuplicateMember     = rejected("member already registered")
	ErrMemberNotRegistered = rejected("member is not registered")
	ErrNoCopyAvailable     = rejected("no copy available")
	ErrLoanLimitReached    = rejected("member has too many books")
	ErrNotBorrowed         = rejected("book is not borrowed by member")
)

type rejectedError struct {
	msg string
}

func rejected(msg string) error {
	return &rejectedError{msg: msg}
}

func (e *rejectedError) Error() string {
	return e.msg
}

func (e *rejectedError) Is(target error) bool {
	return target == ErrRejected
}

func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
