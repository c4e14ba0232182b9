package library

import "errors"

// Sentinel errors returned by the stores and the lending engine. Callers
// match them with errors.Is; anything else is a storage failure.
var (
	ErrBookNotFound         = errors.New("book not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrNoCopiesAvailable    = errors.New("no copies available")
	ErrNotBorrowed          = errors.New("book not borrowed by this user")
	ErrAlreadyBorrowed      = errors.New("book already borrowed by this user")
	ErrNegativeAvailability = errors.New("availability cannot go negative")
	ErrBookOnLoan           = errors.New("book has open loans")
)

// StorageError wraps a failure from the underlying database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
