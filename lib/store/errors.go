package store

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/pmkv/lib/db"
)

// --------------------------------------------------------------------------
// Error Kinds
// --------------------------------------------------------------------------

// Kind classifies an Error.
type Kind uint8

const (
	KindInternal    Kind = iota // 0: Unexpected failure, a bug or broken environment.
	KindLookup                  // 1: A user, project, key or mailbox index does not exist.
	KindValidation              // 2: The operation is not allowed in the current state or the input is malformed.
	KindAuth                    // 3: Authentication failed.
	KindPersistence             // 4: Reading or writing the data directory failed.
)

func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "LookupFailure"
	case KindValidation:
		return "ValidationFailure"
	case KindAuth:
		return "AuthFailure"
	case KindPersistence:
		return "PersistenceFailure"
	default:
		return "InternalFailure"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that carries a Kind, a message and optionally
// the error that caused it.
type Error struct {
	Kind Kind   // The error kind
	Msg  string // The error message
	Err  error  // The wrapped cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the cause of the error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given kind and message.
func NewError(kind Kind, msg string) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
	}
}

// Errorf formats a message like fmt.Errorf. A %w verb keeps the wrapped error
// reachable through errors.Is and errors.As.
func Errorf(kind Kind, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{
		Kind: kind,
		Msg:  err.Error(),
		Err:  errors.Unwrap(err),
	}
}

func Lookupf(format string, args ...any) *Error      { return Errorf(KindLookup, format, args...) }
func Validationf(format string, args ...any) *Error  { return Errorf(KindValidation, format, args...) }
func Authf(format string, args ...any) *Error        { return Errorf(KindAuth, format, args...) }
func Persistencef(format string, args ...any) *Error { return Errorf(KindPersistence, format, args...) }

// --------------------------------------------------------------------------
// Classification
// --------------------------------------------------------------------------

// KindOf returns the kind of err. Errors of package db are classified by
// their sentinel, any other error is KindInternal.
func KindOf(err error) Kind {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e.Kind
	case errors.Is(err, db.ErrKeyNotFound):
		return KindLookup
	case errors.Is(err, db.ErrDuplicateName), errors.Is(err, db.ErrInvalidValue):
		return KindValidation
	default:
		return KindInternal
	}
}

// IsKind reports whether err is a non-nil error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Classify wraps a plain error into an *Error of its kind. *Error values and
// nil are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindOf(err), Msg: err.Error(), Err: err}
}
