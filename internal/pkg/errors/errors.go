// Package errors defines the error taxonomy shared by the index migration components.
//
// Every error built here matches its sentinel with errors.Is, unwraps to the underlying
// cause when there is one, and carries a gRPC code so status.Code(err) reports it.
package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrNotFound is reported when the engine says a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is reported when a create precondition is violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAmbiguousAlias is reported when an alias is not bound to exactly one index.
	ErrAmbiguousAlias = errors.New("ambiguous alias")
	// ErrLedgerRead wraps any failure while reading a migration ledger.
	ErrLedgerRead = errors.New("ledger read failed")
	// ErrLedgerWrite wraps any failure while writing a migration ledger.
	ErrLedgerWrite = errors.New("ledger write failed")
	// ErrUnknownMigrationKind is reported for a persisted kind outside the known set.
	ErrUnknownMigrationKind = errors.New("unknown migration kind")
	// ErrMissingConfiguration is reported when no configuration source supplies a value.
	ErrMissingConfiguration = errors.New("missing configuration")
	// ErrInvalidMigration is reported for malformed migration definitions.
	ErrInvalidMigration = errors.New("invalid migration")
	// ErrLeaseHeld is reported when another runner holds the lease of a target.
	ErrLeaseHeld = errors.New("lease held")
	// ErrLeaseLost is reported when a lease expired or changed owner while its holder was running.
	ErrLeaseLost = errors.New("lease lost")
)

// Error is a classified error.
type Error struct {
	Kind    error
	Code    codes.Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Error(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// GRPCStatus lets status.Code and status.Convert read the classification.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Error())
}

// New returns a classified error without an underlying cause.
func New(kind error, code codes.Code, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns a classified error around cause.
func Wrap(kind error, code codes.Code, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
