// Package apperr defines the error kinds the scheduling core distinguishes:
// malformed input, uniqueness-invariant violations, missing records, and
// transport failures against the backing store. Handlers map kinds to HTTP
// statuses in one place instead of inspecting error strings.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks malformed input: bad date/time formats, missing
	// required fields, non-chronological start/end.
	KindValidation
	// KindConflict marks a uniqueness-invariant violation, e.g. assigning
	// the same staff-pool entry twice to the same room.
	KindConflict
	// KindNotFound marks a reference to a record that does not exist,
	// possibly because another user already deleted it.
	KindNotFound
	// KindTransport marks a network or server failure while talking to the
	// backing store.
	KindTransport
)

// Error carries a kind alongside a human-readable message and an optional
// wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Transport(msg string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: msg, Err: cause}
}

// KindOf returns the kind of err, unwrapping as needed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsTransport(err error) bool  { return KindOf(err) == KindTransport }

// uniqueViolation is the PostgreSQL error code for a unique index violation.
const uniqueViolation = "23505"

// FromStore translates a repository error into the taxonomy: no rows
// becomes NotFound, a unique-index violation becomes Conflict with the
// given message, anything else is a Transport failure.
func FromStore(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound("%s", notFoundMsg)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Conflict("%s", conflictMsg)
	}
	return Transport("store operation failed", err)
}
