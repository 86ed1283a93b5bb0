// Package apperr defines the domain error taxonomy. Repos and services
// return these; the HTTP boundary maps them to status codes and a
// uniform {success:false, message} envelope.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // required field missing, enum out of range, bound violated
	KindDuplicate       // unique-index collision
	KindNotFound        // malformed or non-existent identifier
	KindAuth            // missing/invalid/expired credential, inactive account
	KindAuthz           // authenticated but insufficient role
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return newf(KindValidation, format, args...) }
func Duplicatef(format string, args ...any) *Error  { return newf(KindDuplicate, format, args...) }
func NotFoundf(format string, args ...any) *Error   { return newf(KindNotFound, format, args...) }
func Authf(format string, args ...any) *Error       { return newf(KindAuth, format, args...) }
func Authzf(format string, args ...any) *Error      { return newf(KindAuthz, format, args...) }

// Message returns the user-facing message without any wrapped driver
// detail, or "" for errors outside the taxonomy.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FromUnique turns a sqlite UNIQUE-constraint violation into a
// Duplicate error naming the offending field, and passes everything
// else through untouched. The driver reports violations as
// "UNIQUE constraint failed: table.column".
func FromUnique(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx < 0 {
		return err
	}
	field := msg[idx+len("UNIQUE constraint failed: "):]
	if end := strings.IndexAny(field, " ("); end > 0 {
		field = field[:end]
	}
	if dot := strings.LastIndex(field, "."); dot >= 0 {
		field = field[dot+1:]
	}
	return &Error{Kind: KindDuplicate, Message: field + " already exists", Err: err}
}
