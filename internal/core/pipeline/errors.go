package pipeline

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures for the outer adapters
type ErrorKind string

const (
	// KindInput is a missing or empty required parameter
	KindInput ErrorKind = "input"
	// KindNoLinks means the search page contained no encrypted links
	KindNoLinks ErrorKind = "no_links"
	// KindDecrypt is a failed single-token decryption requested directly
	KindDecrypt ErrorKind = "decrypt"
	// KindUnexpected wraps any other page-level failure
	KindUnexpected ErrorKind = "unexpected"
)

var (
	ErrMissingParam = errors.New("url missing")
	ErrNoLinks      = errors.New("download links not found")
)

// Error is a domain failure reported to callers as a payload rather than a transport fault
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func inputError(msg string) *Error {
	return &Error{Kind: KindInput, Message: msg, Err: ErrMissingParam}
}

func noLinksError() *Error {
	return &Error{Kind: KindNoLinks, Message: "Download links not found", Err: ErrNoLinks}
}

func unexpectedError(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: fmt.Sprintf("unexpected: %v", err), Err: err}
}

// AsError extracts a *Error from err, wrapping foreign errors as unexpected
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return unexpectedError(err)
}
