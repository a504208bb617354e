package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies failures at the gateway and store boundaries so
// controllers can pick the right user-facing outcome.
type Kind int

const (
	KindInvalidInput Kind = iota
	KindUpstream
	KindPersistence
	KindNotOwned
)

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

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidInput(message string) error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func Upstream(message string, err error) error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

func Persistence(message string, err error) error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func NotOwned(message string) error {
	return &Error{Kind: KindNotOwned, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsInvalidInput(err error) bool { return IsKind(err, KindInvalidInput) }
func IsUpstream(err error) bool     { return IsKind(err, KindUpstream) }
func IsPersistence(err error) bool  { return IsKind(err, KindPersistence) }
func IsNotOwned(err error) bool     { return IsKind(err, KindNotOwned) }
