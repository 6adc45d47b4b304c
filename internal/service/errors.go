package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so transport code can map it to a status
// without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInsufficientFunds
	KindInvalid
	KindUnauthorized
)

// Error carries a classification alongside a user-presentable message. Err,
// when set, holds the underlying cause for logs.
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

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func InsufficientFunds(message string) error {
	return &Error{Kind: KindInsufficientFunds, Message: message}
}

func Invalid(message string) error {
	return &Error{Kind: KindInvalid, Message: message}
}

func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report KindInternal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
