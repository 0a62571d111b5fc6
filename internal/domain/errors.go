package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindDelivery    ErrorKind = "delivery"
	KindPersistence ErrorKind = "persistence"
)

// Error is a user-visible failure. Message is shown to the caller,
// Hint tells them how to fix the input. None of these are fatal.
type Error struct {
	Kind    ErrorKind
	Message string
	Hint    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func NewValidationError(message, hint string) *Error {
	return &Error{Kind: KindValidation, Message: message, Hint: hint}
}

func NewNotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func IsValidation(err error) bool { return hasKind(err, KindValidation) }
func IsNotFound(err error) bool   { return hasKind(err, KindNotFound) }

func hasKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// UserMessage renders an error for chat output: message plus hint when present.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Hint != "" {
			return fmt.Sprintf("❌ %s\n\n%s", e.Message, e.Hint)
		}
		return "❌ " + e.Message
	}
	return "❌ Произошла ошибка. Попробуйте еще раз."
}
