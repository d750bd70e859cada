package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "card", "link", "config"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IndexError reports an action that addressed a card or link that doesn't exist.
// Producers of actions are expected to guard indices, so this is a contract
// violation rather than a user error.
type IndexError struct {
	Action string // action that failed, e.g. "remove_link"
	What   string // "card" or "link"
	Index  int
	Len    int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s index %d out of range [0,%d)", e.Action, e.What, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// Helper constructors for common cases

func CardNotFound(nameOrIndex string) error {
	return &NotFoundError{Resource: "card", ID: nameOrIndex}
}

func LinkNotFound(labelOrIndex, card string) error {
	return &NotFoundError{Resource: "link", ID: fmt.Sprintf("%s (in card %s)", labelOrIndex, card)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func CardIndex(action string, index, length int) error {
	return &IndexError{Action: action, What: "card", Index: index, Len: length}
}

func LinkIndex(action string, index, length int) error {
	return &IndexError{Action: action, What: "link", Index: index, Len: length}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsIndexError checks if an error is an out-of-range index error.
func IsIndexError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
