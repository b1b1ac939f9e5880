package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("document not found")

	// ErrNumberingConflict marks a duplicate document number. The
	// atomic counter makes this structurally impossible, so hitting it
	// is a server-side integrity failure, never something to retry or
	// silently overwrite.
	ErrNumberingConflict = errors.New("duplicate document number detected")
)

// ValidationError rejects malformed calculation input before anything
// is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// FiscalValidationError reports which document-type rule failed.
type FiscalValidationError struct {
	Rule    string
	Message string
}

func (e *FiscalValidationError) Error() string {
	return fmt.Sprintf("fiscal validation failed (%s): %s", e.Rule, e.Message)
}

func NewFiscalValidationError(rule, message string) *FiscalValidationError {
	return &FiscalValidationError{Rule: rule, Message: message}
}

// StateError rejects an operation not permitted in the document's
// current state. The document is left unchanged.
type StateError struct {
	Status Status
	Action string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s document in state %s", e.Action, e.Status)
}

func NewStateError(status Status, action string) *StateError {
	return &StateError{Status: status, Action: action}
}
