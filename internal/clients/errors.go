package clients

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound is returned when a row action names an id missing from the cache.
	ErrClientNotFound = errors.New("client not found")

	// ErrNoSelection is returned when an edit or delete is submitted without an open dialog.
	ErrNoSelection = errors.New("no client selected")

	// ErrUnknownAction is returned by Dispatch for an action without a handler.
	ErrUnknownAction = errors.New("unknown row action")
)

// User-facing dialog messages.
const (
	MsgAddRequired  = "Please enter Code, Service, Name (Thai) and Name (Eng)."
	MsgAddDuplicate = "Duplicate (Code + Service). Please use another."
	MsgAddFailed    = "Create failed. Please try again."
	MsgEditRequired = "Service, Name (Thai) and Name (Eng) are required."
	MsgEditFailed   = "Update failed. Please try again."
	MsgDeleteFailed = "Delete failed. Please try again."
)

// ValidationError blocks a submission before any request is made.
type ValidationError struct {
	Message string
	// Fields lists the form fields that failed.
	Fields []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// OperationError is a failed request mapped to the message shown on the
// dialog. The request or transport error stays reachable through Unwrap.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Detail returns the message followed by the underlying cause.
func (e *OperationError) Detail() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%s: %v)", e.Message, e.Op, e.Err)
}
