package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAlreadyCompleted indicates a completion attempt on an item that is no longer outstanding.
var ErrAlreadyCompleted = errors.New("item already completed")

// ErrInvalidKind indicates an operation was attempted on an item kind that does not support it.
var ErrInvalidKind = errors.New("operation not supported for item kind")

// StoreError wraps a failure from the ledger store. For multi-step operations
// it records which sub-step failed and which sub-steps had already been
// applied, so the caller can reconcile the partial state instead of
// re-running the whole operation (which would double-apply effects).
type StoreError struct {
	Op        string   // operation name, e.g. "CompleteItem"
	Step      string   // the sub-step that failed
	Completed []string // sub-steps that had already succeeded
	Err       error
}

// NewStoreError builds a StoreError for a failed sub-step.
func NewStoreError(op, step string, completed []string, err error) *StoreError {
	return &StoreError{Op: op, Step: step, Completed: completed, Err: err}
}

func (e *StoreError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("%s: step %q failed: %v", e.Op, e.Step, e.Err)
	}
	return fmt.Sprintf("%s: step %q failed after [%s]: %v", e.Op, e.Step, strings.Join(e.Completed, ", "), e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
