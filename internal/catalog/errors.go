package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a title or chapter that does not exist in the store,
// or a chapter adjacency that is absent.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected field on an insert or draft submit.
// The draft/input is left untouched so the caller can correct and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps an underlying persistence or query failure. It is not
// retried automatically.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
