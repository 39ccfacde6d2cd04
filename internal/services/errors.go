package services

import "fmt"

// ValidationError reports field-level problems with a submitted checkout
// session. It is recoverable: the caller re-displays the submitted data with
// the per-field messages attached.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// StoreError wraps a persistence failure. The underlying cause is for logs;
// users only ever see a generic message.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("order store failure: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
