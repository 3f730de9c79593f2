package ports

import (
	"errors"
	"fmt"
)

// ErrNotFound: fetch/update addressed a key that was never written.
var ErrNotFound = errors.New("message not found")

// UploadError carries the upload backend's reported message verbatim.
type UploadError struct {
	Message string
	Status  int
}

func (e *UploadError) Error() string {
	return e.Message
}

// ValidationError blocks a submit before any network call happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StoreError wraps any store read/write failure that is not a missing key.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
