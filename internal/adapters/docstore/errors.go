package docstore

import (
	"errors"
	"fmt"
)

// Common document store error types
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidPath      = errors.New("invalid document path")
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// StoreError represents a document store operation error with additional context
type StoreError struct {
	Op   string // Operation that failed (e.g., "Get", "Set")
	Path string // Document path involved in the operation
	Err  error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("docstore %s operation failed for '%s': %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("docstore %s operation failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError
func NewStoreError(op, path string, err error) *StoreError {
	return &StoreError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// IsNotFound returns true if the error indicates a document was not found
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}

func validatePath(op, collection, id string) error {
	if collection == "" || id == "" {
		return NewStoreError(op, Path(collection, id), ErrInvalidPath)
	}
	return nil
}
