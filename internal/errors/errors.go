// internal/errors/errors.go
package appErrors

import "fmt"

// ValidationError is returned when a required field is missing from a cliente
type ValidationError struct {
    Field string
}

func (e *ValidationError) Error() string {
    return fmt.Sprintf("missing required field %q", e.Field)
}

// Helper constructor
func NewValidation(field string) error {
    return &ValidationError{Field: field}
}

// NotFoundError is returned when no cliente carries the requested identifier
type NotFoundError struct {
    ID int
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("cliente with ID %d not found", e.ID)
}

func NewNotFound(id int) error {
    return &NotFoundError{ID: id}
}

// StorageKind separates unreadable/unwritable storage from malformed content.
type StorageKind string

const (
    KindIO    StorageKind = "io"
    KindParse StorageKind = "parse"
)

// StorageError wraps any failure of the backing store.
type StorageError struct {
    Op   string
    Kind StorageKind
    Err  error
}

func (e *StorageError) Error() string {
    return fmt.Sprintf("storage %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error {
    return e.Err
}

func NewIOError(op string, err error) error {
    return &StorageError{Op: op, Kind: KindIO, Err: err}
}

func NewParseError(op string, err error) error {
    return &StorageError{Op: op, Kind: KindParse, Err: err}
}
