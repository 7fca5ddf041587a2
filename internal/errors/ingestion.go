package errors

import (
	"fmt"
	"strings"
)

// MissingFileError is returned by the loader when one or more of the
// expected dataset files are absent from the data directory.
type MissingFileError struct {
	Files []string
}

// Error implements the error interface
func (e *MissingFileError) Error() string {
	return fmt.Sprintf("missing dataset file(s): %s", strings.Join(e.Files, ", "))
}

// SchemaError is returned by the loader when a required column is absent
// from a loaded table's header row.
type SchemaError struct {
	Table  string
	Column string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: required column %q not found", e.Table, e.Column)
}

// IngestionError wraps a fatal load failure with the table it occurred in.
// Anything that is not fatal to the load call is reported as a data-quality
// event by the loader instead, never as an error.
type IngestionError struct {
	Table   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *IngestionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest %s: %s: %v", e.Table, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest %s: %s", e.Table, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with IngestionError
func (e *IngestionError) Unwrap() error {
	return e.Cause
}

// NewIngestionError creates a fatal ingestion error for a table.
func NewIngestionError(table, message string, cause error) *IngestionError {
	return &IngestionError{Table: table, Message: message, Cause: cause}
}
