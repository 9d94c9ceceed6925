package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures requirement or catalog validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AllocationError reports that a requirement could not be placed on any
// catalog entry. Reasons carries one entry per rejected candidate.
type AllocationError struct {
	Requirement string
	Reasons     []string
}

// NewAllocationError constructs an AllocationError.
func NewAllocationError(requirement string, reasons []string) error {
	return &AllocationError{Requirement: requirement, Reasons: reasons}
}

func (e *AllocationError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Reasons) == 0 {
		return fmt.Sprintf("allocation error: no capability matches %s", e.Requirement)
	}
	return fmt.Sprintf("allocation error: no capability matches %s: %v",
		e.Requirement, e.Reasons)
}

// CatalogError indicates a problem loading or resolving a SKU catalog.
type CatalogError struct {
	Path    string
	Message string
	Err     error
}

// NewCatalogError constructs a CatalogError.
func NewCatalogError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &CatalogError{Path: path, Message: message, Err: err}
}

func (e *CatalogError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path != "" {
		return fmt.Sprintf("catalog error [%s]: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *CatalogError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
