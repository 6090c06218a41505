package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotApplicable indicates the declaration does not describe an endpoint.
	ErrNotApplicable = errors.New("not applicable")

	// ErrAmbiguousMapping indicates parameters or routing metadata that cannot
	// be resolved to a single endpoint shape.
	ErrAmbiguousMapping = errors.New("ambiguous mapping")

	// ErrParse indicates a source loading or directive parsing failure.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrCatalog indicates a failed call to the API catalog.
	ErrCatalog = errors.New("catalog error")
)

// NotApplicableError reports a type or method without the metadata needed to
// describe an endpoint. Callers are expected to report it and stop.
type NotApplicableError struct {
	// Target names the type or method, e.g. "OrderController.Get"
	Target string
	// Reason explains what is missing
	Reason string
}

// Error returns a human-readable error message.
func (e *NotApplicableError) Error() string {
	msg := "not applicable"
	if e.Target != "" {
		msg += ": " + e.Target
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *NotApplicableError) Is(target error) bool {
	return target == ErrNotApplicable
}

// AmbiguousMappingError reports parameters or routing metadata that admit more
// than one interpretation.
type AmbiguousMappingError struct {
	// Method is the method being described
	Method string
	// Field is the offending parameter or attribute
	Field string
	// Message describes the ambiguity
	Message string
}

// Error returns a human-readable error message.
func (e *AmbiguousMappingError) Error() string {
	msg := "ambiguous mapping"
	if e.Method != "" {
		msg += " in " + e.Method
	}
	if e.Field != "" {
		msg += " at " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *AmbiguousMappingError) Is(target error) bool {
	return target == ErrAmbiguousMapping
}

// ParseError represents a failure to load Go source or parse a directive.
type ParseError struct {
	// Path is the file path or package pattern
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// CatalogError represents a failed API catalog call, either a transport
// failure or a response carrying a non-zero errcode.
type CatalogError struct {
	// Operation is the catalog endpoint, e.g. "/api/interface/save"
	Operation string
	// StatusCode is the HTTP status (0 if the request was not sent)
	StatusCode int
	// Code is the catalog's errcode (0 if not reported)
	Code int
	// Message is the catalog's errmsg or a local description
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *CatalogError) Error() string {
	msg := "catalog error"
	if e.Operation != "" {
		msg += " calling " + e.Operation
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Code != 0 {
		msg += fmt.Sprintf(" (errcode %d)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *CatalogError) Is(target error) bool {
	return target == ErrCatalog
}
