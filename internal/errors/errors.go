// Package errors provides structured error handling with user-friendly messages.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors for better user experience.
type ErrorType string

const (
	// Configuration errors
	ConfigNotFound    ErrorType = "config_not_found"
	ConfigInvalid     ErrorType = "config_invalid"
	UnsupportedFormat ErrorType = "unsupported_format"

	// Menu session errors
	InvalidKey   ErrorType = "invalid_key"
	InvalidState ErrorType = "invalid_state"
	InputClosed  ErrorType = "input_closed"

	// System errors
	PermissionDenied ErrorType = "permission_denied"
	FileNotFound     ErrorType = "file_not_found"

	// Validation errors
	ValidationFailed ErrorType = "validation_failed"

	// Internal errors
	InternalError ErrorType = "internal_error"
)

// KeymenuError represents a structured error with user-friendly messaging.
type KeymenuError struct {
	Type        ErrorType `json:"type"`
	Message     string    `json:"message"`
	Value       string    `json:"value,omitempty"`
	Details     string    `json:"details,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Cause       error     `json:"-"`
}

func (e *KeymenuError) Error() string {
	var parts []string

	parts = append(parts, e.Message)

	if e.Details != "" {
		parts = append(parts, fmt.Sprintf("Details: %s", e.Details))
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, fmt.Sprintf("Suggestions:\n  • %s", strings.Join(e.Suggestions, "\n  • ")))
	}

	return strings.Join(parts, "\n\n")
}

func (e *KeymenuError) Unwrap() error {
	return e.Cause
}

// New creates a new KeymenuError with the given type and message.
func New(errorType ErrorType, message string) *KeymenuError {
	return &KeymenuError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap creates a new KeymenuError that wraps an existing error.
func Wrap(err error, errorType ErrorType, message string) *KeymenuError {
	return &KeymenuError{
		Type:    errorType,
		Message: message,
		Cause:   err,
	}
}

// WithValue records the offending input (a key, a field value, a path).
func (e *KeymenuError) WithValue(value string) *KeymenuError {
	e.Value = value
	return e
}

// WithDetails adds detailed information to an error.
func (e *KeymenuError) WithDetails(details string) *KeymenuError {
	e.Details = details
	return e
}

// WithSuggestion adds a helpful suggestion to an error.
func (e *KeymenuError) WithSuggestion(suggestion string) *KeymenuError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple helpful suggestions to an error.
func (e *KeymenuError) WithSuggestions(suggestions []string) *KeymenuError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently encountered issues

// ConfigNotFoundError creates an error for missing configuration.
func ConfigNotFoundError(path string) *KeymenuError {
	return New(ConfigNotFound, "Configuration file not found").
		WithValue(path).
		WithDetails(fmt.Sprintf("Looking for config at: %s", path)).
		WithSuggestions([]string{
			"Run 'keymenu config init' to create a new configuration",
			"Check if the config file exists and is readable",
		})
}

// ConfigInvalidError creates an error for a menu configuration that breaks an invariant.
// The message names the invariant; field is the offending configuration field.
func ConfigInvalidError(field, message string) *KeymenuError {
	return New(ConfigInvalid, message).
		WithValue(field)
}

// UnsupportedFormatError creates an error for a file whose format cannot be read.
func UnsupportedFormatError(path, format string) *KeymenuError {
	return New(UnsupportedFormat, fmt.Sprintf("Unsupported file format: %s", format)).
		WithValue(path).
		WithSuggestion("Use a .yaml, .yml or .json file")
}

// InvalidKeyError creates an error for a command token the menu does not accept.
func InvalidKeyError(key string) *KeymenuError {
	return New(InvalidKey, fmt.Sprintf("Invalid menu key: %s", key)).
		WithValue(key)
}

// InputClosedError reports that the input ended before a selection was made.
func InputClosedError() *KeymenuError {
	return New(InputClosed, "Input closed before a selection was made")
}

// FileNotFoundError creates an error for a missing input file.
func FileNotFoundError(path string) *KeymenuError {
	return New(FileNotFound, fmt.Sprintf("File not found: %s", path)).
		WithValue(path)
}

// ValidationError creates an error for validation failures.
func ValidationError(field string, value string, reason string) *KeymenuError {
	return New(ValidationFailed, fmt.Sprintf("Validation failed for '%s'", field)).
		WithValue(value).
		WithDetails(fmt.Sprintf("Value '%s' is invalid: %s", value, reason))
}

// PermissionDeniedError creates an error for permission issues.
func PermissionDeniedError(path string, operation string) *KeymenuError {
	return New(PermissionDenied, fmt.Sprintf("Permission denied: cannot %s %s", operation, path)).
		WithValue(path).
		WithSuggestions([]string{
			"Check file/directory permissions",
			"Ensure you have the required access rights",
		})
}

// As finds the first KeymenuError in err's chain.
func As(err error) (*KeymenuError, bool) {
	var kerr *KeymenuError
	if stderrors.As(err, &kerr) {
		return kerr, true
	}
	return nil, false
}

// IsType checks if an error (or anything it wraps) is a KeymenuError of a specific type.
func IsType(err error, errorType ErrorType) bool {
	if kerr, ok := As(err); ok {
		return kerr.Type == errorType
	}
	return false
}

// GetType returns the ErrorType of a KeymenuError, or InternalError for other errors.
func GetType(err error) ErrorType {
	if kerr, ok := As(err); ok {
		return kerr.Type
	}
	return InternalError
}
