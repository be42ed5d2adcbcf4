package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any ValidationError through errors.Is
	ErrValidation = errors.New("validation error")
	// ErrConfiguration matches any ConfigurationError through errors.Is
	ErrConfiguration = errors.New("configuration error")
)

// ValidationError reports a malformed transaction record
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError reports invalid projection or simulation parameters
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError creates a ConfigurationError for the given field
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) succeed
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
