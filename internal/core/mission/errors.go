package mission

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a draft cannot become a mission.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid mission: %s", e.Reason)
	}
	return fmt.Sprintf("invalid mission %s: %s", e.Field, e.Reason)
}

// ConfigurationError marks a programming error: the store was used outside an
// open session. It is not meant to be recovered from at runtime.
type ConfigurationError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mission store misconfigured: %s", e.Reason)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
