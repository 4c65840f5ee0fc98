// Package mission contains the pure business logic for mission operations.
// This is part of the Functional Core - no I/O, only pure functions.
package mission

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var draftValidate *validator.Validate

func init() {
	draftValidate = validator.New()
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Field   string // Offending field (populated when not allowed)
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as a *ValidationError if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &ValidationError{Field: r.Field, Reason: r.Reason}
}

// CanAddMission evaluates whether a draft may be inserted into the store.
// Rule: the title must be non-empty. Whitespace counts as content; every other
// business rule (known vessel, plausible due date) belongs to the caller composing the draft.
func CanAddMission(draft Draft) GuardResult {
	err := draftValidate.Struct(draft)
	if err == nil {
		return GuardResult{Allowed: true}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return GuardResult{
			Allowed: false,
			Field:   strings.ToLower(fe.Field()),
			Reason:  "must not be empty",
		}
	}
	return GuardResult{Allowed: false, Reason: err.Error()}
}

// SessionContext provides the lifecycle facts needed by the session guard.
type SessionContext struct {
	Opened bool
	Closed bool
}

// CanAccessStore evaluates whether the store may be handed out.
// Rule: only between session open and session close.
func CanAccessStore(ctx SessionContext) error {
	if !ctx.Opened {
		return &ConfigurationError{Reason: "store accessed before the session was opened"}
	}
	if ctx.Closed {
		return &ConfigurationError{Reason: "store accessed after the session was closed"}
	}
	return nil
}
