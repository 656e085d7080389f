// Package apperr defines the error kinds the service reports to callers:
// validation failures with per-field messages, ownership violations, and
// missing resources. Handlers map these to HTTP statuses; everything else
// is treated as an internal error.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries one message per offending field. All rule
// violations for a request are collected before it is returned, so the
// caller sees every problem at once.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthorizationError means the requester does not own the target resource.
type AuthorizationError struct {
	Resource string
	ID       string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized to access %s %s", e.Resource, e.ID)
}

// NotFoundError means the target id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// IsValidation reports whether err is (or wraps) a ValidationError and
// returns it when so.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var ae *AuthorizationError
	return errors.As(err, &ae)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
