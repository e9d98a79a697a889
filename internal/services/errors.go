// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/utils"
)

// ValidationError reports malformed input.
type ValidationError struct {
	Message string
	Fields  []utils.ValidationError
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports a missing record. Ownership mismatches are reported
// the same way so non-owners cannot probe for existence.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

const (
	ResourceListing = "listing"
	ResourceProfile = "profile"
	ResourceUser    = "user"
)

func newValidationError(err error) error {
	if fields := utils.GetValidationErrors(err); len(fields) > 0 {
		return &ValidationError{Message: fields[0].Message, Fields: fields}
	}
	return &ValidationError{Message: err.Error()}
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFoundError for resource and
// wraps anything else as a store failure.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return fmt.Errorf("database error: %w", err)
}
