package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	// Auth errors
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrUserAlreadyExists  = fmt.Errorf("%w: username or email already exists", ErrConflict)

	// Entity errors
	ErrQuizNotFound = fmt.Errorf("%w: quiz", ErrNotFound)
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// InputError is a rejected request: a client-facing summary plus the failing fields.
type InputError struct {
	Message string           `json:"message"`
	Fields  ValidationErrors `json:"fields,omitempty"`
}

func (e *InputError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Fields.Error())
}

func (e *InputError) Unwrap() error {
	return ErrValidationFailed
}

type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func (pe *PermissionError) Unwrap() error {
	return ErrForbidden
}

// ===== ERROR HELPERS =====

// NewInputError wraps validator output (or nil) under a client-facing message
func NewInputError(message string, err error) *InputError {
	inputErr := &InputError{Message: message}
	var fields ValidationErrors
	if errors.As(err, &fields) {
		inputErr.Fields = fields
	}
	return inputErr
}

const msgInvalidRequest = "Invalid request"

// inputMessage returns missing when every failure is an absent field,
// otherwise a message naming the first field that failed another rule.
func inputMessage(verr error, missing string) string {
	var fields ValidationErrors
	if !errors.As(verr, &fields) || len(fields) == 0 {
		return msgInvalidRequest
	}
	if fields.OnlyRules("required", "not_blank") {
		return missing
	}
	for _, f := range fields {
		if f.Rule != "required" && f.Rule != "not_blank" {
			return fmt.Sprintf("%s %s", f.Field, f.Message)
		}
	}
	return msgInvalidRequest
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if error represents a failed authentication
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if error represents an authenticated caller lacking rights
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
