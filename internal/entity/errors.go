package entity

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden          = errors.New("forbidden: access denied")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrTaskNotFound       = errors.New("task not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateBid       = errors.New("tasker already has a pending bid on this task")
	ErrDuplicateReview    = errors.New("review already exists for this booking")
	ErrInvalidState       = errors.New("operation is not valid for current entity status")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotActive      = errors.New("user is not active")
	ErrUnavailable        = errors.New("storage temporarily unavailable")
)

// ValidationError - ошибка валидации входных данных, исправимая клиентом
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError - недопустимый переход статуса, называет текущий и целевой
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s transition: %s -> %s", e.Entity, e.From, e.To)
}
