package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"

	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnacks    = "snacks"

	ItemTypeMeal = "meal"
	ItemTypeFood = "food"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessagePleaseRetry          = "storage failure, please retry"

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrParseDate      = errors.New("failed to parse date, expected YYYY-MM-DD")
	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)

// ValidationError reports a field-level invariant violation. It is
// returned before any write happens, so callers can surface it as an
// actionable message with no partial state to clean up.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransactionError wraps a storage failure that rolled back a whole
// materialize/resync call. Retrying is safe: materialization is
// idempotent.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction rolled back: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func (e *TransactionError) Retryable() bool { return true }

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrParseDate
	}
	return t, nil
}

// DateOnly truncates t to its calendar date in UTC. All entry and goal
// dates are normalized through this before storage or comparison.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsValidMealType reports whether s is one of the four diary slots.
func IsValidMealType(s string) bool {
	switch s {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnacks:
		return true
	}
	return false
}
