package error

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation        = 4001
	CodeInvalidAmount     = 4002
	CodeInsufficientCoins = 4003
	CodeAlreadyDecided    = 4004
	CodeDuplicateUser     = 4005
	CodeUnknownGiftCard   = 4006
	CodeUnauthenticated   = 4010
	CodeForbidden         = 4030
	CodeUserNotFound      = 4040
	CodeDonationNotFound  = 4041

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrValidation is returned when request input fails validation
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a money amount is not a positive decimal
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrUnauthenticated is returned when no session identity is present
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the caller's role does not allow the operation
	ErrForbidden = errors.New("operation not allowed for this account")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDonationNotFound is returned when the requested donation doesn't exist
	ErrDonationNotFound = errors.New("donation request not found")

	// ErrAlreadyDecided is returned when a donation request has already been
	// accepted or rejected by an NGO
	ErrAlreadyDecided = errors.New("donation request already decided")

	// ErrInsufficientCoins is returned when a redemption exceeds the coin balance
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrUnknownGiftCard is returned when the gift card is not in the catalog
	ErrUnknownGiftCard = errors.New("unknown gift card")

	// ErrNegativeCoins is returned when an operation would drive a balance negative
	ErrNegativeCoins = errors.New("coin balance cannot be negative")

	// ErrDuplicateUser is returned when signing up with an email already in use
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login with a wrong email/password pair
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNGONotVerified is returned when an unverified NGO tries to decide a request
	ErrNGONotVerified = errors.New("ngo account is not verified")

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidAmount):
		return CodeValidation
	case errors.Is(err, ErrInsufficientCoins):
		return CodeInsufficientCoins
	case errors.Is(err, ErrAlreadyDecided):
		return CodeAlreadyDecided
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrUnknownGiftCard):
		return CodeUnknownGiftCard
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNGONotVerified):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDonationNotFound):
		return CodeDonationNotFound
	default:
		return CodeInternalServer
	}
}

// ValidationError reports input validation failures per field
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for the given fields
func NewValidationError(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, reason string) error {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// InsufficientCoinsError provides detailed information for a failed redemption
type InsufficientCoinsError struct {
	UserID    uint64
	Required  int64
	Available int64
}

// Error implements the error interface
func (e *InsufficientCoinsError) Error() string {
	return fmt.Sprintf("insufficient coins for user %d: required %d, available %d, need %d more",
		e.UserID, e.Required, e.Available, e.Shortfall())
}

// Is checks if the target error is an ErrInsufficientCoins
func (e *InsufficientCoinsError) Is(target error) bool {
	return target == ErrInsufficientCoins
}

// Shortfall returns how many more coins the user needs
func (e *InsufficientCoinsError) Shortfall() int64 {
	return e.Required - e.Available
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCoinsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_coins",
		"user_id":    e.UserID,
		"required":   e.Required,
		"available":  e.Available,
		"shortfall":  e.Shortfall(),
		"error_code": CodeInsufficientCoins,
	}
}

// NewInsufficientCoinsError creates a new detailed insufficient coins error
func NewInsufficientCoinsError(userID uint64, required, available int64) error {
	return &InsufficientCoinsError{
		UserID:    userID,
		Required:  required,
		Available: available,
	}
}

// DecisionError represents a failed decision on a donation request
type DecisionError struct {
	RequestID string
	NGOID     uint64
	Decision  string
	Err       error
}

// Error implements the error interface
func (e *DecisionError) Error() string {
	return fmt.Sprintf("decision %q on request %s by ngo %d failed: %v",
		e.Decision, e.RequestID, e.NGOID, e.Err)
}

// Unwrap returns the underlying error
func (e *DecisionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *DecisionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "decision_error",
		"request_id": e.RequestID,
		"ngo_id":     e.NGOID,
		"decision":   e.Decision,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewDecisionError creates a detailed decision error
func NewDecisionError(requestID string, ngoID uint64, decision string, err error) error {
	return &DecisionError{
		RequestID: requestID,
		NGOID:     ngoID,
		Decision:  decision,
		Err:       err,
	}
}

// IsValidationError checks if the error is an input validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidAmount)
}

// IsAlreadyDecidedError checks if the error is a decision conflict
func IsAlreadyDecidedError(err error) bool {
	return errors.Is(err, ErrAlreadyDecided)
}

// IsInsufficientCoinsError checks if the error is related to insufficient coins
func IsInsufficientCoinsError(err error) bool {
	return errors.Is(err, ErrInsufficientCoins)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDonationNotFound) ||
		errors.Is(err, ErrUnknownGiftCard)
}

// IsAuthError checks if the error relates to authentication or authorization
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNGONotVerified)
}
