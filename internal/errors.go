package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeAccountLocked      ErrorCode = "ACCOUNT_LOCKED"
	ErrCodeAccountDisabled    ErrorCode = "ACCOUNT_DISABLED"
	ErrCodeAccessDenied       ErrorCode = "ACCESS_DENIED"

	ErrCodeTokenMalformed       ErrorCode = "TOKEN_MALFORMED"
	ErrCodeTokenBadSignature    ErrorCode = "TOKEN_BAD_SIGNATURE"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenSubjectMismatch ErrorCode = "TOKEN_SUBJECT_MISMATCH"

	ErrCodeUserNotFound   ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailNotFound  ErrorCode = "EMAIL_NOT_FOUND"
	ErrCodeUsernameExists ErrorCode = "USERNAME_EXISTS"
	ErrCodeEmailExists    ErrorCode = "EMAIL_EXISTS"
	ErrCodeUnknownRole    ErrorCode = "UNKNOWN_ROLE"
	ErrCodeNotAnImageFile ErrorCode = "NOT_AN_IMAGE_FILE"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Is lets sentinel AppErrors match wrapped copies of themselves through
// errors.Is, comparing on the stable code rather than pointer identity.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Sentinel errors for the auth core. Wrong password and locked account share
// the same wire shape so a caller cannot probe which usernames exist or which
// accounts are locked; server-side logs keep them distinct.
var (
	ErrInvalidCredentials = NewUnauthorizedError("Username or password incorrect. Please try again", ErrCodeInvalidCredentials)
	ErrAccountLocked      = NewUnauthorizedError("Username or password incorrect. Please try again", ErrCodeAccountLocked)
	ErrAccountDisabled    = NewUnauthorizedError("Username or password incorrect. Please try again", ErrCodeAccountDisabled)
	ErrAccessDenied       = NewForbiddenError("You do not have permission to access this resource", ErrCodeAccessDenied)

	ErrTokenMalformed       = NewUnauthorizedError("Token cannot be parsed", ErrCodeTokenMalformed)
	ErrTokenBadSignature    = NewUnauthorizedError("Token signature is not valid", ErrCodeTokenBadSignature)
	ErrTokenExpired         = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrTokenSubjectMismatch = NewUnauthorizedError("Token does not belong to this subject", ErrCodeTokenSubjectMismatch)

	ErrUserNotFound   = NewNotFoundError("No user found", ErrCodeUserNotFound)
	ErrEmailNotFound  = NewNotFoundError("No user found for email", ErrCodeEmailNotFound)
	ErrUsernameExists = NewConflictError("Username already exists", ErrCodeUsernameExists)
	ErrEmailExists    = NewConflictError("Email already exists", ErrCodeEmailExists)
	ErrUnknownRole    = NewValidationErrorWithCode("Unknown role", ErrCodeUnknownRole)
	ErrNotAnImageFile = NewValidationErrorWithCode("Uploaded file is not an image", ErrCodeNotAnImageFile)
)

func NewValidationErrorWithCode(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
