package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for wrapping repository errors into AppError.

// ErrNotFound converts a missing-record error (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict builds a 409 for duplicates and non-overwritable state.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidState reports a transition attempted from the wrong state,
// naming the state the entity is actually in.
func ErrInvalidState(domain, entity, actual string) *AppError {
	return New(CodeInvalidStatus, domain,
		fmt.Sprintf("%s is in state '%s' and cannot be modified", entity, actual),
		http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the business rules forbid.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrEditWindowExpired rejects edits outside the allowed time window.
func ErrEditWindowExpired(domain, message string) *AppError {
	return New(CodeEditWindowExpired, domain, message, http.StatusForbidden)
}

// Predefined errors for frequent, static cases.

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrUserInactive rejects engagements with parties that are not active.
var ErrUserInactive = New(
	CodeNotFound,
	"user",
	"User is not active",
	http.StatusNotFound,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)
