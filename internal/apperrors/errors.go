package apperrors

import (
	"errors"
	"net/http"
)

// Error is a request-recoverable error carrying the HTTP status it maps to.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports malformed or missing input.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Conflict reports a uniqueness violation, such as a duplicate email.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Reference reports a dangling foreign key, such as an unknown school.
func Reference(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound reports a missing record.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// InvalidState reports an illegal lifecycle transition attempt.
func InvalidState(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Forbidden reports a denied authorization decision.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so callers cannot enumerate registered addresses.
var ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: "invalid email or password"}

// ErrPendingApproval is returned when a correctly authenticated account has
// not yet been approved by an administrator.
var ErrPendingApproval = &Error{Status: http.StatusForbidden, Message: "account is awaiting administrator approval"}

// StatusOf returns the HTTP status an error maps to, or 500 for anything
// outside the taxonomy.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// IsStatus reports whether err belongs to the taxonomy with the given status.
func IsStatus(err error, status int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Status == status
}
