package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_ERROR"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"

	// Domain validation failures. None of them are retried by the core.
	CodeEmptyQueue        = "EMPTY_QUEUE"
	CodeIncompleteProfile = "INCOMPLETE_PROFILE"
	CodeDuplicateEntry    = "DUPLICATE_ENTRY"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotRateable       = "NOT_RATEABLE"
	CodeInvalidScore      = "INVALID_SCORE"
	CodeInvalidFeedback   = "INVALID_FEEDBACK"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
}

func EmptyQueue() *AppError {
	return New(CodeEmptyQueue, "Recycling queue is empty", http.StatusUnprocessableEntity, nil)
}

func IncompleteProfile(missing string) *AppError {
	return New(CodeIncompleteProfile, fmt.Sprintf("Profile is missing %s", missing), http.StatusUnprocessableEntity, nil)
}

func DuplicateEntry(itemID string) *AppError {
	return New(CodeDuplicateEntry, fmt.Sprintf("Item %s is already in the queue", itemID), http.StatusConflict, nil)
}

func InvalidQuantity(message string) *AppError {
	return New(CodeInvalidQuantity, message, http.StatusUnprocessableEntity, nil)
}

func InvalidTransition(from, to string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("Cannot move request from %s to %s", from, to), http.StatusConflict, nil)
}

func NotRateable(reason string) *AppError {
	return New(CodeNotRateable, reason, http.StatusConflict, nil)
}

func InvalidScore(score, min, max int) *AppError {
	return New(CodeInvalidScore, fmt.Sprintf("Score %d must be between %d and %d", score, min, max), http.StatusUnprocessableEntity, nil)
}

func InvalidFeedback(max int) *AppError {
	return New(CodeInvalidFeedback, fmt.Sprintf("Feedback must be at most %d characters", max), http.StatusUnprocessableEntity, nil)
}
