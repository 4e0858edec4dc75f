package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the user-facing error category. Every failure that
// leaves the orchestrator is one of these; raw transport errors never
// reach the presentation layer.
type Code string

const (
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNoMatch             Code = "NO_MATCH"
	CodeAppointmentNotFound Code = "APPOINTMENT_NOT_FOUND"
	CodeSubmissionRejected  Code = "SUBMISSION_REJECTED"
	CodeDuplicateSubmission Code = "DUPLICATE_SUBMISSION"
	CodeStaleState          Code = "STALE_STATE"
	CodeServiceUnavailable  Code = "SERVICE_UNAVAILABLE"
	CodeIdentityLookup      Code = "IDENTITY_LOOKUP_FAILED"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// AppError is the application error carried across service boundaries.
type AppError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the category to the status returned to the client.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusUnprocessableEntity
	case CodeNoMatch, CodeAppointmentNotFound:
		return http.StatusNotFound
	case CodeSubmissionRejected:
		return http.StatusBadRequest
	case CodeDuplicateSubmission, CodeStaleState:
		return http.StatusConflict
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case CodeIdentityLookup:
		return http.StatusBadGateway
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

func ValidationField(field, message string) *AppError {
	return Validation(map[string]string{field: message})
}

// NoMatch covers both the 404 and the generic 4xx search outcome. The
// operator message is identical, only the internal code differs.
func NoMatch(code Code) *AppError {
	return &AppError{
		Code:    code,
		Message: "no appointment matches those details, verify and retry",
	}
}

func SubmissionRejected(message string, err error) *AppError {
	return &AppError{
		Code:    CodeSubmissionRejected,
		Message: message,
		Err:     err,
	}
}

func DuplicateSubmission() *AppError {
	return &AppError{
		Code:    CodeDuplicateSubmission,
		Message: "a submission for this appointment is already in progress",
	}
}

func StaleState(message string) *AppError {
	if message == "" {
		message = "data changed, please refresh"
	}
	return &AppError{
		Code:    CodeStaleState,
		Message: message,
	}
}

func Unavailable(err error) *AppError {
	return &AppError{
		Code:    CodeServiceUnavailable,
		Message: "service unavailable, retry later",
		Err:     err,
	}
}

func IdentityLookup(err error) *AppError {
	return &AppError{
		Code:    CodeIdentityLookup,
		Message: "identity lookup failed, enter the name manually",
		Err:     err,
	}
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// From extracts an *AppError from err, wrapping unknown errors as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// Is reports whether err carries the given category code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
