package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// ServiceUnavailable creates a new AppError for a dependency that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{"field": field},
	}
}

// UnsupportedFormat creates a new AppError for an upload whose extension is not accepted.
func UnsupportedFormat(ext string, supported []string) *AppError {
	return &AppError{
		Code:       ErrCodeUnsupportedFormat,
		Message:    fmt.Sprintf("Unsupported format %q. Accepted: %s", ext, strings.Join(supported, ", ")),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"format": ext, "supported": supported},
	}
}

// MediaDecode creates a new AppError for a transcoder failure. diagnostic is
// the tool's own error output and is surfaced to the client.
func MediaDecode(diagnostic string, cause error) *AppError {
	diagnostic = strings.TrimSpace(diagnostic)
	msg := "Audio could not be decoded"
	if diagnostic != "" {
		msg = fmt.Sprintf("%s: %s", msg, diagnostic)
	}
	return &AppError{
		Code: ErrCodeMediaDecode, Message: msg,
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{"diagnostic": diagnostic}, Cause: cause,
	}
}

// Transcription creates a new AppError wrapping a speech engine failure.
func Transcription(backend string, cause error) *AppError {
	msg := "Transcription failed"
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &AppError{
		Code: ErrCodeTranscription, Message: msg,
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{"backend": backend}, Cause: cause,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// IO creates an internal AppError for a failed local file operation.
func IO(op string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: fmt.Sprintf("%s failed: %v", op, cause),
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{"operation": op}, Cause: cause,
	}
}
