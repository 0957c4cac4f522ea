package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the single error type crossing the service boundary. Cause
// carries the collaborator's diagnostic and is logged, never returned to the
// client verbatim.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Invalid(msg string) error {
	return New(CodeInvalid, msg)
}

func NotFound(msg string) error {
	return New(CodeNotFound, msg)
}

func AlreadyExists(msg string) error {
	return New(CodeAlreadyExists, msg)
}

func Unauthorized(msg string) error {
	return New(CodeUnauthorized, msg)
}

// Internal wraps an unexpected collaborator failure, preserving the cause as
// a diagnostic.
func Internal(msg string, cause error) error {
	return &AppError{Code: CodeInternal, Message: msg, Cause: cause}
}

// CodeOf returns the code of the outermost AppError in err's chain, or
// CodeUnknown when err did not originate here.
func CodeOf(err error) Code {
	var app *AppError
	if stderrors.As(err, &app) {
		return app.Code
	}
	return CodeUnknown
}

// MessageOf returns the client-safe message for err. Unrecognized errors get
// a generic message so collaborator diagnostics never leak.
func MessageOf(err error) string {
	var app *AppError
	if stderrors.As(err, &app) && app.Code != CodeInternal && app.Code != CodeUnknown {
		return app.Message
	}
	return "an unexpected error occurred"
}

func IsNotFound(err error) bool      { return CodeOf(err) == CodeNotFound }
func IsUnauthorized(err error) bool  { return CodeOf(err) == CodeUnauthorized }
func IsAlreadyExists(err error) bool { return CodeOf(err) == CodeAlreadyExists }
func IsInvalid(err error) bool       { return CodeOf(err) == CodeInvalid }
