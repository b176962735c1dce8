package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common machine-readable codes shared by every resource.
const (
	CodeInvalidID             = "INVALID_ID"
	CodeInvalidJSON           = "INVALID_JSON"
	CodeNotFound              = "NOT_FOUND"
	CodeInternal              = "INTERNAL_ERROR"
	CodeDatabaseNotConfigured = "DATABASE_NOT_CONFIGURED"
	CodeRateLimited           = "RATE_LIMITED"
)

// APIError is an error that carries its HTTP status and machine code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates an APIError with an explicit status.
func New(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest creates a 400 error.
func BadRequest(code, message string) *APIError {
	return New(http.StatusBadRequest, code, message)
}

// NotFound creates a 404 error.
func NotFound(code, message string) *APIError {
	return New(http.StatusNotFound, code, message)
}

// Conflict creates a 409 error.
func Conflict(code, message string) *APIError {
	return New(http.StatusConflict, code, message)
}

// Internal wraps an unexpected failure. The cause is kept for logging only.
func Internal(err error) *APIError {
	return &APIError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// Wrap attaches a cause to an APIError.
func (e *APIError) Wrap(err error) *APIError {
	clone := *e
	clone.Err = err
	return &clone
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// HasCode reports whether err is an APIError with the given code.
func HasCode(err error, code string) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == code
}

// FieldCodes names the codes reported for a missing or malformed field.
type FieldCodes struct {
	Missing string
	Invalid string
}

// CodeTable maps JSON field names of a request to their codes.
type CodeTable map[string]FieldCodes

// FromValidation turns the first validation failure into a 400 APIError.
// A "required" failure reports the Missing code; everything else reports Invalid.
func (t CodeTable) FromValidation(errs ValidationErrors) *APIError {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	codes, ok := t[first.Field]
	if !ok {
		return BadRequest("VALIDATION_FAILED", fmt.Sprintf("%s %s", first.Field, first.Message))
	}
	code := codes.Invalid
	if first.Rule == "required" && codes.Missing != "" {
		code = codes.Missing
	}
	if code == "" {
		code = codes.Missing
	}
	return BadRequest(code, fmt.Sprintf("%s %s", first.Field, first.Message))
}

// ForField reports the Invalid code for a field, used when the JSON value has the wrong type.
func (t CodeTable) ForField(field string) *APIError {
	codes, ok := t[field]
	if !ok || (codes.Invalid == "" && codes.Missing == "") {
		return BadRequest(CodeInvalidJSON, fmt.Sprintf("%s has an invalid type", field))
	}
	code := codes.Invalid
	if code == "" {
		code = codes.Missing
	}
	return BadRequest(code, fmt.Sprintf("%s has an invalid type", field))
}
