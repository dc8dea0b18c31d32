// Package apperrors defines the stable error categories shown to users of the chronosync client.
//
// Lower layers return typed errors (client.ClientError, services.ServiceError, config errors).
// Each of those reports its category through the Coder interface so that callers can
// classify any error chain with CodeOf without importing the lower level packages.
package apperrors

import "errors"

type ErrorCode string

const (
	ErrCodeConfiguration ErrorCode = "configuration_error"
	ErrCodeConnection    ErrorCode = "connection_error"
	ErrCodeHTTP          ErrorCode = "http_error"
	ErrCodeDecode        ErrorCode = "decode_error"
	ErrCodeValidation    ErrorCode = "validation_error"
	ErrCodeInternal      ErrorCode = "internal_error"
	ErrCodeSession       ErrorCode = "session_error"
	ErrCodeUnknown       ErrorCode = "unknown_error"
)

// Coder is implemented by errors that belong to one of the categories above
type Coder interface {
	error
	ErrorCode() ErrorCode
}

// CodeOf returns the category of the first error in the chain that implements Coder.
// nil errors return an empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var c Coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ErrCodeUnknown
}

// ConfigError is returned when the process environment does not provide a usable configuration
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) ErrorCode() ErrorCode { return ErrCodeConfiguration }

// SessionError is returned when the session store cannot be read or written
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return "session " + e.Op + ": " + e.Err.Error()
}

func (e *SessionError) Unwrap() error { return e.Err }

func (e *SessionError) ErrorCode() ErrorCode { return ErrCodeSession }

// ValidationError is returned when user input is rejected before any request is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) ErrorCode() ErrorCode { return ErrCodeValidation }
