package client

import (
	"fmt"
	"net/http"

	"github.com/sinergy/chronosync/internal/apperrors"
)

// Kind identifies which stage of a request failed
type Kind int

const (
	KindInternal   Kind = iota // the request could not be built or the session could not be read
	KindConnection             // the request never produced a response (dns, refused, timeout, cancelled)
	KindHTTP                   // the server answered with a non-2xx status
	KindDecode                 // the 2xx body was not valid JSON or did not match the expected schema
)

var kindNames = []string{"internal", "connection", "http", "decode"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ClientError represents an error encountered when communicating with the chronosync API.
// StatusCode 0 = no HTTP response was received
type ClientError struct {
	Kind        Kind
	StatusCode  int
	Body        string // raw response body text for KindHTTP
	UserMessage string
	LogMessage  string
	Err         error
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

func (e *ClientError) ErrorCode() apperrors.ErrorCode {
	switch e.Kind {
	case KindConnection:
		return apperrors.ErrCodeConnection
	case KindHTTP:
		return apperrors.ErrCodeHTTP
	case KindDecode:
		return apperrors.ErrCodeDecode
	default:
		return apperrors.ErrCodeInternal
	}
}

// NewClientConnectionError creates a ClientError for network/connection issues
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		Kind:        KindConnection,
		UserMessage: "Unable to connect. Please check your internet connection and try again.",
		LogMessage:  fmt.Sprintf("network error: %v", err),
		Err:         err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:        KindInternal,
		UserMessage: "An error occurred. Please try again later.",
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
		Err:         err,
	}
}

// NewClientDecodeError creates a ClientError for a success response that could not be used
func NewClientDecodeError(err error, statusCode int) *ClientError {
	return &ClientError{
		Kind:        KindDecode,
		StatusCode:  statusCode,
		UserMessage: "The server returned an unexpected response. Please try again later.",
		LogMessage:  fmt.Sprintf("decode error: %v", err),
		Err:         err,
	}
}

// NewClientApiError creates a ClientError from a non-2xx response.
// The message embeds the status code and the raw body text as returned by the server.
func NewClientApiError(statusCode int, body string) *ClientError {
	var userMsg string
	switch statusCode {
	case http.StatusUnauthorized:
		userMsg = "Your session is not valid. Please log in and try again."
	case http.StatusForbidden:
		userMsg = "You don't have permission to access this resource."
	case http.StatusNotFound:
		userMsg = "The requested resource was not found."
	case http.StatusBadRequest:
		userMsg = "Invalid request. Please check your input and try again."
	case http.StatusTooManyRequests:
		userMsg = "Too many requests. Please try again in a few moments."
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable:
		userMsg = "The service is temporarily unavailable. Please try again later."
	default:
		userMsg = "An error occurred. Please try again."
	}

	return &ClientError{
		Kind:        KindHTTP,
		StatusCode:  statusCode,
		Body:        body,
		UserMessage: userMsg,
		LogMessage:  fmt.Sprintf("API Error: %d - %s", statusCode, body),
	}
}
