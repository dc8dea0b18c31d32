package services

import (
	"github.com/sinergy/chronosync/internal/apperrors"
)

// fixed messages shown to users when a service call fails
const (
	MsgAppointmentTypeCreate = "Appointment type creation failed."
	MsgAppointmentTypeUpdate = "Appointment type update failed."
	MsgAppointmentTypeDelete = "Appointment type deletion failed."
	MsgAppointmentTypeList   = "Could not load appointment types."
	MsgUserCreate            = "User creation failed."
	MsgLogin                 = "Login failed."
	MsgRegister              = "Registration failed."
	MsgLogout                = "Logout failed."
	MsgClientList            = "Could not load clients."
	MsgClientCreate          = "Client creation failed."
	MsgClientUpdate          = "Client update failed."
	MsgClientDelete          = "Client deletion failed."
)

// ServiceError is returned by every service operation. Message is stable and safe to show,
// the cause (usually a *client.ClientError) is kept in Err.
type ServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Message
	}
	return e.Op + ": " + e.Message + " " + e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// UserError returns the fixed message for the failed operation
func (e *ServiceError) UserError() string {
	return e.Message
}

// ErrorCode reports the category of the cause
func (e *ServiceError) ErrorCode() apperrors.ErrorCode {
	if e.Err == nil {
		return apperrors.ErrCodeInternal
	}
	code := apperrors.CodeOf(e.Err)
	if code == apperrors.ErrCodeUnknown {
		return apperrors.ErrCodeInternal
	}
	return code
}

func wrap(op, message string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Op: op, Message: message, Err: err}
}
