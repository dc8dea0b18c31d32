// Package services exposes one thin type per backend resource.
//
// Each service holds the API client and the resource prefix, builds the request for an operation
// and wraps any failure in a *ServiceError carrying a fixed message for that operation.
// Services never touch the session: the caller stores the token returned by AuthService.Login
// and clears it after AuthService.Logout.
package services

import (
	"github.com/sinergy/chronosync/internal/client"
)

// Services bundles the resource services sharing one API client
type Services struct {
	AppointmentTypes *AppointmentTypeService
	Users            *UserService
	Auth             *AuthService
	Clients          *ClientService
}

func New(c *client.Client) *Services {
	return &Services{
		AppointmentTypes: NewAppointmentTypeService(c),
		Users:            NewUserService(c),
		Auth:             NewAuthService(c),
		Clients:          NewClientService(c),
	}
}
