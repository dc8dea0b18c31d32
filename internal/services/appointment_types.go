package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/types"
)

const AppointmentTypePrefix = "/appointment-type"

type AppointmentTypeService struct {
	client *client.Client
	prefix string
}

func NewAppointmentTypeService(c *client.Client) *AppointmentTypeService {
	return &AppointmentTypeService{client: c, prefix: AppointmentTypePrefix}
}

// Create creates a new appointment type and returns it as stored by the server
func (s *AppointmentTypeService) Create(ctx context.Context, dto types.AppointmentTypeRequestDTO) (*types.AppointmentType, error) {
	created, err := client.Request[types.AppointmentType](ctx, s.client, s.prefix+"/create", client.RequestOptions{
		Method: http.MethodPost,
		Body:   dto,
		Schema: schemas.AppointmentType,
	})
	if err != nil {
		return nil, wrap("create appointment type", MsgAppointmentTypeCreate, err)
	}
	return &created, nil
}

// Update replaces the appointment type identified by dto.ID
func (s *AppointmentTypeService) Update(ctx context.Context, dto types.AppointmentTypeRequestDTO) (*types.AppointmentType, error) {
	updated, err := client.Request[types.AppointmentType](ctx, s.client, s.prefix, client.RequestOptions{
		Method: http.MethodPut,
		Body:   dto,
		Schema: schemas.AppointmentType,
	})
	if err != nil {
		return nil, wrap("update appointment type", MsgAppointmentTypeUpdate, err)
	}
	return &updated, nil
}

// Remove deletes the appointment type, the response body is ignored
func (s *AppointmentTypeService) Remove(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s/%d", s.prefix, id)

	err := s.client.Do(ctx, endpoint, client.RequestOptions{Method: http.MethodDelete}, nil)
	return wrap("delete appointment type", MsgAppointmentTypeDelete, err)
}

// List returns the appointment types visible to the logged in user
func (s *AppointmentTypeService) List(ctx context.Context) ([]types.AppointmentType, error) {
	list, err := client.Request[[]types.AppointmentType](ctx, s.client, s.prefix, client.RequestOptions{
		Schema: schemas.AppointmentTypeList,
	})
	if err != nil {
		return nil, wrap("list appointment types", MsgAppointmentTypeList, err)
	}
	return list, nil
}
