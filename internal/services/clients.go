package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/types"
)

const ClientPrefix = "/client"

// ClientService manages the firm's clients (the people appointments are booked for)
type ClientService struct {
	client *client.Client
	prefix string
}

func NewClientService(c *client.Client) *ClientService {
	return &ClientService{client: c, prefix: ClientPrefix}
}

// List returns one page of clients. A zero page size is replaced by the default.
func (s *ClientService) List(ctx context.Context, page types.PaginationRequest) (*types.Page[types.Client], error) {
	if page.PageSize <= 0 {
		page.PageSize = types.DefaultPageSize
	}
	if page.Page < 0 {
		page.Page = 0
	}

	res, err := client.Request[types.Page[types.Client]](ctx, s.client, s.prefix+"/get", client.RequestOptions{
		Method: http.MethodPost,
		Body:   page,
		Schema: schemas.ClientPage,
	})
	if err != nil {
		return nil, wrap("list clients", MsgClientList, err)
	}
	return &res, nil
}

func (s *ClientService) Create(ctx context.Context, dto types.ClientRequestDTO) (*types.Client, error) {
	created, err := client.Request[types.Client](ctx, s.client, s.prefix+"/create", client.RequestOptions{
		Method: http.MethodPost,
		Body:   dto,
		Schema: schemas.Client,
	})
	if err != nil {
		return nil, wrap("create client", MsgClientCreate, err)
	}
	return &created, nil
}

func (s *ClientService) Update(ctx context.Context, dto types.ClientRequestDTO) (*types.Client, error) {
	updated, err := client.Request[types.Client](ctx, s.client, s.prefix, client.RequestOptions{
		Method: http.MethodPut,
		Body:   dto,
		Schema: schemas.Client,
	})
	if err != nil {
		return nil, wrap("update client", MsgClientUpdate, err)
	}
	return &updated, nil
}

// Remove deletes a client, the id is passed as a query parameter
func (s *ClientService) Remove(ctx context.Context, id int64) error {
	query := url.Values{"id": []string{strconv.FormatInt(id, 10)}}

	err := s.client.Do(ctx, s.prefix+"?"+query.Encode(), client.RequestOptions{Method: http.MethodDelete}, nil)
	return wrap("delete client", MsgClientDelete, err)
}
