package services

import (
	"context"
	"net/http"

	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/types"
)

const UserPrefix = "/user"

type UserService struct {
	client *client.Client
	prefix string
}

func NewUserService(c *client.Client) *UserService {
	return &UserService{client: c, prefix: UserPrefix}
}

// Create creates a user in the logged in user's firm
func (s *UserService) Create(ctx context.Context, dto types.UserRequestDTO) (*types.User, error) {
	user, err := client.Request[types.User](ctx, s.client, s.prefix+"/create", client.RequestOptions{
		Method: http.MethodPost,
		Body:   dto,
		Schema: schemas.User,
	})
	if err != nil {
		return nil, wrap("create user", MsgUserCreate, err)
	}
	return &user, nil
}
