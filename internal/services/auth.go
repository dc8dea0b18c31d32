package services

import (
	"context"
	"net/http"

	"github.com/sinergy/chronosync/internal/client"
	"github.com/sinergy/chronosync/internal/schemas"
	"github.com/sinergy/chronosync/internal/types"
)

const AuthPrefix = "/auth"

type AuthService struct {
	client *client.Client
	prefix string
}

func NewAuthService(c *client.Client) *AuthService {
	return &AuthService{client: c, prefix: AuthPrefix}
}

// Login exchanges credentials for a JWT. The caller is responsible for storing the token.
func (s *AuthService) Login(ctx context.Context, dto types.LoginRequestDTO) (*types.AuthenticationResponse, error) {
	res, err := client.Request[types.AuthenticationResponse](ctx, s.client, s.prefix+"/login", client.RequestOptions{
		Method: http.MethodPost,
		Body:   dto,
		Schema: schemas.AuthenticationResponse,
	})
	if err != nil {
		return nil, wrap("login", MsgLogin, err)
	}
	return &res, nil
}

// Register creates a new account, the server assigns the username
func (s *AuthService) Register(ctx context.Context, dto types.UserRequestDTO) (*types.UserCreateResponse, error) {
	res, err := client.Request[types.UserCreateResponse](ctx, s.client, s.prefix+"/register", client.RequestOptions{
		Method: http.MethodPost,
		Body:   dto,
		Schema: schemas.UserCreateResponse,
	})
	if err != nil {
		return nil, wrap("register", MsgRegister, err)
	}
	return &res, nil
}

// Logout ends the session on the server. The stored token is left untouched.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.Do(ctx, s.prefix+"/logout", client.RequestOptions{Method: http.MethodGet}, nil)
	return wrap("logout", MsgLogout, err)
}
