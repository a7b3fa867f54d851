package auth

import (
	"context"

	"github.com/fittrackapp/fittrack/internal/client"
	"github.com/fittrackapp/fittrack/internal/users"
)

type RegisterParams struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Age      int     `json:"age,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

// Service talks to the /auth endpoints. Both calls return the freshly issued
// bearer token next to the user record.
type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{
		client: c,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*users.User, string, error) {
	resp := &sessionResponse{}
	if err := s.client.Post(ctx, "/auth/login", loginParams{Email: email, Password: password}, resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*users.User, string, error) {
	resp := &sessionResponse{}
	if err := s.client.Post(ctx, "/auth/register", params, resp); err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Token, nil
}
