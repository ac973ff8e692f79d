package api

import (
	"context"

	"github.com/prince9318/smartcart-client/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's login handshake: an opaque credential
// token plus the identity it belongs to. The client stores both
// without inspecting the token.
type LoginResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// Register creates an account. The backend does not sign the user in;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	req := registerRequest{Name: name, Email: email, Password: password}
	return c.post(ctx, "/auth/register", req, nil, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	req := loginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/auth/login", req, &result, nil); err != nil {
		return nil, err
	}
	return &result, nil
}
