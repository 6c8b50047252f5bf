package client

import (
	"context"
	"net/http"

	"github.com/repfit/repfit-go/model"
)

// Register creates a new account and stores the issued token pair.
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error) {
	req := model.RegisterRequest{Username: username, Email: email, Password: password}

	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp, false); err != nil {
		return nil, err
	}

	if err := c.store.Save(resp.Tokens.AccessToken, resp.Tokens.RefreshToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with an email address or username and stores the
// issued token pair.
func (c *Client) Login(ctx context.Context, identifier, password string) (*model.AuthResponse, error) {
	req := model.LoginRequest{Identifier: identifier, Password: password}

	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp, false); err != nil {
		return nil, err
	}

	if err := c.store.Save(resp.Tokens.AccessToken, resp.Tokens.RefreshToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the current user's projection.
func (c *Client) Me(ctx context.Context) (*model.UserResponse, error) {
	var resp struct {
		User model.UserResponse `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout tells the server (best-effort, the endpoint is stateless) and
// clears the stored tokens. The local session ends even when the request
// fails.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil, false)
	if err := c.store.Clear(); err != nil {
		return err
	}
	return reqErr
}

// RefreshNow forces a token refresh outside the automatic retry path, for
// callers that want to pre-empt expiry. Failure clears the session.
func (c *Client) RefreshNow(ctx context.Context) error {
	_, err := c.refreshTokens(ctx)
	return err
}
