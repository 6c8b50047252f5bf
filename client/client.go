// Package client is the Go SDK for the RepFit API. It owns the client side
// of the session lifecycle: tokens live behind a TokenStore, and a request
// rejected for an expired access token is transparently refreshed and retried
// exactly once. Concurrent failures share a single refresh call.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/repfit/repfit-go/model"
)

// ErrSessionExpired is returned when the refresh token itself was rejected
// or missing. The token store has been cleared; the caller must log in again.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Error code the server attaches to a 401 caused by an expired access token.
// Only this code triggers the refresh-and-retry cycle; a malformed or
// bad-signature token means re-login, not refresh.
const codeTokenExpired = "TOKEN_EXPIRED"

const defaultTimeout = 10 * time.Second

// Client is a RepFit API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	// refreshGroup collapses concurrent refresh attempts into one network
	// call whose result every waiter reuses.
	refreshGroup singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithTokenStore replaces the default in-memory token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL (e.g. "http://localhost:8080").
// Requests time out after 10 seconds; a timeout is a transport failure, never
// an auth failure.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		store:   NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends a JSON request and decodes the response into out (if non-nil).
// Authenticated requests rejected with an expired-token 401 go through at
// most one refresh-and-retry cycle; the retry's outcome is final.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	access, _ := c.store.Tokens()

	apiErr, err := c.send(ctx, method, path, body, out, authToken(authed, access))
	if err != nil {
		return err
	}
	if apiErr == nil {
		return nil
	}

	if !authed || apiErr.Status != http.StatusUnauthorized || apiErr.Code != codeTokenExpired {
		return apiErr
	}

	newAccess, err := c.refreshTokens(ctx)
	if err != nil {
		return err
	}

	retryErr, err := c.send(ctx, method, path, body, out, newAccess)
	if err != nil {
		return err
	}
	if retryErr != nil {
		return retryErr
	}
	return nil
}

// send performs one HTTP round trip. A non-2xx response is returned as
// (*APIError, nil); only transport-level problems populate the error.
func (c *Client) send(ctx context.Context, method, path string, body, out any, bearer string) (*APIError, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			if envelope.Message != "" {
				apiErr.Message = envelope.Message
			}
			apiErr.Code = envelope.Code
		}
		return apiErr, nil
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil, nil
}

// refreshTokens exchanges the stored refresh token for a new pair and returns
// the new access token. Concurrent callers share one exchange. Any failure
// clears the store and surfaces ErrSessionExpired.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	access, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		_, refresh := c.store.Tokens()
		if refresh == "" {
			c.store.Clear()
			return "", ErrSessionExpired
		}

		var resp model.RefreshResponse
		apiErr, err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh",
			model.RefreshRequest{RefreshToken: refresh}, &resp, "")
		if err != nil || apiErr != nil {
			c.store.Clear()
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
			}
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, apiErr)
		}

		if err := c.store.Save(resp.Tokens.AccessToken, resp.Tokens.RefreshToken); err != nil {
			return "", err
		}
		return resp.Tokens.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return access.(string), nil
}

func authToken(authed bool, access string) string {
	if !authed {
		return ""
	}
	return access
}
