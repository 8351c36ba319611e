package api

import (
	"context"
	"net/http"

	"github.com/pomotrack/pomotrack/internal/core/model"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type userResponse struct {
	envelope
	User model.User `json:"user"`
}

// Login authenticates with email and password and stores the session cookie
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	var resp userResponse
	err := c.do(ctx, http.MethodPost, "/login", credentialsRequest{
		Email:    email,
		Password: password,
		Remember: true,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// Register creates a new account and logs it in
func (c *Client) Register(ctx context.Context, email, password string) (model.User, error) {
	var resp userResponse
	err := c.do(ctx, http.MethodPost, "/register", credentialsRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// Logout ends the server session and clears stored cookies
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/logout", nil, nil); err != nil {
		return err
	}
	return c.ClearCookies()
}

// CurrentUser returns the authenticated account, or a 401 *Error for guests
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}
