package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for an access token. The endpoint takes a
// form-encoded body, unlike the rest of the API.
func (c *Client) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)
	var resp TokenResponse
	if err := c.doForm(ctx, "/auth/login", values, &resp); err != nil {
		return TokenResponse{}, err
	}
	return resp, nil
}

// Me returns the account the current token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Health probes the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return HealthStatus{}, err
	}
	return status, nil
}
