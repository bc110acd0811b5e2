package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Login authenticates and returns the issued token with the user summary.
// A 2xx response without a token is a MalformedResponseError, never a silent
// success.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	raw, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, true)
	if err != nil {
		return nil, err
	}

	var res LoginResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, &MalformedResponseError{Reason: err.Error()}
	}
	if res.Token == "" {
		return nil, &MalformedResponseError{Reason: "login response has no token"}
	}
	return &res, nil
}

// Register creates an account. It does not log the new user in.
func (c *Client) Register(ctx context.Context, username, password, email string) (*User, error) {
	body := map[string]string{"username": username, "password": password, "email": email}

	var u User
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout notifies the server that the session is over. Clearing local state is
// the session manager's job, not this client's.
func (c *Client) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

type existsPayload struct {
	Exists bool `json:"exists"`
}

// CheckUsername reports whether a username is already taken.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	var p existsPayload
	path := "/api/auth/checkUsername?username=" + url.QueryEscape(username)
	if err := c.getJSON(ctx, path, &p); err != nil {
		return false, err
	}
	return p.Exists, nil
}

// CheckEmail reports whether an email is already registered.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var p existsPayload
	path := "/api/auth/checkEmail?email=" + url.QueryEscape(email)
	if err := c.getJSON(ctx, path, &p); err != nil {
		return false, err
	}
	return p.Exists, nil
}
