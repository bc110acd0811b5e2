package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/api/users/profile", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile changes the current user's email and returns the updated
// profile.
func (c *Client) UpdateProfile(ctx context.Context, email string) (*User, error) {
	body := map[string]string{"email": email}

	var u User
	if err := c.sendJSON(ctx, http.MethodPut, "/api/users/profile", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword swaps the current user's password.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.sendJSON(ctx, http.MethodPut, "/api/users/password", body, nil)
}

// ListUsers returns a page of users. Admin only.
func (c *Client) ListUsers(ctx context.Context, page, size int) (*UserPage, error) {
	var p UserPage
	path := fmt.Sprintf("/api/users?page=%d&size=%d", page, size)
	if err := c.getJSON(ctx, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteUser removes a user. Admin only.
func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", userID), nil, nil)
}
