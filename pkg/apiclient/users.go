package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one account by id.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CreateUser creates an account.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/users/", input, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateUser patches an account.
func (c *Client) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), input, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// ListGroups returns all permission groups.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var groups []Group
	if err := c.do(ctx, http.MethodGet, "/groups/", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroup fetches one group by id.
func (c *Client) GetGroup(ctx context.Context, id string) (Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodGet, "/groups/"+url.PathEscape(id), nil, &group); err != nil {
		return Group{}, err
	}
	return group, nil
}

// CreateGroup creates a group.
func (c *Client) CreateGroup(ctx context.Context, input GroupInput) (Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodPost, "/groups/", input, &group); err != nil {
		return Group{}, err
	}
	return group, nil
}

// UpdateGroup updates group metadata and permissions.
func (c *Client) UpdateGroup(ctx context.Context, id string, input GroupInput) (Group, error) {
	var group Group
	if err := c.do(ctx, http.MethodPut, "/groups/"+url.PathEscape(id), input, &group); err != nil {
		return Group{}, err
	}
	return group, nil
}

// DeleteGroup removes a group.
func (c *Client) DeleteGroup(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/groups/"+url.PathEscape(id), nil, nil)
}

// AddGroupMember adds a user to a group.
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID string) error {
	path := "/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RemoveGroupMember removes a user from a group.
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	path := "/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
