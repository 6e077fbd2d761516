package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

func (c *HTTPClient) adminRequest(op, method, path string, payload any) (request, error) {
	r, err := c.jsonRequest(op, method, path, payload)
	r.base = c.adminURL
	return r, err
}

// ListUsers accepts either a bare array or {"users": [...]}.
func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	r, _ := c.adminRequest("list users", http.MethodGet, "/get_users", nil)

	var raw json.RawMessage
	if err := c.do(ctx, r, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}
	var wrapped struct {
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	r, _ := c.adminRequest("get user", http.MethodGet, "/get_user/"+url.PathEscape(id), nil)
	var u models.User
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	r, err := c.adminRequest("create user", http.MethodPost, "/create_user", u)
	if err != nil {
		return nil, err
	}
	out := u
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, u models.User) (*models.User, error) {
	r, err := c.adminRequest("update user", http.MethodPut, "/update_user/"+url.PathEscape(id), u)
	if err != nil {
		return nil, err
	}
	out := u
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	r, _ := c.adminRequest("delete user", http.MethodDelete, "/delete_user/"+url.PathEscape(id), nil)
	return c.do(ctx, r, nil)
}
