package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

func (c *HTTPClient) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	r, _ := c.jsonRequest("get profile", http.MethodGet, "/profile/"+url.PathEscape(userID), nil)
	var u models.User
	if err := c.do(ctx, r, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile sends only the non-empty fields of u and returns the profile
// as stored by the server. When the server answers without a body, u itself
// is returned.
func (c *HTTPClient) UpdateProfile(ctx context.Context, userID string, u models.User) (*models.User, error) {
	r, err := c.jsonRequest("update profile", http.MethodPut, "/profile/"+url.PathEscape(userID), u)
	if err != nil {
		return nil, err
	}
	var out models.User
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	if out == (models.User{}) {
		return &u, nil
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProfile(ctx context.Context, userID string) error {
	r, _ := c.jsonRequest("delete profile", http.MethodDelete, "/profile/"+url.PathEscape(userID), nil)
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	r, _ := c.jsonRequest("search users", http.MethodGet, "/search/", nil)
	r.query = url.Values{"query": {query}}

	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
