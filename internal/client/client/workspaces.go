package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

func (c *HTTPClient) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	r, _ := c.jsonRequest("list workspaces", http.MethodGet, "/user/workspaces", nil)

	var resp struct {
		Workspaces []models.Workspace `json:"workspaces"`
		Message    string             `json:"message"`
	}
	if err := c.do(ctx, r, &resp); err != nil {
		return nil, err
	}
	return resp.Workspaces, nil
}

// CreateWorkspace passes the fields as query parameters with an empty body.
func (c *HTTPClient) CreateWorkspace(ctx context.Context, w models.WorkspaceCreate) error {
	r, _ := c.jsonRequest("create workspace", http.MethodPost, "/user/workspaces/create", nil)
	r.query = url.Values{
		"name":        {w.Name},
		"description": {w.Description},
		"is_active":   {strconv.FormatBool(w.IsActive)},
		"is_public":   {strconv.FormatBool(w.IsPublic)},
	}
	r.contentType = "application/x-www-form-urlencoded"
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) DeleteWorkspace(ctx context.Context, name string) error {
	r, _ := c.jsonRequest("delete workspace", http.MethodDelete, "/user/workspaces/"+url.PathEscape(name), nil)
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) GetWorkspace(ctx context.Context, name string) (*models.Workspace, error) {
	r, _ := c.jsonRequest("get workspace", http.MethodGet, "/user/workspaces/name/"+url.PathEscape(name), nil)
	var ws models.Workspace
	if err := c.do(ctx, r, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}
