package client

import (
	"context"
	"net/http"
	"net/url"
)

func workspacePath(workspace, suffix string) string {
	return "/user/workspaces/" + url.PathEscape(workspace) + suffix
}

func (c *HTTPClient) send(ctx context.Context, op, method, path string, payload any) error {
	r, err := c.jsonRequest(op, method, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) CreateFile(ctx context.Context, workspace, path string) error {
	return c.send(ctx, "create file", http.MethodPost, workspacePath(workspace, "/file"),
		map[string]string{"name": path})
}

func (c *HTTPClient) CreateFolder(ctx context.Context, workspace, path string) error {
	return c.send(ctx, "create folder", http.MethodPost, workspacePath(workspace, "/folder"),
		map[string]string{"name": path})
}

// DeleteItem sends the path in the body of a DELETE request.
func (c *HTTPClient) DeleteItem(ctx context.Context, workspace, path string) error {
	return c.send(ctx, "delete item", http.MethodDelete, workspacePath(workspace, "/item"),
		map[string]string{"path": path})
}

func (c *HTTPClient) CopyItem(ctx context.Context, workspace, src, dst string) error {
	return c.send(ctx, "copy item", http.MethodPost, workspacePath(workspace, "/copy"),
		map[string]string{"src": src, "dst": dst})
}

func (c *HTTPClient) RenameItem(ctx context.Context, workspace, oldPath, newPath string) error {
	return c.send(ctx, "rename item", http.MethodPut, workspacePath(workspace, "/rename"),
		map[string]string{"old_name": oldPath, "new_name": newPath})
}

func (c *HTTPClient) ReadFile(ctx context.Context, workspace, path string) (string, error) {
	r, _ := c.jsonRequest("read file", http.MethodGet, workspacePath(workspace, "/file/"+escapePath(path)), nil)
	var resp struct {
		Contents string `json:"contents"`
	}
	if err := c.do(ctx, r, &resp); err != nil {
		return "", err
	}
	return resp.Contents, nil
}

func (c *HTTPClient) WriteFile(ctx context.Context, workspace, path, content string) error {
	return c.send(ctx, "write file", http.MethodPut, workspacePath(workspace, "/file"),
		map[string]string{"name": path, "content": content})
}
