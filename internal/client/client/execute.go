package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/codepad/internal/client/models"
)

// ExecuteCode runs code remotely. A program that fails still yields a result
// with Error set; only transport and HTTP failures are returned as errors.
func (c *HTTPClient) ExecuteCode(ctx context.Context, code, language string) (*models.ExecResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range [][2]string{{"code", code}, {"language", language}} {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("execute code: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("execute code: %w", err)
	}

	r := request{
		op:          "execute code",
		method:      http.MethodPost,
		base:        c.baseURL,
		path:        "/user/test_code_execute",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}

	var res models.ExecResult
	if err := c.do(ctx, r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
