package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/codepad/internal/logging"
)

// Options configures an HTTPClient.
type Options struct {
	BaseURL      string
	AdminBaseURL string
	Timeout      time.Duration
	Tokens       TokenSource
	Logger       logging.Logger
	// HTTPClient overrides the default transport, mostly for tests.
	HTTPClient *http.Client
}

// HTTPClient implements Client over the REST API.
type HTTPClient struct {
	baseURL    string
	adminURL   string
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client. A nil Tokens sends every request
// unauthenticated.
func NewHTTPClient(opts Options) *HTTPClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		adminURL:   strings.TrimRight(opts.AdminBaseURL, "/"),
		httpClient: hc,
		tokens:     opts.Tokens,
		log:        opts.Logger,
	}
}

// request describes one API call.
type request struct {
	op          string
	method      string
	base        string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *HTTPClient) jsonRequest(op, method, path string, payload any) (request, error) {
	r := request{op: op, method: method, base: c.baseURL, path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return r, fmt.Errorf("%s: encode request: %w", op, err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = "application/json"
	}
	return r, nil
}

// applyAuth adds the bearer header when a token is stored.
func (c *HTTPClient) applyAuth(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// do sends r and decodes a 2xx JSON body into out (when out is not nil).
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	u := r.base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return fmt.Errorf("%s: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if err := c.applyAuth(ctx, req); err != nil {
		return fmt.Errorf("%s: %w", r.op, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "op", r.op, "method", r.method, "url", u, "error", err)
		return &TransportError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: r.op, Err: err}
	}

	c.log.Debug(ctx, "request done", "op", r.op, "method", r.method, "url", u,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Op: r.op, StatusCode: resp.StatusCode, Detail: parseDetail(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", r.op, err)
	}
	return nil
}

// escapePath escapes every segment of a workspace-relative path.
func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range parts {
		parts[i] = url.PathEscape(s)
	}
	return strings.Join(parts, "/")
}
