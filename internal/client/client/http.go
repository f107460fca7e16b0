package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks JSON to the backend under baseURL.
type HTTPClient struct {
	baseURL      string
	httpClient   *http.Client
	logger       logging.Logger
	newRequestID func() string
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithLogger sets the logger used for per-request debug lines. A logger
// carried by the request context takes precedence.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient validates baseURL (absolute http or https) and returns a
// client for it. A trailing slash is ignored.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &HTTPClient{
		baseURL:      strings.TrimSuffix(u.String(), "/"),
		httpClient:   &http.Client{},
		logger:       logging.Discard(),
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) url(path string) string {
	return c.baseURL + path
}

// do performs one round trip. in, when non-nil, is sent as the JSON body;
// out, when non-nil, receives the decoded 2xx response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	reqID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logging.FromContext(ctx, c.logger).With("req_id", reqID, "method", method, "path", path)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn(ctx, "http request failed", "error", err)
		if ctx.Err() != nil {
			return &RequestFailure{Err: err}
		}
		return &RequestFailure{Err: fmt.Errorf("%w: %w", common.ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestFailure{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	log.Debug(ctx, "http request",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := parseErrorResponse(resp.StatusCode, data); err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestFailure{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func idPath(collection string, id models.ID) string {
	return collection + "/" + url.PathEscape(id.String())
}
