// Package remote talks to the hosted backend's REST surface. Rows cross this
// boundary only as codec.Payload values; no entity semantics live here.
package remote

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

	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/logging"
	"github.com/herdline-inc/herd-engine/pkg/retry"
	"github.com/herdline-inc/herd-engine/pkg/timeutil"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// Client is a PostgREST-style HTTP client. Pulls filter on updated_at past a
// watermark; pushes are merge-duplicate upserts keyed on the row id.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	retry   *retry.Config
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport injects a RoundTripper, used by tests to fake the backend.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithRetryConfig overrides the transient-failure retry policy.
func WithRetryConfig(cfg *retry.Config) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// New creates a Client for the given project URL and service key.
func New(baseURL, apiKey string, logger *zap.Logger, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	c := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		retry:   retry.DefaultConfig(),
		logger:  logger.Named("remote"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HTTPError is a non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("remote: status=%d body=%s", e.StatusCode, e.Body)
}

// IsRetryable reports whether the response signals a transient condition.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Pull fetches rows of the table modified after since, oldest first. A zero
// since fetches the whole table (first sync).
func (c *Client) Pull(ctx context.Context, table string, since time.Time) ([]codec.Payload, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "updated_at.asc")
	if !since.IsZero() {
		q.Set("updated_at", "gt."+timeutil.Format(since))
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, q.Encode())

	var rows []codec.Payload
	err := retry.DoIfRetryable(ctx, c.retry, func() error {
		rows = nil
		return c.doJSON(ctx, http.MethodGet, endpoint, nil, nil, &rows)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("pulled rows",
		zap.String("table", table),
		zap.String("url", logging.SanitizeURL(endpoint)),
		zap.Int("count", len(rows)))
	return rows, nil
}

// Upsert pushes rows to the table, merging on duplicate ids.
func (c *Client) Upsert(ctx context.Context, table string, rows []codec.Payload) error {
	if len(rows) == 0 {
		return nil
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates,return=minimal",
	}
	err := retry.DoIfRetryable(ctx, c.retry, func() error {
		return c.doJSON(ctx, http.MethodPost, endpoint, headers, rows, nil)
	})
	if err != nil {
		return err
	}
	c.logger.Debug("pushed rows",
		zap.String("table", table),
		zap.Int("count", len(rows)))
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: marshal body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("remote: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<20))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Pass-level failure: bad credentials abort the whole pass.
		return fmt.Errorf("%w: status=%d", apperrors.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Bodies ride along in error strings and logs: keep them short.
		body := logging.TruncateString(strings.TrimSpace(string(raw)), maxErrorBody)
		return &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("remote: unmarshal response: %w", err)
	}
	return nil
}
