package remote

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/apperrors"
	"github.com/herdline-inc/herd-engine/pkg/codec"
	"github.com/herdline-inc/herd-engine/pkg/retry"
)

// fakeTransport replays canned responses and records every request,
// including bodies, so tests can assert on what went over the wire.
type fakeTransport struct {
	responses []*http.Response
	requests  []*http.Request
	bodies    [][]byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	f.bodies = append(f.bodies, body)

	if len(f.responses) == 0 {
		return textResponse(http.StatusOK, "[]"), nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func textResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func testRetryConfig() *retry.Config {
	return &retry.Config{
		MaxRetries:       2,
		InitialDelay:     time.Millisecond,
		MaxDelay:         time.Millisecond,
		Multiplier:       1,
		MaxSameErrorType: 5,
	}
}

func newTestClient(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	c, err := New("https://example.supabase.co/", "service-key", zap.NewNop(),
		WithTransport(ft),
		WithRetryConfig(testRetryConfig()),
	)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("not a url", "key", zap.NewNop())
	require.Error(t, err)
}

func TestPullBuildsWatermarkQuery(t *testing.T) {
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusOK, `[{"id":"a","tag":"R-1"},{"id":"b","tag":"R-2"}]`),
	}}
	c := newTestClient(t, ft)

	since := time.Date(2024, 3, 15, 8, 30, 45, 0, time.UTC)
	rows, err := c.Pull(context.Background(), "cattle", since)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.Len(t, ft.requests, 1)
	req := ft.requests[0]
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/rest/v1/cattle", req.URL.Path)

	q := req.URL.Query()
	assert.Equal(t, "*", q.Get("select"))
	assert.Equal(t, "updated_at.asc", q.Get("order"))
	assert.Equal(t, "gt.2024-03-15T08:30:45.000000Z", q.Get("updated_at"))
}

func TestPullZeroSinceFetchesEverything(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft)

	_, err := c.Pull(context.Background(), "breeds", time.Time{})
	require.NoError(t, err)

	require.Len(t, ft.requests, 1)
	assert.Empty(t, ft.requests[0].URL.Query().Get("updated_at"))
}

func TestRequestCarriesAuthHeaders(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft)

	_, err := c.Pull(context.Background(), "cattle", time.Time{})
	require.NoError(t, err)

	req := ft.requests[0]
	assert.Equal(t, "service-key", req.Header.Get("apikey"))
	assert.Equal(t, "Bearer service-key", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
}

func TestPullUnauthorizedFailsFast(t *testing.T) {
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusUnauthorized, `{"message":"Invalid API key"}`),
	}}
	c := newTestClient(t, ft)

	_, err := c.Pull(context.Background(), "cattle", time.Time{})
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Len(t, ft.requests, 1, "bad credentials are permanent, not retried")
}

func TestPullRetriesServerErrors(t *testing.T) {
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusServiceUnavailable, "maintenance"),
		textResponse(http.StatusOK, `[{"id":"a"}]`),
	}}
	c := newTestClient(t, ft)

	rows, err := c.Pull(context.Background(), "cattle", time.Time{})
	require.NoError(t, err)
	assert.Len(t, ft.requests, 2)
	assert.Len(t, rows, 1, "rows from the failed attempt are discarded")
}

func TestPullExhaustsRetries(t *testing.T) {
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusInternalServerError, "boom"),
		textResponse(http.StatusInternalServerError, "boom"),
		textResponse(http.StatusInternalServerError, "boom"),
	}}
	c := newTestClient(t, ft)

	_, err := c.Pull(context.Background(), "cattle", time.Time{})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Len(t, ft.requests, 3)
}

func TestUpsertMergesDuplicates(t *testing.T) {
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusCreated, ""),
	}}
	c := newTestClient(t, ft)

	rows := []codec.Payload{
		codec.NewBuilder().String("id", "a").String("tag", "R-1").Payload(),
	}
	require.NoError(t, c.Upsert(context.Background(), "cattle", rows))

	require.Len(t, ft.requests, 1)
	req := ft.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/rest/v1/cattle", req.URL.Path)
	assert.Equal(t, "resolution=merge-duplicates,return=minimal", req.Header.Get("Prefer"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `[{"id":"a","tag":"R-1"}]`, string(ft.bodies[0]))
}

func TestUpsertSkipsEmptyBatch(t *testing.T) {
	ft := &fakeTransport{}
	c := newTestClient(t, ft)

	require.NoError(t, c.Upsert(context.Background(), "cattle", nil))
	assert.Empty(t, ft.requests, "no pending rows means no request")
}

func TestErrorBodyTruncated(t *testing.T) {
	long := strings.Repeat("x", 4096)
	ft := &fakeTransport{responses: []*http.Response{
		textResponse(http.StatusBadRequest, long),
	}}
	c := newTestClient(t, ft)

	_, err := c.Pull(context.Background(), "cattle", time.Time{})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Len(t, httpErr.Body, 512+len("..."))
	assert.True(t, strings.HasSuffix(httpErr.Body, "..."))
}

func TestHTTPErrorRetryability(t *testing.T) {
	assert.True(t, (&HTTPError{StatusCode: 502}).IsRetryable())
	assert.True(t, (&HTTPError{StatusCode: http.StatusTooManyRequests}).IsRetryable())
	assert.False(t, (&HTTPError{StatusCode: http.StatusBadRequest}).IsRetryable())
	assert.False(t, (&HTTPError{StatusCode: http.StatusNotFound}).IsRetryable())
}
