// Package client talks to the Whoosh REST API. It keeps the session's token
// pair in a tokenstore.Store, sends it as a bearer token and transparently
// refreshes an expired access token once per call.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mcoot/whoosh/internal/pkg/redact"
	"github.com/mcoot/whoosh/internal/tokenstore"
)

// Fixed API endpoints, relative to the base URL
const (
	EndpointLogin        = "/auth/login/"
	EndpointRegister     = "/auth/register/"
	EndpointGuest        = "/auth/guest/"
	EndpointConvertGuest = "/auth/convert-guest/"
	EndpointTokenRefresh = "/auth/token/refresh/"
	EndpointMe           = "/users/me/"
	EndpointMatchHistory = "/game/history/"
	EndpointJoinQueue    = "/match/join/"
	EndpointHealth       = "/health/"
)

// RequestIDHeader carries a per-call id so both attempts of a retried call correlate in server logs
const RequestIDHeader = "X-Request-ID"

// Config holds client settings
type Config struct {
	// BaseURL is the API root including the /api prefix, e.g. http://localhost:8000/api
	BaseURL string
	// Timeout bounds each HTTP round trip. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient overrides the default HTTP client (optional)
	HTTPClient *http.Client
	// Logger receives request and refresh diagnostics (optional)
	Logger *slog.Logger
}

// DefaultConfig returns a Config pointing at a local backend
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api",
		Timeout: 30 * time.Second,
	}
}

// Client is an HTTP client for the Whoosh API
type Client struct {
	baseURL    string
	store      tokenstore.Store
	httpClient *http.Client
	logger     *slog.Logger

	refreshGroup singleflight.Group
	// refreshWaiters counts callers waiting on the shared refresh
	refreshWaiters atomic.Int32
}

// New creates a new API client backed by the given token store
func New(store tokenstore.Store, cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		store:      store,
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions mirrors the options of a fetch call
type RequestOptions struct {
	// Method is the HTTP verb; GET when empty
	Method string
	// Header is merged over the default Content-Type: application/json
	Header http.Header
	// Body is the pre-serialized payload
	Body []byte
}

// send issues a single HTTP request. A non-empty accessToken is sent as a bearer token.
func (c *Client) send(ctx context.Context, endpoint string, opts RequestOptions, accessToken, requestID string) (*http.Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, values := range opts.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	if requestID != "" && req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Debug("request",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("request_id", req.Header.Get(RequestIDHeader)),
		slog.String("token", redact.Token(accessToken)),
	)
	return resp, nil
}

func newRequestID() string {
	return uuid.NewString()
}

// discard drains and closes a response body so the connection can be reused
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
