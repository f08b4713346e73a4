package api

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request id for correlating client and server logs
const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the current session token. It is consulted on
// every request so a login or logout takes effect immediately.
type TokenSource interface {
	Token() string
}

// Client handles communication with the recipe API
type Client struct {
	// Base URL of the API server, including the version prefix
	BaseURL string

	// Source of the session token
	tokens TokenSource

	// HTTP client with a timeout
	client *http.Client

	logger *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// token returns the current token, or "" when there is no source
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do sends a JSON request and decodes the response into out (when non-nil).
// Non-2xx statuses and envelopes whose statusCode is not a success become
// *APIError; transport errors are wrapped.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The API expects the raw token, without a Bearer prefix.
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	logger := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return fmt.Errorf("error making request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err))
		}
	}(resp.Body)

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	logger.Debug("request completed",
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_size", len(responseBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, responseBody)
	}

	if code, ok := envelopeStatus(responseBody); ok && code != http.StatusOK {
		return newAPIError(code, responseBody)
	}

	if out == nil || len(bytes.TrimSpace(responseBody)) == 0 {
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], responseBody...)
		return nil
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// envelopeStatus extracts the application statusCode some endpoints wrap
// their payload in
func envelopeStatus(body []byte) (int, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, false
	}

	var envelope struct {
		StatusCode *int `json:"statusCode"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || envelope.StatusCode == nil {
		return 0, false
	}
	return *envelope.StatusCode, true
}
