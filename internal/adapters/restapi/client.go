// internal/adapters/restapi/client.go
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token injected into every request.
// The session store implements it; requests without a stored token go
// out unauthenticated and the backend answers 401.
type TokenSource interface {
	Token() string
}

// APIError is a non-2xx response from the backend. Detail carries the
// server-provided message when the body had one, else the caller's
// generic per-operation fallback.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
}

// Config holds the client facade settings.
type Config struct {
	BaseURL string
	// Timeout bounds every request so a hung backend cannot leave a
	// view stuck in its loading state.
	Timeout time.Duration
	// RequestsPerSecond throttles bulk tooling; zero disables.
	RequestsPerSecond float64
}

// Client is the HTTP facade every typed resource client goes through.
// It injects auth headers and (de)serializes JSON; it never retries and
// never caches.
type Client struct {
	base    *url.URL
	httpc   *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates the shared HTTP facade.
func NewClient(cfg Config, tokens TokenSource, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	return &Client{
		base:    base,
		httpc:   &http.Client{Timeout: timeout},
		tokens:  tokens,
		limiter: limiter,
		logger:  logger.With(slog.String("component", "restapi")),
	}, nil
}

// doJSON issues a JSON request and decodes the response into out (when
// out is non-nil). fallback becomes the error detail for responses with
// no parseable detail body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, fallback)
}

// doForm issues a form-encoded request (the token endpoint is the only
// caller).
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any, fallback string) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.send(req, out, fallback)
}

// doMultipart issues a multipart upload built by the caller. The
// Content-Type (with boundary) comes from the multipart writer;
// auth injection still applies.
func (c *Client) doMultipart(ctx context.Context, path, contentType string, body io.Reader, out any, fallback string) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	return c.send(req, out, fallback)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any, fallback string) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.DebugContext(req.Context(), "request transport failure",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(req.Context(), "request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration_ms", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp, fallback)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError extracts the server detail message. FastAPI-style backends
// answer {"detail": "..."}; anything else falls back to the generic
// per-operation message.
func (c *Client) apiError(resp *http.Response, fallback string) error {
	detail := fallback

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var payload struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil {
			if payload.Detail != "" {
				detail = payload.Detail
			} else if payload.Error != "" {
				detail = payload.Error
			}
		}
	}

	return &APIError{Status: resp.StatusCode, Detail: detail}
}
