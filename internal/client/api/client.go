// Package api is the single chokepoint for all calls to the MBTI platform
// backend. It attaches the bearer token, normalizes envelope responses, and
// classifies failures into the error taxonomy in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frostedstar/mbticli/internal/logging"
)

// RequestTimeout is the fixed transport timeout. There is no retry policy:
// a failed request surfaces an error (or the caller degrades to sample data)
// exactly once.
const RequestTimeout = 15 * time.Second

// TokenProvider yields the current bearer token, or "" when logged out.
type TokenProvider interface {
	Token() string
}

// TokenProviderFunc adapts a func to TokenProvider.
type TokenProviderFunc func() string

func (f TokenProviderFunc) Token() string { return f() }

// Client talks to the backend over HTTP+JSON.
//
// Side effects are observable only through the returned values and, for 401
// responses, through the OnUnauthorized hook. The client never reaches into
// session or UI state itself; the composition root wires the hook.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	log     logging.Logger

	// OnUnauthorized is invoked once per call that fails with status 401.
	OnUnauthorized func()
}

// New builds a Client for the given base URL. tokens may be nil for an
// unauthenticated client; log may be nil.
func New(baseURL string, tokens TokenProvider, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
		tokens:  tokens,
		log:     log,
	}
}

// SetTimeout overrides the transport timeout (used by config).
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// do performs one HTTP call and returns the normalized payload.
// login marks the one endpoint whose success payload arrives without the
// envelope.
func (c *Client) do(ctx context.Context, method, path string, body any, login bool) (json.RawMessage, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokens != nil {
		if t := c.tokens.Token(); t != "" {
			req.Header.Set("Authorization", "Bearer "+t)
		}
	}

	c.log.Debug(ctx, "sending request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return c.normalize(ctx, resp.StatusCode, raw, login)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body, false)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if len(data) == 0 || string(data) == "null" {
		return &MalformedResponseError{Reason: "expected payload, got none"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedResponseError{Reason: err.Error()}
	}
	return nil
}
