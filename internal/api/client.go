// Package api is the single chokepoint for all outbound HTTP calls: it
// builds URLs, attaches the bearer token, negotiates JSON/text bodies, and
// normalizes failures into RequestError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the current session token. An empty string means
// unauthenticated.
type TokenSource interface {
	Token() string
}

// Client performs typed HTTP calls against the backend. It holds no state
// beyond its configuration.
type Client struct {
	baseURL string
	tokens  TokenSource
	httpc   *http.Client
	debug   io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithDebug enables a request trace on w. The trace never includes a full
// token, only a short preview.
func WithDebug(w io.Writer) Option {
	return func(c *Client) { c.debug = w }
}

// New creates a Client. Trailing slashes on baseURL are stripped so joined
// paths never produce a double slash. tokens may be nil for a client that
// never authenticates.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Options carries the per-request knobs.
type Options struct {
	// Body is JSON-serialized when non-nil. Content-Type is set only then.
	Body any

	// Token overrides the session token when non-nil. A pointer to the
	// empty string sends no Authorization header at all; nil means "use
	// the session token". Login must use the explicit override so a stale
	// stored token is never sent.
	Token *string

	// Header entries are applied before the computed headers.
	Header http.Header
}

// NoToken is the explicit "send no Authorization header" override.
func NoToken() *string {
	s := ""
	return &s
}

// Do performs one request. On a 2xx response with a JSON content type the
// body is decoded into out (when non-nil); a decode failure degrades to the
// zero value rather than an error. Non-JSON bodies are delivered only when
// out is a *string. Non-2xx responses return a *RequestError; transport
// failures return a wrapped error with no status.
func (c *Client) Do(ctx context.Context, method, path string, opts Options, out any) error {
	token := ""
	if opts.Token != nil {
		token = *opts.Token
	} else if c.tokens != nil {
		token = c.tokens.Token()
	}
	token = strings.TrimSpace(token)

	var body io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	if c.debug != nil {
		fmt.Fprintf(c.debug, "[api] %s %s auth=%v token=%s\n",
			method, path, token != "", tokenPreview(token))
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// Degrades to an empty body; a non-success status below still
		// yields the generic fallback message.
		raw = nil
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if c.debug != nil {
		fmt.Fprintf(c.debug, "[api] %s %s -> %d\n", method, path, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			Status:  resp.StatusCode,
			Message: extractMessage(parseBody(raw, isJSON), resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}
	if isJSON {
		// Parse failure degrades to the zero value, not an error.
		_ = json.Unmarshal(raw, out)
		return nil
	}
	if sp, ok := out.(*string); ok {
		*sp = string(raw)
	}
	return nil
}

// buildURL prefixes path with the base URL, ensuring exactly one leading
// slash on the path.
func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// parseBody interprets a response body for error extraction: JSON bodies
// decode to their generic value (nil on parse failure), everything else is
// plain text.
func parseBody(raw []byte, isJSON bool) any {
	if isJSON {
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil
		}
		return data
	}
	return string(raw)
}

func tokenPreview(token string) string {
	if token == "" {
		return "<none>"
	}
	if len(token) > 12 {
		return token[:12] + "..."
	}
	return token
}
