// Package client is a typed client for the lost-and-found HTTP API. Every
// call is a round trip; nothing is cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erazemk/lostfound/internal/session"
)

// DefaultTimeout bounds a single call when the caller's context has no
// deadline of its own.
const DefaultTimeout = 30 * time.Second

// Client talks to one server on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Holder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL. Tokens are read from and
// written to holder; a nil holder keeps the session in memory.
func New(baseURL string, holder *session.Holder, opts ...Option) *Client {
	if holder == nil {
		holder, _ = session.NewHolder(nil)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		session:    holder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the holder the client authenticates with.
func (c *Client) Session() *session.Holder {
	return c.session
}

// errorBody covers both error shapes the server writes.
type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

// call sends one request and decodes a 2xx JSON response into out. The
// bearer token is captured once, before the request is built. fallback is
// the message used when the server gives none.
func (c *Client) call(ctx context.Context, method, path string, body io.Reader, contentType string, out any, fallback string) error {
	token := c.session.Token()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindValidation, Message: fallback, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return &Error{Kind: KindTransient, Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, fallback)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		if err != nil {
			return &Error{Kind: KindTransient, Status: resp.StatusCode, Message: fallback, Err: err}
		}
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransient, Status: resp.StatusCode, Message: fallback, Err: err}
	}
	return nil
}

func decodeError(resp *http.Response, fallback string) *Error {
	e := &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: fallback}

	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &eb) == nil {
		switch {
		case eb.Error != "":
			e.Message = eb.Error
		case eb.Message != "":
			e.Message = eb.Message
		}
		e.Fields = eb.Fields
	}
	return e
}

func (c *Client) getJSON(ctx context.Context, path string, out any, fallback string) error {
	return c.call(ctx, http.MethodGet, path, nil, "", out, fallback)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any, fallback string) error {
	if in == nil {
		return c.call(ctx, method, path, nil, "", out, fallback)
	}
	data, err := json.Marshal(in)
	if err != nil {
		return &Error{Kind: KindValidation, Message: fallback, Err: err}
	}
	return c.call(ctx, method, path, bytes.NewReader(data), "application/json", out, fallback)
}
