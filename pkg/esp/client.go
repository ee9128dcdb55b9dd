// Package esp is a typed client for the EskomSePush business API 2.0.
//
// Every record returned by the client keeps a reference to the client that
// built it, so a root record can fetch a fresh copy of itself.
package esp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the business API root every path is appended to.
const DefaultBaseURL = "https://developer.sepush.co.za/business/2.0"

const (
	defaultTimeout     = 30 * time.Second
	maxErrorMessageLen = 256
)

// Client talks to the EskomSePush API. It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	log     *zap.Logger

	newSession  func() *http.Client
	sessionOnce sync.Once
	session     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient makes the client use hc as its session instead of creating one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.newSession = func() *http.Client { return hc }
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a client that authenticates with token unless a request
// overrides it. token may be empty if every call passes WithToken.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		log:     zap.NewNop(),
		newSession: func() *http.Client {
			return &http.Client{Timeout: defaultTimeout}
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption tweaks a single Request call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	token string
}

// WithToken authenticates one request with token instead of the client default.
func WithToken(token string) RequestOption {
	return func(o *requestOptions) {
		o.token = token
	}
}

// httpClient returns the session, creating it on first use.
func (c *Client) httpClient() *http.Client {
	c.sessionOnce.Do(func() {
		c.session = c.newSession()
	})
	return c.session
}

// Request performs method on path (relative to the base URL) and returns the
// raw JSON body. Non-2xx responses are reported as *ResponseError before the
// body is looked at; network failures as *TransportError.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, opts ...RequestOption) (json.RawMessage, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	token := ro.token
	if token == "" {
		token = c.token
	}
	if token == "" {
		return nil, ErrAuthenticationMissing
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("esp: build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Token", token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResponseError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	if !json.Valid(body) {
		return nil, &ResponseError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        ErrInvalidJSON,
		}
	}
	return json.RawMessage(body), nil
}

// get issues a GET and decodes the body into payload.
func (c *Client) get(ctx context.Context, path string, query url.Values, payload any) error {
	raw, err := c.Request(ctx, http.MethodGet, path, query)
	if err != nil {
		return err
	}
	return decodePayload(raw, payload)
}

// errorMessage pulls {"error": "..."} out of an error body, falling back to
// the body itself.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen]
	}
	return msg
}

func coordinates(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return q
}
