// Package client performs authenticated JSON requests against the chronosync API.
//
// The client resolves the endpoint against the configured base URL, attaches the session token
// as a bearer header when one exists, and normalizes every failure into a *ClientError so
// callers can tell connection, HTTP and decode failures apart (see errors.go).
// It never retries: each call is exactly one HTTP request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sinergy/chronosync/internal/logger"
	"github.com/sinergy/chronosync/internal/schemas"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 10 * time.Second

	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
	ContentTypeJSON     = "application/json"
)

// URLResolver maps an endpoint path to an absolute URL, *config.Config implements it
type URLResolver interface {
	APIURL(path string) string
}

// TokenSource supplies the current session token, *session.Manager implements it
type TokenSource interface {
	Token() (string, bool, error)
}

// Validator checks a raw response body against a named schema, *schemas.Registry implements it
type Validator interface {
	Validate(name string, body []byte) error
}

// HTTPDoer is the subset of *http.Client used by the client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestOptions describes a single API call.
//
// Body may be a structured value (JSON encoded), or a string, []byte or json.RawMessage which are sent unchanged.
// Headers are applied after the defaults, an empty value removes the default header.
// Schema names the response schema used when response validation is enabled.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
	Schema  string
}

// Client handles communication with the chronosync API
type Client struct {
	urls       URLResolver
	tokens     TokenSource
	httpClient HTTPDoer
	validator  Validator
	limiter    *rate.Limiter
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http client (10 second timeout)
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout sets the timeout of the default http client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithValidator enables validation of success bodies for requests that name a schema
func WithValidator(v Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

// WithRateLimit paces outgoing requests to rps per second with the given burst. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func NewClient(urls URLResolver, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		urls:   urls,
		tokens: tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs the call and decodes the JSON response into a T
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (T, error) {
	var result T
	if err := c.Do(ctx, endpoint, opts, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Do performs one HTTP request. On success the body is decoded into out, a nil out discards the body.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	url := c.urls.APIURL(endpoint)

	body, err := encodeBody(opts.Body)
	if err != nil {
		return NewClientInternalError(err, fmt.Sprintf("encoding %s %s request body", method, endpoint))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return NewClientInternalError(err, fmt.Sprintf("creating %s %s request", method, endpoint))
	}

	token, ok, err := c.tokens.Token()
	if err != nil {
		return NewClientInternalError(err, "reading session token")
	}

	req.Header.Set(HeaderContentType, ContentTypeJSON)
	if ok {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	req.Header.Set(HeaderRequestID, uuid.NewString())
	for name, value := range opts.Headers {
		if value == "" {
			req.Header.Del(name)
			continue
		}
		req.Header.Set(name, value)
	}

	requestID := req.Header.Get(HeaderRequestID)
	log := c.logger.With(
		slog.String("method", method),
		slog.String("path", endpoint),
		slog.String("request_id", requestID),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn("request not sent", slog.String("error", err.Error()))
			return NewClientConnectionError(err)
		}
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", slog.String("error", err.Error()))
		return NewClientConnectionError(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Warn("failed to read response body", slog.Int("status", res.StatusCode), slog.String("error", err.Error()))
		return NewClientConnectionError(err)
	}

	log = log.With(
		slog.Int("status", res.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Warn("request completed with error status")
		return NewClientApiError(res.StatusCode, string(raw))
	}

	log.Debug("request completed")

	if out == nil {
		return nil
	}

	if opts.Schema != "" && c.validator != nil {
		if err := c.validator.Validate(opts.Schema, raw); err != nil {
			var unknown *schemas.ErrUnknownSchema
			if errors.As(err, &unknown) {
				return NewClientInternalError(err, "validating response")
			}
			return NewClientDecodeError(err, res.StatusCode)
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return NewClientDecodeError(err, res.StatusCode)
	}
	return nil
}

// encodeBody returns nil for a nil body, pre-serialized bodies unchanged and everything else as JSON
func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
}
