// Package upstream talks to the external REST backend that owns bookings and
// destinations. Responses are returned verbatim so callers can relay them.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"
)

// ForwardedHeaders are copied from the incoming request to the upstream call.
var ForwardedHeaders = []string{
	"Authorization",
	"Content-Type",
	"Accept",
	"Accept-Language",
	"X-Request-ID",
}

// maxResponseBytes caps how much of an upstream body is buffered.
const maxResponseBytes = 10 << 20

var ErrNotConfigured = errors.New("upstream: base url not configured")

type Client struct {
	BaseURL    string
	HTTP       *http.Client
	Retries    int
	RetryDelay time.Duration
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// ContentType returns the upstream content type or application/json.
func (r *Response) ContentType() string {
	if r == nil {
		return "application/json"
	}
	if ct := strings.TrimSpace(r.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	return "application/json"
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

func New(baseURL string, timeout time.Duration, retries int, retryDelay time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:       &http.Client{Timeout: timeout},
		Retries:    retries,
		RetryDelay: retryDelay,
	}
}

// Do sends req upstream. Only transport failures produce an error; any HTTP
// status, including 4xx/5xx, comes back as a Response. GET requests are retried
// on transport failures, other methods are sent once.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c == nil || c.BaseURL == "" {
		return nil, ErrNotConfigured
	}
	target, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	attempts := uint(1)
	if method == http.MethodGet && c.Retries > 0 {
		attempts += uint(c.Retries)
	}

	var out *Response
	err = retry.Do(
		func() error {
			resp, err := c.send(ctx, method, target, req)
			if err != nil {
				return err
			}
			out = resp
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(c.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WithFields(log.Fields{
				"method":  method,
				"url":     target,
				"attempt": n + 1,
			}).WithError(err).Warn("upstream request failed, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", method, req.Path, err)
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, target string, req Request) (*Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	for _, name := range ForwardedHeaders {
		if v := req.Header.Get(name); v != "" {
			httpReq.Header.Set(name, v)
		}
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   data,
	}, nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.BaseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("upstream url: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
