package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/secondwear/internal/logging"
	"github.com/dmitrijs2005/secondwear/internal/metrics"
	"github.com/dmitrijs2005/secondwear/internal/requestid"
	"golang.org/x/time/rate"
)

const maxResponseSize = 8 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     logging.Logger
	timeout time.Duration
	limiter *rate.Limiter
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client (tests use the one
// from httptest.Server).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// WithRateLimit paces outgoing calls to rps requests per second with the
// given burst. Non-positive rps leaves calls unpaced.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewHTTPClient(baseURL string, creds Credentials, log logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		log:     log.With("component", "gateway"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Call performs one request. It never returns an error: every failure is
// folded into the Result.
func (c *HTTPClient) Call(ctx context.Context, path string, opts *RequestOptions) Result {
	ctx, _ = requestid.Ensure(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	res := c.do(ctx, path, opts)
	elapsed := time.Since(start)

	metrics.APIRequestsTotal.WithLabelValues(opts.method(), metrics.Outcome(res.OK, res.Status)).Inc()
	metrics.APIRequestDuration.WithLabelValues(opts.method()).Observe(elapsed.Seconds())
	if res.expired {
		metrics.ForcedLogoutsTotal.Inc()
	}

	args := []any{"method", opts.method(), "path", path, "status", res.Status, "duration", elapsed}
	if res.OK {
		c.log.Debug(ctx, "api call", args...)
	} else {
		c.log.Warn(ctx, "api call failed", append(args, "error", res.Error)...)
	}
	return res
}

func (c *HTTPClient) do(ctx context.Context, path string, opts *RequestOptions) Result {
	target, err := c.resolve(path, opts)
	if err != nil {
		return Result{Error: err.Error()}
	}

	body, err := encodeBody(opts)
	if err != nil {
		return Result{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, opts.method(), target, body)
	if err != nil {
		return Result{Error: err.Error()}
	}
	c.setHeaders(ctx, req, opts)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Result{Error: err.Error()}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Error: transportMessage(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{Status: resp.StatusCode, Error: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, resp.StatusCode, raw, opts)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Result{OK: true, Status: resp.StatusCode}
	}
	var data json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return Result{Status: resp.StatusCode, Error: err.Error()}
	}
	return Result{OK: true, Status: resp.StatusCode, Data: data}
}

func (c *HTTPClient) failure(ctx context.Context, status int, raw []byte, opts *RequestOptions) Result {
	authorized := opts == nil || !opts.Anonymous
	if status == http.StatusUnauthorized && authorized {
		if c.creds != nil {
			c.creds.Expire(ctx)
		}
		return Result{Status: status, Error: SessionExpiredMessage, expired: true}
	}

	msg := serverMessage(raw)
	if msg == "" {
		msg = opts.fallback()
	}
	return Result{Status: status, Error: msg}
}

func (c *HTTPClient) resolve(path string, opts *RequestOptions) (string, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		target = c.baseURL + path
	}

	if opts == nil || len(opts.Query) == 0 {
		return target, nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", target, err)
	}
	q := u.Query()
	for k, vs := range opts.Query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *HTTPClient) setHeaders(ctx context.Context, req *http.Request, opts *RequestOptions) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestid.FromContext(ctx))

	anonymous := opts != nil && opts.Anonymous
	if !anonymous && c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if opts != nil {
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
	}
}

func encodeBody(opts *RequestOptions) (io.Reader, error) {
	if opts == nil || opts.Body == nil {
		return nil, nil
	}
	switch b := opts.Body.(type) {
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	}
	data, err := json.Marshal(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// serverMessage extracts the human-readable error text of an error body.
func serverMessage(raw []byte) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch e := body.Error.(type) {
	case string:
		if e != "" {
			return e
		}
	case map[string]any:
		if m, ok := e["message"].(string); ok && m != "" {
			return m
		}
	}
	return body.Message
}

func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
