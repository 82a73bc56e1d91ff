// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

package codemao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/aumiao/aumiao/internal/state"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.codemao.cn"

// maxBody caps how much of a response we are willing to buffer.
const maxBody = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	Tokens     *state.TokenStore
	HTTPClient *http.Client
	Logger     *clog.Logger
}

// Client talks to the codemao.cn API. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	tokens    *state.TokenStore
	logger    *clog.Logger
}

// New builds a Client. A nil token store gets a fresh one.
func New(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = state.NewTokenStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = clog.New(io.Discard)
	}

	return &Client{
		base:      base,
		http:      hc,
		userAgent: opts.UserAgent,
		tokens:    tokens,
		logger:    logger,
	}, nil
}

// Tokens returns the store the client reads its Authorization header from.
func (c *Client) Tokens() *state.TokenStore { return c.tokens }

// Result is the outcome of a call that reached the server: either a decoded
// Value or a Rejection.
type Result[T any] struct {
	Value     T
	Rejection *Rejected
}

// Rejected reports whether the server declined the request.
func (r Result[T]) Rejected() bool { return r.Rejection != nil }

type request struct {
	body    any
	query   url.Values
	headers http.Header
}

// RequestOption customizes a single call.
type RequestOption func(*request)

// WithJSON sends v as the JSON request body.
func WithJSON(v any) RequestOption {
	return func(r *request) { r.body = v }
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(r *request) { r.query.Add(key, value) }
}

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.headers.Set(key, value) }
}

// Fresh asks every cache on the way to skip stored copies.
func Fresh() RequestOption {
	return func(r *request) {
		r.headers.Set("Cache-Control", "no-cache")
		r.headers.Set("Pragma", "no-cache")
		r.query.Set("_", strconv.FormatInt(time.Now().UnixNano(), 10))
	}
}

// Do issues one request against ep and decodes a 2xx body into T. Non-2xx
// responses become a Rejection; everything that prevents a response from
// being read or decoded is returned as an error. Do never retries.
func Do[T any](ctx context.Context, c *Client, ep Endpoint, opts ...RequestOption) (Result[T], error) {
	var res Result[T]

	body, status, err := c.roundTrip(ctx, ep, opts)
	if err != nil {
		return res, err
	}
	if status < 200 || status > 299 {
		res.Rejection = newRejected(status, body)
		c.logger.Debug("request rejected", "endpoint", ep.Path, "status", status, "code", res.Rejection.Code)
		return res, nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(body, &res.Value); err != nil {
		return res, fmt.Errorf("decode %s %s response: %w", ep.Method, ep.Path, err)
	}
	return res, nil
}

func (c *Client) roundTrip(ctx context.Context, ep Endpoint, opts []RequestOption) ([]byte, int, error) {
	r := &request{query: url.Values{}, headers: http.Header{}}
	for _, opt := range opts {
		opt(r)
	}

	u := *c.base
	u.Path = c.base.Path + ep.Path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var payload io.Reader
	if r.body != nil {
		data, err := marshalBody(r.body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s %s body: %w", ep.Method, ep.Path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), payload)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s %s: %w", ep.Method, ep.Path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", acceptEncoding)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", token)
	}
	for k, v := range r.headers {
		req.Header[k] = v
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", ep.Method, ep.Path, err)
	}
	defer resp.Body.Close()

	reader, err := decodeBody(resp)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%s %s: %w", ep.Method, ep.Path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s %s response: %w", ep.Method, ep.Path, err)
	}
	c.logger.Debug("request", "method", ep.Method, "endpoint", ep.Path, "status", resp.StatusCode, "took", time.Since(started))
	return data, resp.StatusCode, nil
}

func marshalBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case LoginRequest:
		return json.Marshal(b.wire())
	case *LoginRequest:
		if b == nil {
			return nil, errors.New("nil login request")
		}
		return json.Marshal(b.wire())
	default:
		return json.Marshal(v)
	}
}
