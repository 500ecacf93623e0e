// Package booker is a typed client for restful-booker compatible booking APIs.
package booker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 10 * time.Second

// Session is the HTTP carrier shared by the auth and booking clients of one
// test run: one connection pool and one set of default headers.
//
// Requests may be issued concurrently, but SetHeader/DelHeader/RestoreHeaders
// must not race with in-flight requests.
type Session struct {
	baseURL string
	http    *http.Client
	headers http.Header
	log     zerolog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (httptest servers, custom TLS).
func WithHTTPClient(c *http.Client) SessionOption {
	return func(s *Session) {
		if c != nil {
			s.http = c
		}
	}
}

// WithUserAgent adds a User-Agent default header.
func WithUserAgent(ua string) SessionOption {
	return func(s *Session) {
		if ua != "" {
			s.headers.Set("User-Agent", ua)
		}
	}
}

// WithLogger sets the logger used for request/response step logs.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// NewSession creates a session rooted at baseURL with JSON default headers.
func NewSession(baseURL string, opts ...SessionOption) *Session {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	s := &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
		headers: http.Header{},
		log:     log.Logger.With().Str("component", "booker").Logger(),
	}
	s.headers.Set("Content-Type", "application/json")
	s.headers.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the root every request path is appended to.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Header returns the current value of a default header.
func (s *Session) Header(key string) string {
	return s.headers.Get(key)
}

// SetHeader overrides a default header for all following requests.
func (s *Session) SetHeader(key, value string) {
	s.headers.Set(key, value)
}

// DelHeader removes a default header.
func (s *Session) DelHeader(key string) {
	s.headers.Del(key)
}

// Headers returns a copy of the default headers, for later RestoreHeaders.
func (s *Session) Headers() http.Header {
	return s.headers.Clone()
}

// RestoreHeaders replaces the default headers with a saved copy.
func (s *Session) RestoreHeaders(h http.Header) {
	s.headers = h.Clone()
}

// Close releases idle connections.
func (s *Session) Close() {
	s.http.CloseIdleConnections()
}

type request struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	headers http.Header
}

type response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (s *Session) do(ctx context.Context, req request) (*response, error) {
	if s == nil || s.http == nil {
		return nil, fmt.Errorf("%s request error: session is nil", req.op)
	}
	if s.baseURL == "" {
		return nil, fmt.Errorf("%s config error: base_url is empty", req.op)
	}

	target := s.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s encode error: %w", req.op, err)
		}
		s.log.Debug().Str("op", req.op).RawJSON("payload", payload).Msg("Prepared payload")
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s request error: %w", req.op, err)
	}
	for key, values := range s.headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	for key, values := range req.headers {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	s.log.Info().Str("op", req.op).Str("method", req.method).Str("url", target).Msg("Sending request")

	start := time.Now()
	resp, err := s.http.Do(httpReq)
	if err != nil {
		return nil, classifyRequestError(ctx, req.op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s http error: status=%d body=<failed to read body: %v>", req.op, resp.StatusCode, err)
	}

	s.log.Info().
		Str("op", req.op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Received response")
	if resp.StatusCode >= 400 {
		s.log.Debug().Str("op", req.op).Str("body", truncate(string(raw), 1000)).Msg("Error response body")
	}

	return &response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

func (s *Session) httpError(req request, resp *response) *HTTPError {
	return &HTTPError{
		Op:         req.op,
		Method:     req.method,
		URL:        s.baseURL + req.path,
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
}

// tokenCookie is how the service expects the token on mutating calls: as a
// cookie header, not as Authorization.
func tokenCookie(token string) http.Header {
	h := http.Header{}
	h.Set("Cookie", "token="+token)
	return h
}
