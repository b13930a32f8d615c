// Package clients talks to the Identity and Load REST services.
package clients

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"freight_admin/internal/logger"
)

// ErrUnauthorized is returned when a service rejects the bearer token. The
// caller must drop the credential and send the user to the login page.
var ErrUnauthorized = errors.New("upstream rejected credential")

// ErrUnsupported is returned for operations a resource does not expose.
var ErrUnsupported = errors.New("operation not supported by resource")

// StatusError is a non-2xx answer other than 401.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d (%s %s)", e.Code, e.Method, e.URL)
}

// Options configures the HTTP transport shared by the clients.
type Options struct {
	Timeout     time.Duration
	InsecureTLS bool // the services run with dev certificates on localhost
}

// Client is a JSON-over-HTTP client bound to one service base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

// NewClient builds a client for baseURL.
func NewClient(baseURL string, opts Options) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for local dev services
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
		log:     logger.Component("upstream").WithField("base_url", baseURL),
	}
}

type request struct {
	method string
	path   string
	token  string
	query  url.Values
	body   any
	// decodeErrors parses the body even on 4xx, for endpoints that report
	// failures inside the JSON envelope.
	decodeErrors bool
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && req.token != "" {
		c.log.WithField("path", req.path).Warn("upstream answered 401")
		return ErrUnauthorized
	}
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok && !(req.decodeErrors && resp.StatusCode < 500 && len(raw) > 0) {
		return &StatusError{Method: req.method, URL: req.path, Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
