// Package forge talks to a GitHub-like REST API and implements the
// page-numbered listing walk the rest of the system is built on.
package forge

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is the REST endpoint of github.com.
	DefaultBaseURL = "https://api.github.com"

	acceptHeader = "application/vnd.github.v3+json"
)

type Client struct {
	http    *http.Client
	baseURL string
	logger  *log.Logger
}

type options struct {
	baseURL    string
	httpClient *http.Client
	verbose    bool
	// writer controls where verbose HTTP traces are written (typically stderr)
	// so structured output on stdout stays clean and tests can capture logs.
	writer io.Writer
}

type Option func(*options)

// WithBaseURL overrides the forge endpoint. Used for GHES-style hosts and by
// tests pointing at a local server.
func WithBaseURL(u string) Option {
	return func(o *options) {
		o.baseURL = u
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// tracingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose tracing is enabled.
type tracingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *tracingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] forge api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] forge api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] forge api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

// NewClient builds an unauthenticated forge client. No token is ever
// attached; calls run under the forge's anonymous rate limits.
func NewClient(logger *log.Logger, opts ...Option) *Client {
	o := &options{
		baseURL: DefaultBaseURL,
	}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	if o.verbose {
		base := hc.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		// Copy so the caller's client is not mutated.
		wrapped := *hc
		wrapped.Transport = &tracingRoundTripper{base: base, w: o.writer}
		hc = &wrapped
	}

	return &Client{
		http:    hc,
		baseURL: o.baseURL,
		logger:  logger,
	}
}

// BaseURL returns the configured forge endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}
