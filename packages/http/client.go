package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitcurl/packages/request"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultUserAgent is sent unless the request sets its own
	DefaultUserAgent = "hitcurl"
)

// ErrTransport matches any TransportError.
var ErrTransport = errors.New("unable to connect to the server")

// TransportError wraps a failure to get any response at all: refused
// connections, DNS failures, TLS failures and timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Transport sends a resolved request.
type Transport interface {
	Do(ctx context.Context, spec *request.Spec) (*Response, error)
}

type Client struct {
	httpClient     *http.Client
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	proxyURL       string
	defaultHeaders map[string]string
	logger         zerolog.Logger
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		defaultHeaders: map[string]string{"User-Agent": DefaultUserAgent},
		logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient != nil {
		return c
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Configure proxy if specified
	if c.proxyURL != "" {
		proxyURL, err := neturl.Parse(c.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			c.logger.Warn().Err(err).Str("proxy", c.proxyURL).Msg("ignoring invalid proxy URL")
		}
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !c.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= c.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	c.httpClient = &http.Client{
		Transport:     transport,
		Timeout:       c.timeout,
		CheckRedirect: redirectPolicy,
	}

	return c
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithFollowRedirects(follow bool) ClientOption {
	return func(c *Client) {
		c.followRedirect = follow
	}
}

func WithMaxRedirects(max int) ClientOption {
	return func(c *Client) {
		c.maxRedirects = max
	}
}

// WithDefaultHeaders sets headers sent with every request unless the request overrides them
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[http.CanonicalHeaderKey(k)] = v
		}
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithHTTPClient replaces the underlying client; timeout, redirect and proxy
// options are then ignored.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// Do sends spec and reads the whole response body. Any failure before a
// response status is received is returned as a *TransportError.
func (c *Client) Do(ctx context.Context, spec *request.Spec) (*Response, error) {
	var body io.Reader
	if spec.HasBody() {
		body = strings.NewReader(spec.Body.Content)
	}

	httpReq, err := http.NewRequestWithContext(ctx, spec.Method, spec.URL.String(), body)
	if err != nil {
		return nil, err
	}

	for k, v := range c.defaultHeaders {
		httpReq.Header.Set(k, v)
	}

	for k, v := range spec.Headers {
		httpReq.Header.Set(k, v)
	}

	log := c.logger.With().
		Str("request_id", uuid.NewString()).
		Str("method", spec.Method).
		Str("url", spec.URL.String()).
		Logger()
	log.Debug().Str("body", spec.Body.Kind.String()).Msg("sending request")

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		log.Debug().Err(err).Dur("duration", duration).Msg("transport failure")
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		log.Debug().Err(err).Msg("reading response body failed")
		return nil, &TransportError{Err: err}
	}

	headers := make(map[string]string)
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    headers,
		Body:       respBody,
		Duration:   duration,
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(resp.Body)).
		Int64("duration_ms", resp.DurationMs()).
		Msg("response received")

	return resp, nil
}
