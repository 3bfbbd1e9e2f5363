package apikit

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"
)

// Client holds the connection configuration for a generated API client and
// lazily constructs the transport handles that issue requests. It carries no
// protocol logic: pooling, TLS, redirects and timeouts all belong to
// net/http.
//
// The copy-on-update builders (WithHeaders, WithCookies, WithTimeout) return
// a modified copy without transport handles, so the next accessor call
// rebuilds from the new configuration. A Client must not be mutated
// concurrently; the handles it hands out are ordinary *http.Client values
// and are safe for concurrent use.
type Client struct {
	baseURL                 string
	base                    *url.URL
	headers                 map[string]string
	cookies                 map[string]string
	timeout                 time.Duration
	tlsConfig               *tls.Config
	insecureTLS             bool
	followRedirects         bool
	transport               http.RoundTripper
	clientOptions           []func(*http.Client)
	raiseOnUnexpectedStatus bool
	editors                 []RequestEditor
	unmarshaler             Unmarshaler
	logger                  Logger
	metrics                 *MetricsCollector
	validationError         error

	httpClient   *http.Client
	streamClient *http.Client
	sessionOpen  bool
}

// New constructs a Client for the given base URL using the provided
// functional options. A best effort validation is performed; call
// IsValid / ValidationError for errors.
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:     baseURL,
		headers:     map[string]string{},
		cookies:     map[string]string{},
		timeout:     30 * time.Second,
		unmarshaler: jsonUnmarshaler{},
	}
	client.base, _ = url.Parse(baseURL)

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	return client
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// WithHeaders returns a copy of the client with extra merged into its default
// headers. The copy carries no transport handles. If the receiver already
// has live handles their header sets are patched in place, so open sessions
// observe the update; the receiver's own configuration is left untouched.
func (c *Client) WithHeaders(extra map[string]string) *Client {
	for _, handle := range []*http.Client{c.httpClient, c.streamClient} {
		if it, ok := liveInjector(handle); ok {
			for k, v := range extra {
				it.headers[k] = v
			}
		}
	}

	nc := c.clone()
	for k, v := range extra {
		nc.headers[k] = v
	}
	return nc
}

// WithCookies returns a copy of the client with extra merged into its default
// cookies, with the same live-handle patch semantics as WithHeaders.
func (c *Client) WithCookies(extra map[string]string) *Client {
	for _, handle := range []*http.Client{c.httpClient, c.streamClient} {
		if it, ok := liveInjector(handle); ok {
			for k, v := range extra {
				it.cookies[k] = v
			}
		}
	}

	nc := c.clone()
	for k, v := range extra {
		nc.cookies[k] = v
	}
	return nc
}

// WithTimeout returns a copy of the client with the timeout replaced. A live
// request handle on the receiver is patched in place. The streaming handle
// never carries an overall timeout and is not touched.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if c.httpClient != nil {
		c.httpClient.Timeout = d
	}

	nc := c.clone()
	nc.timeout = d
	return nc
}

// SetHTTPClient overrides the cached request handle unconditionally,
// discarding any previously cached one. Returns the client for chaining.
func (c *Client) SetHTTPClient(h *http.Client) *Client {
	c.httpClient = h
	return c
}

// SetStreamingClient overrides the cached streaming handle unconditionally.
// Returns the client for chaining.
func (c *Client) SetStreamingClient(h *http.Client) *Client {
	c.streamClient = h
	return c
}

// HTTPClient returns the request handle, constructing it from the current
// configuration on first use. Repeated calls return the identical handle
// until Close or SetHTTPClient.
func (c *Client) HTTPClient() *http.Client {
	if c.httpClient == nil {
		c.httpClient = c.buildHandle(c.timeout)
	}
	return c.httpClient
}

// StreamingClient returns the streaming handle: the same configuration as
// HTTPClient but without an overall timeout, for long-lived response bodies
// that http.Client.Timeout would cut off. Lazily constructed and cached
// independently of the request handle.
func (c *Client) StreamingClient() *http.Client {
	if c.streamClient == nil {
		c.streamClient = c.buildHandle(0)
	}
	return c.streamClient
}

// Open enters a session scope: the request handle is constructed eagerly and
// the session is marked open. Opening an already-open session is an error.
func (c *Client) Open() error {
	if c.sessionOpen {
		return ErrSessionOpen
	}
	c.HTTPClient()
	c.sessionOpen = true
	if c.logger != nil {
		c.logger.Debug("session opened", "baseURL", c.baseURL)
	}
	return nil
}

// Close exits the session scope: idle connections are closed and both cached
// handles are cleared, forcing lazy reconstruction on next use. Safe to call
// on a client that was never opened.
func (c *Client) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	if c.streamClient != nil {
		c.streamClient.CloseIdleConnections()
	}
	c.httpClient = nil
	c.streamClient = nil
	c.sessionOpen = false
	if c.logger != nil {
		c.logger.Debug("session closed", "baseURL", c.baseURL)
	}
	return nil
}

// CheckStatus returns an *UnexpectedStatusError when the client was built
// with WithRaiseOnUnexpectedStatus and the response status is not among the
// documented codes. Otherwise nil.
func (c *Client) CheckStatus(r *Response, documented ...int) error {
	if !c.raiseOnUnexpectedStatus {
		return nil
	}
	for _, code := range documented {
		if r.StatusCode == code {
			return nil
		}
	}
	return &UnexpectedStatusError{StatusCode: r.StatusCode, Body: r.Body}
}

// DecodeJSON decodes the response body into v using the configured
// unmarshaler and records the result in r.Parsed. An empty body is a no-op.
func (c *Client) DecodeJSON(r *Response, v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := c.unmarshaler.Unmarshal(r.Body, v); err != nil {
		return err
	}
	r.Parsed = v
	return nil
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

// clone copies the configuration but never the cached handles or session
// mark: with-update copies always rebuild lazily.
func (c *Client) clone() *Client {
	nc := *c
	nc.headers = cloneMap(c.headers)
	nc.cookies = cloneMap(c.cookies)
	nc.editors = append([]RequestEditor(nil), c.editors...)
	nc.clientOptions = append(([]func(*http.Client))(nil), c.clientOptions...)
	nc.httpClient = nil
	nc.streamClient = nil
	nc.sessionOpen = false
	return &nc
}

// buildHandle constructs an *http.Client from the current configuration.
func (c *Client) buildHandle(timeout time.Duration) *http.Client {
	base := c.transport
	if base == nil {
		if c.tlsConfig != nil || c.insecureTLS {
			tr := http.DefaultTransport.(*http.Transport).Clone()
			if c.tlsConfig != nil {
				tr.TLSClientConfig = c.tlsConfig.Clone()
			}
			if c.insecureTLS {
				if tr.TLSClientConfig == nil {
					tr.TLSClientConfig = &tls.Config{}
				}
				tr.TLSClientConfig.InsecureSkipVerify = true
			}
			base = tr
		} else {
			base = http.DefaultTransport
		}
	}

	handle := &http.Client{
		Transport: &injectorTransport{
			next:    base,
			base:    c.base,
			headers: cloneMap(c.headers),
			cookies: cloneMap(c.cookies),
			editors: append([]RequestEditor(nil), c.editors...),
			metrics: c.metrics,
			logger:  c.logger,
		},
		Timeout: timeout,
	}
	if !c.followRedirects {
		handle.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	for _, opt := range c.clientOptions {
		opt(handle)
	}

	if c.logger != nil {
		c.logger.Debug("transport handle constructed", "baseURL", c.baseURL, "timeout", timeout)
	}
	return handle
}

// liveInjector returns the injector transport of a constructed handle, when
// the handle is one this package built.
func liveInjector(handle *http.Client) (*injectorTransport, bool) {
	if handle == nil {
		return nil, false
	}
	it, ok := handle.Transport.(*injectorTransport)
	return it, ok
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
