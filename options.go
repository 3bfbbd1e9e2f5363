package apikit

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

// Option represents a configuration option
type Option func(*Client)

// WithHTTPHeaders merges headers sent with every request.
func WithHTTPHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithHTTPCookies merges cookies sent with every request.
func WithHTTPCookies(cookies map[string]string) Option {
	return func(c *Client) {
		for k, v := range cookies {
			c.cookies[k] = v
		}
	}
}

// WithRequestTimeout sets the overall request timeout for the request
// handle. The streaming handle never carries one.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithInsecureTLS disables TLS certificate verification. Never use outside
// tests against self-signed endpoints.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.insecureTLS = true
	}
}

// WithTLSConfig sets a custom TLS configuration for constructed handles.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *Client) {
		c.tlsConfig = cfg
	}
}

// WithFollowRedirects enables following redirects. The default is to return
// the redirect response itself, matching generated-client expectations.
func WithFollowRedirects() Option {
	return func(c *Client) {
		c.followRedirects = true
	}
}

// WithTransport replaces the base transport handles are built on. The
// configuration injector still wraps it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithHTTPClientOptions appends free-form tweaks applied to each handle
// after construction (jar, redirect policy, anything on *http.Client).
func WithHTTPClientOptions(opts ...func(*http.Client)) Option {
	return func(c *Client) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// WithRaiseOnUnexpectedStatus makes CheckStatus flag undocumented response
// status codes.
func WithRaiseOnUnexpectedStatus() Option {
	return func(c *Client) {
		c.raiseOnUnexpectedStatus = true
	}
}

// WithRequestEditor appends editors run against every outgoing request.
func WithRequestEditor(editors ...RequestEditor) Option {
	return func(c *Client) {
		c.editors = append(c.editors, editors...)
	}
}

// WithUnmarshaler sets a custom response body unmarshaler.
func WithUnmarshaler(u Unmarshaler) Option {
	return func(c *Client) {
		c.unmarshaler = u
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		c.logger = NewSimpleLogger()
	}
}

// WithMetrics enables Prometheus metrics collection on the default
// registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, c.validateBaseURL()...)
	errors = append(errors, c.validateTimeout()...)
	errors = append(errors, c.validateEditors()...)
	errors = append(errors, c.validateClientOptions()...)
	errors = append(errors, c.validateUnmarshaler()...)

	if len(errors) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

// validateBaseURL validates the required base URL
func (c *Client) validateBaseURL() []string {
	var errors []string

	if c.baseURL == "" {
		errors = append(errors, ErrNoBaseURL.Error())
		return errors
	}
	if c.base == nil {
		errors = append(errors, "baseURL must be parseable")
		return errors
	}
	if !c.base.IsAbs() || c.base.Host == "" {
		errors = append(errors, "baseURL must be absolute with a host")
	}

	return errors
}

// validateTimeout validates timeout bounds
func (c *Client) validateTimeout() []string {
	var errors []string

	if c.timeout < 0 {
		errors = append(errors, "timeout must be non-negative")
	}
	if c.timeout > 10*time.Minute {
		errors = append(errors, "timeout > 10m may cause requests to hang for too long")
	}

	return errors
}

// validateEditors validates request editor configuration
func (c *Client) validateEditors() []string {
	var errors []string

	for i, editor := range c.editors {
		if editor == nil {
			errors = append(errors, fmt.Sprintf("requestEditor[%d] cannot be nil", i))
		}
	}

	return errors
}

// validateClientOptions validates free-form handle options
func (c *Client) validateClientOptions() []string {
	var errors []string

	for i, opt := range c.clientOptions {
		if opt == nil {
			errors = append(errors, fmt.Sprintf("httpClientOption[%d] cannot be nil", i))
		}
	}

	return errors
}

// validateUnmarshaler validates the response unmarshaler
func (c *Client) validateUnmarshaler() []string {
	var errors []string

	if c.unmarshaler == nil {
		errors = append(errors, "unmarshaler cannot be nil")
	}

	return errors
}
