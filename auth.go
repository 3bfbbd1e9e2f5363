package apikit

import (
	"net/http"
	"time"
)

// AuthClient is a Client that injects a token header into every handle it
// constructs. The header value is "{prefix} {token}", or the bare token when
// the prefix is empty.
type AuthClient struct {
	Client

	token      string
	prefix     string
	headerName string
}

// NewAuth constructs an authenticated client. The default scheme is
// "Bearer" on the "Authorization" header; change it with SetAuthPrefix and
// SetAuthHeaderName before the first handle is built.
func NewAuth(baseURL, token string, options ...Option) *AuthClient {
	ac := &AuthClient{
		token:      token,
		prefix:     "Bearer",
		headerName: "Authorization",
	}
	ac.Client = *New(baseURL, options...)
	return ac
}

// SetAuthPrefix replaces the scheme prefix ("Bearer" by default). An empty
// prefix sends the bare token. Returns the client for chaining.
func (a *AuthClient) SetAuthPrefix(prefix string) *AuthClient {
	a.prefix = prefix
	return a
}

// SetAuthHeaderName replaces the header the token is sent on
// ("Authorization" by default). Returns the client for chaining.
func (a *AuthClient) SetAuthHeaderName(name string) *AuthClient {
	a.headerName = name
	return a
}

// AuthHeader returns the header name and value the client injects.
func (a *AuthClient) AuthHeader() (name, value string) {
	return a.headerName, a.authHeaderValue()
}

func (a *AuthClient) authHeaderValue() string {
	if a.prefix == "" {
		return a.token
	}
	return a.prefix + " " + a.token
}

// HTTPClient returns the request handle, injecting the auth header into the
// configured headers before the handle is first built.
func (a *AuthClient) HTTPClient() *http.Client {
	if a.httpClient == nil {
		a.headers[a.headerName] = a.authHeaderValue()
		a.httpClient = a.buildHandle(a.timeout)
	}
	return a.httpClient
}

// StreamingClient returns the streaming handle with the auth header injected
// the same way as HTTPClient.
func (a *AuthClient) StreamingClient() *http.Client {
	if a.streamClient == nil {
		a.headers[a.headerName] = a.authHeaderValue()
		a.streamClient = a.buildHandle(0)
	}
	return a.streamClient
}

// Open enters a session scope using the authenticated handle constructor.
func (a *AuthClient) Open() error {
	if a.sessionOpen {
		return ErrSessionOpen
	}
	a.HTTPClient()
	a.sessionOpen = true
	if a.logger != nil {
		a.logger.Debug("session opened", "baseURL", a.baseURL)
	}
	return nil
}

// WithHeaders mirrors Client.WithHeaders, returning an authenticated copy.
func (a *AuthClient) WithHeaders(extra map[string]string) *AuthClient {
	na := &AuthClient{token: a.token, prefix: a.prefix, headerName: a.headerName}
	na.Client = *a.Client.WithHeaders(extra)
	return na
}

// WithCookies mirrors Client.WithCookies, returning an authenticated copy.
func (a *AuthClient) WithCookies(extra map[string]string) *AuthClient {
	na := &AuthClient{token: a.token, prefix: a.prefix, headerName: a.headerName}
	na.Client = *a.Client.WithCookies(extra)
	return na
}

// WithTimeout mirrors Client.WithTimeout, returning an authenticated copy.
func (a *AuthClient) WithTimeout(d time.Duration) *AuthClient {
	na := &AuthClient{token: a.token, prefix: a.prefix, headerName: a.headerName}
	na.Client = *a.Client.WithTimeout(d)
	return na
}

// SetHTTPClient overrides the cached request handle. Returns the client for
// chaining.
func (a *AuthClient) SetHTTPClient(h *http.Client) *AuthClient {
	a.httpClient = h
	return a
}

// SetStreamingClient overrides the cached streaming handle. Returns the
// client for chaining.
func (a *AuthClient) SetStreamingClient(h *http.Client) *AuthClient {
	a.streamClient = h
	return a
}
