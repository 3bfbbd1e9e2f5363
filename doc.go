// Package apikit is the runtime support library for generated HTTP API clients:
//
//   - Client / AuthClient configuration holders with lazily cached
//     request and streaming transport handles
//   - Copy-on-update builders (WithHeaders / WithCookies / WithTimeout)
//   - Three-state Optional[T] values distinguishing unset, null and present
//   - Encode: reflection based serialization that strips unset fields
//   - File upload wrapper for multipart form encoding
//   - Response envelope with typed JSON parsing helpers
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - All transport behavior (pooling, TLS, redirects, timeouts) stays in
//     net/http; this layer only stores and forwards configuration
//   - Extensibility via request editors & pluggable unmarshaler / metrics
//
// Typical usage:
//
//	client := apikit.New("https://api.example.com",
//	    apikit.WithRequestTimeout(10*time.Second),
//	    apikit.WithHTTPHeaders(map[string]string{"X-Trace": "1"}),
//	)
//	resp, err := client.HTTPClient().Get("https://api.example.com/items")
//
// Generated endpoint code builds requests against the configured handle and
// wraps raw responses with NewResponse + ParseJSON. Use NewAuth for APIs
// behind bearer (or custom scheme) token authentication.
package apikit
