package client

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds each backend call. The analysis endpoint runs a
// language model so responses routinely take tens of seconds.
const DefaultTimeout = 5 * time.Minute

// DefaultUserAgent identifies the client to the backend.
const DefaultUserAgent = "go-pestel"

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client. A non-zero Timeout on hc
// wins; otherwise a copy of hc gets the client timeout, so hc itself is never
// modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLiteralPath disables percent-encoding of the business name when it is
// placed in the summary path. Names containing '/', '?' or '#' will then
// address a different resource.
func WithLiteralPath() Option {
	return func(c *Client) {
		c.literalPath = true
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent != "" {
			c.userAgent = agent
		}
	}
}
