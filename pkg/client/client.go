// Package client talks to the PESTEL analysis backend over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-pestel/pkg/analysis"
)

const (
	analyzePath = "/analyze_pestel"
	summaryPath = "/get_summary/"

	// maxErrorBody caps how much of an unexpected response is kept in a
	// StatusError.
	maxErrorBody = 4 << 10
	// maxSummaryBody caps the summary response read into memory.
	maxSummaryBody = 8 << 20
)

// Client issues the analyze and summary calls against a single backend.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	timeout     time.Duration
	userAgent   string
	literalPath bool
}

// New returns a Client for baseURL, e.g. "http://127.0.0.1:5000".
func New(baseURL string, options ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	c := &Client{
		baseURL:   u,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	switch {
	case c.http == nil:
		c.http = &http.Client{Timeout: c.timeout}
	case c.http.Timeout == 0:
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Analyze posts the input to /analyze_pestel. The response body is ignored;
// any 2xx status counts as success.
func (c *Client) Analyze(ctx context.Context, input analysis.FormInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("client: encode input: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL.String()+analyzePath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		return statusError(req, res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// Summary fetches the stored summary for businessName. A body carrying an
// "error" field is returned as a payload regardless of status so callers can
// tell backend errors from transport failures.
func (c *Client) Summary(ctx context.Context, businessName string) (analysis.SummaryPayload, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.SummaryURL(businessName), nil)
	if err != nil {
		return analysis.SummaryPayload{}, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.do(req)
	if err != nil {
		return analysis.SummaryPayload{}, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxSummaryBody+1))
	if err != nil {
		return analysis.SummaryPayload{}, fmt.Errorf("client: read summary: %w", err)
	}
	if len(raw) > maxSummaryBody {
		return analysis.SummaryPayload{}, fmt.Errorf("%w: more than %d bytes", ErrSummaryTooLarge, maxSummaryBody)
	}

	var payload analysis.SummaryPayload
	decodeErr := json.Unmarshal(raw, &payload)
	if decodeErr == nil && payload.Error != "" {
		return payload, nil
	}
	if !isSuccess(res.StatusCode) {
		return analysis.SummaryPayload{}, &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: res.StatusCode,
			Body:       truncate(string(raw)),
		}
	}
	if decodeErr != nil {
		return analysis.SummaryPayload{}, fmt.Errorf("client: decode summary: %w", decodeErr)
	}
	return payload, nil
}

// Ping checks that the backend root answers with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
	if err != nil {
		return err
	}
	res, err := c.do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if !isSuccess(res.StatusCode) {
		return statusError(req, res)
	}
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// SummaryURL builds the summary address for businessName, honouring
// WithLiteralPath.
func (c *Client) SummaryURL(businessName string) string {
	name := url.PathEscape(businessName)
	if c.literalPath {
		name = businessName
	}
	return c.baseURL.String() + summaryPath + name
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("client: create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	return res, nil
}

func statusError(req *http.Request, res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	return &StatusError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: res.StatusCode,
		Body:       string(body),
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

func truncate(body string) string {
	if len(body) > maxErrorBody {
		return body[:maxErrorBody]
	}
	return body
}
