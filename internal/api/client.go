// Package api is the generic REST request/response layer shared by all
// domain services: it builds URLs against a fixed base, attaches bearer
// credentials, serializes JSON, and maps outcomes onto typed errors.
package api

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
)

// Client issues requests against a single backend base URL. The zero value
// is not usable; construct with New.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a Client for the given base URL. Timeout bounds every request
// at the transport level; there is no application-level retry.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the configured base URL, used to resolve relative asset paths.
func (c *Client) BaseURL() string { return c.base.String() }

// Send issues a request and decodes the JSON response into out.
//
// A non-empty token is attached as a bearer credential. A non-nil body is
// serialized as JSON. A nil out is the empty-response sentinel: any 2xx body
// is accepted without a decode attempt. Outcomes map onto the error
// taxonomy: construction failure -> ErrInvalidURL, network failure ->
// TransportError, non-2xx -> HTTPError, undecodable 2xx -> DecodeError.
func (c *Client) Send(ctx context.Context, method, path string, token string, query url.Values, body any, out any) error {
	target, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Status: resp.StatusCode, Body: data}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	if strings.Contains(path, "://") {
		return "", fmt.Errorf("%w: absolute path %q", ErrInvalidURL, path)
	}
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	// Preserve trailing slashes the backend routes on.
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}
