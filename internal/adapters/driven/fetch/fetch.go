// Package fetch downloads remote input documents over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fileforge/convertd/internal/core/ports/driven"
	"github.com/fileforge/convertd/internal/logger"
)

// userAgent identifies download requests made on behalf of a tool call.
const userAgent = "convertd/1.0 (+https://github.com/fileforge/convertd)"

// maxBodyBytes caps downloads so a misbehaving server cannot exhaust
// memory. 256 MiB covers any document the converters handle.
const maxBodyBytes = 256 << 20

// Ensure Client implements the interface.
var _ driven.Fetcher = (*Client)(nil)

// Client fetches documents with a single HTTP GET. Failed downloads
// are reported, not retried; the caller surfaces the error to the user
// who can simply re-issue the request.
type Client struct {
	httpClient *http.Client
	maxBody    int64
}

// New creates a Client with a 60 second overall timeout.
func New() *Client {
	return NewWithHTTPClient(&http.Client{Timeout: 60 * time.Second})
}

// NewWithHTTPClient creates a Client around the given http.Client.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc, maxBody: maxBodyBytes}
}

// Fetch downloads rawURL and returns the response body. Only http and
// https URLs are accepted.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	logger.Debug("downloading %s", rawURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", rawURL, resp.Status)
	}

	// Read one byte past the cap so an oversized body is detected
	// instead of silently truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("downloading %s: body exceeds %d bytes", rawURL, c.maxBody)
	}
	return body, nil
}
