/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package catalog

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wynlabs/taxo/pkg/logger"
)

// HTTPClient is the minimal HTTP surface used by the catalog client;
// injectable for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the catalog service's REST API. It implements both Source
// (GET /items) and Updater (PUT /items/{id}/tags). Pagination is handled here;
// callers receive the fully materialized item list.
type Client struct {
	baseURL string
	token   string
	http    HTTPClient
}

// NewClient creates a catalog API client with TLS enforcement and timeout.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
	}
}

// NewClientWithHTTP creates a client with an injectable HTTP implementation.
func NewClientWithHTTP(baseURL, token string, httpClient HTTPClient) *Client {
	return &Client{baseURL: baseURL, token: token, http: httpClient}
}

type itemPage struct {
	Items      []Item `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Fetch implements Source, following pagination cursors until exhausted.
func (c *Client) Fetch(ctx context.Context, vendor string) ([]Item, error) {
	var items []Item
	cursor := ""
	for {
		page, err := c.fetchPage(ctx, vendor, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextCursor == "" {
			return items, nil
		}
		cursor = page.NextCursor
	}
}

func (c *Client) fetchPage(ctx context.Context, vendor, cursor string) (*itemPage, error) {
	endpoint := fmt.Sprintf("%s/items", c.baseURL)
	query := url.Values{}
	if vendor != "" {
		query.Set("vendor", vendor)
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var page itemPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode item page: %w", err)
	}
	return &page, nil
}

// ApplyTagUpdate implements Updater.
func (c *Client) ApplyTagUpdate(ctx context.Context, itemID, newTagString string) error {
	endpoint := fmt.Sprintf("%s/items/%s/tags", c.baseURL, url.PathEscape(itemID))
	payload, err := json.Marshal(map[string]string{"tags": newTagString})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, endpoint, payload)
	return err
}

// do executes a request with one retry on 5xx responses.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			logger.Debug(fmt.Sprintf("retrying %s %s after server error", method, endpoint))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
		if err != nil {
			return nil, err
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 32*1024*1024))
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("catalog API %s %s: server error %d", method, endpoint, resp.StatusCode)
			continue
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("catalog API %s %s: status %d", method, endpoint, resp.StatusCode)
		case readErr != nil:
			return nil, fmt.Errorf("failed to read response: %w", readErr)
		}
		return respBody, nil
	}
	return nil, lastErr
}
