// Package upstream provides the HTTP client for the Casaora core backend
// API. Persistence, auth and the source-of-truth data model all live
// upstream; this service only reads raw records and forwards validated
// mutations.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
)

// Client talks to the core backend over REST.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// New creates a core backend client.
func New(cfg config.UpstreamConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetUpstreamBaseURL(), "/"),
		token:      cfg.GetUpstreamServiceToken(),
		httpClient: &http.Client{Timeout: cfg.GetUpstreamTimeout()},
		log:        log,
	}
}

// Ping verifies the core backend is reachable. A 404 on the health path
// still proves connectivity, only transport and auth failures count.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// listEnvelope matches the {"data": [...]} wrapper some endpoints use.
type listEnvelope struct {
	Data []map[string]any `json:"data"`
}

// FetchList GETs a collection endpoint. Both bare arrays and data
// envelopes are accepted; legacy endpoints still return the former.
func (c *Client) FetchList(ctx context.Context, path string, query url.Values) ([]map[string]any, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	body, err := c.do(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []map[string]any
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode list %s: %w", path, err)
		}
		return records, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode list %s: %w", path, err)
	}
	return envelope.Data, nil
}

// FetchOne GETs a single resource.
func (c *Client) FetchOne(ctx context.Context, path string) (map[string]any, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if data, ok := record["data"].(map[string]any); ok {
		return data, nil
	}
	return record, nil
}

// PostJSON POSTs a JSON body and optionally decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, payload, out)
}

// PatchJSON PATCHes a JSON body and optionally decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, payload, out)
}

// PutJSON PUTs a JSON body and optionally decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, path string, payload, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, payload, out)
}

// DeleteJSON issues a DELETE against a resource path.
func (c *Client) DeleteJSON(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, c.baseURL+path, nil)
	return err
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	body, err := c.do(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(method+" "+reqURL, err)
		return nil, fmt.Errorf("core api request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		c.log.Error("core api rejected credentials", "status", resp.StatusCode, "url", reqURL)
		return nil, fmt.Errorf("core api auth failed: status %d", resp.StatusCode)
	default:
		c.log.Error("core api error", "status", resp.StatusCode, "url", reqURL, "body", strings.TrimSpace(string(data)))
		return nil, fmt.Errorf("core api error: status %d", resp.StatusCode)
	}
}
