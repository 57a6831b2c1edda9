// Package armclient provides a client for the Azure Management API
// surfaces palctl needs: tenant enumeration and the management-partner
// (Partner Admin Link) resource. Calls are short-lived and stateless;
// every request carries its own bearer token.
package armclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	tenantsAPIVersion  = "2020-01-01"
	partnersAPIVersion = "2018-02-01"

	partnersPath = "/providers/Microsoft.ManagementPartner/partners"
)

// Client is the Azure Management API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given management endpoint, for example
// https://management.azure.com.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs a request against an absolute or endpoint-relative URL and
// decodes the JSON response. Non-2xx responses are returned as *APIError.
func (c *Client) do(ctx context.Context, method, url, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-ms-client-request-id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, url, token string, result any) error {
	return c.do(ctx, http.MethodGet, url, token, nil, result)
}

func (c *Client) put(ctx context.Context, url, token string, body, result any) error {
	return c.do(ctx, http.MethodPut, url, token, body, result)
}

func (c *Client) delete(ctx context.Context, url, token string) error {
	return c.do(ctx, http.MethodDelete, url, token, nil, nil)
}
