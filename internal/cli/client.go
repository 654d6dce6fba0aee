package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	v1 "github.com/powerguard/autonomy-planner/internal/handlers/v1"
)

// Client talks to the v1 API of a powerguard server.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// APIError is a non 2xx reply of the server.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID == "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d: %s (request %s)", e.StatusCode, e.Message, e.RequestID)
}

func (c *Client) ListSources(ctx context.Context, group, query string) ([]v1.CatalogSource, error) {
	var out []v1.CatalogSource
	params := url.Values{}
	setIfNotEmpty(params, "group", group)
	setIfNotEmpty(params, "q", query)
	return out, c.do(ctx, http.MethodGet, "/api/v1/catalog/sources", params, nil, &out)
}

func (c *Client) ListDevices(ctx context.Context, category, query string) ([]v1.CatalogDevice, error) {
	var out []v1.CatalogDevice
	params := url.Values{}
	setIfNotEmpty(params, "category", category)
	setIfNotEmpty(params, "q", query)
	return out, c.do(ctx, http.MethodGet, "/api/v1/catalog/devices", params, nil, &out)
}

func (c *Client) Calculate(ctx context.Context, req v1.CalculationRequest) (*v1.CalculationReply, error) {
	out := new(v1.CalculationReply)
	if err := c.do(ctx, http.MethodPost, "/api/v1/calculations", nil, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var reply v1.ErrorReply
		if err := json.NewDecoder(resp.Body).Decode(&reply); err == nil && reply.Message != "" {
			apiErr.Message = reply.Message
			apiErr.RequestID = reply.RequestID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
