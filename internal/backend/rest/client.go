// Package rest implements the data backend over a PostgREST-style HTTPS
// table API (/rest/v1/<table>) authenticated with a public access key.
package rest

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
	"time"

	"matchboard/internal/config"
	"matchboard/internal/models"
)

const (
	apiPrefix        = "/rest/v1/"
	maxResponseBytes = 2 * 1024 * 1024
	defaultTimeout   = 10 * time.Second
)

// Client talks to the hosted table API.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

// RequestError describes a failed table API call.
type RequestError struct {
	Op         string
	Table      string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	op := e.Op
	if e.Table != "" {
		op = e.Op + " " + e.Table
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", op, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", op, e.StatusCode)
	default:
		return op
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// apiError is the error body returned by the table API.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewClient validates the base URL and key and returns a ready client.
// Empty or placeholder credentials yield models.ErrNotConfigured.
func NewClient(baseURL, key string, timeout time.Duration) (*Client, error) {
	cfg := config.Config{BackendURL: baseURL, BackendKey: key}
	if !cfg.BackendConfigured() {
		return nil, &RequestError{Op: "create client", Err: models.ErrNotConfigured}
	}

	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, &RequestError{Op: "parse backend url", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &RequestError{Op: "validate backend url", Err: fmt.Errorf("invalid backend url: %s", trimmed)}
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    trimmed,
		key:        strings.TrimSpace(key),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Select runs GET /rest/v1/<table>?<query> and decodes the JSON array into out.
func (c *Client) Select(ctx context.Context, table string, q *Query, out any) error {
	body, status, err := c.do(ctx, http.MethodGet, table, q, nil)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RequestError{Op: "decode", Table: table, StatusCode: status, Err: err}
	}
	return nil
}

// Insert runs POST /rest/v1/<table> with row as the JSON body.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	_, _, err := c.do(ctx, http.MethodPost, table, nil, row)
	return err
}

// Update runs PATCH /rest/v1/<table>?<filters> with patch as the JSON body.
func (c *Client) Update(ctx context.Context, table string, q *Query, patch any) error {
	if q == nil || !q.HasFilter() {
		return &RequestError{Op: "update", Table: table, Err: errors.New("refusing unfiltered update")}
	}
	_, _, err := c.do(ctx, http.MethodPatch, table, q, patch)
	return err
}

func (c *Client) do(ctx context.Context, method, table string, q *Query, payload any) ([]byte, int, error) {
	if c == nil || c.httpClient == nil {
		return nil, 0, &RequestError{Op: strings.ToLower(method), Table: table, Err: errors.New("client is not initialized")}
	}

	fullURL := c.baseURL + apiPrefix + url.PathEscape(table)
	if q != nil {
		if encoded := q.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, &RequestError{Op: "encode", Table: table, Err: err}
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, 0, &RequestError{Op: "create request", Table: table, Err: err}
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &RequestError{Op: strings.ToLower(method), Table: table, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, &RequestError{Op: "read response", Table: table, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp.StatusCode, &RequestError{
			Op:         strings.ToLower(method),
			Table:      table,
			StatusCode: resp.StatusCode,
			Err:        errors.New(errorMessage(body, resp.StatusCode)),
		}
	}

	return body, resp.StatusCode, nil
}

func errorMessage(body []byte, status int) string {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		if apiErr.Code != "" {
			return apiErr.Code + ": " + apiErr.Message
		}
		return apiErr.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
