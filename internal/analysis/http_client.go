package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

const maxErrorBody = 512

// StatusError reports a non-2xx response from the analysis service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis API error: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("analysis API error: %d %s (%s)", e.Code, http.StatusText(e.Code), e.Body)
}

type httpClient struct {
	base   string
	agent  string
	client *http.Client
}

func (c *httpClient) Endpoint() string {
	return c.base
}

func (c *httpClient) Analyze(ctx context.Context, prompt string) (Result, error) {
	buf, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := c.do(ctx, http.MethodPost, "/analyze", buf, &result); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *httpClient) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &status); err != nil {
		return HealthStatus{}, err
	}
	return status, nil
}

func (c *httpClient) Examples(ctx context.Context) ([]ExamplePrompt, error) {
	var parsed struct {
		Examples []ExamplePrompt `json:"examples"`
	}
	if err := c.do(ctx, http.MethodGet, "/examples", nil, &parsed); err != nil {
		return nil, err
	}
	return parsed.Examples, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.agent)
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: clip(string(bytes.TrimSpace(raw)), maxErrorBody)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func clip(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "…"
}
