package analysis

import (
	"context"
	"net/http"
	"strings"
)

// DefaultBaseURL is the local development address of the analysis service.
const DefaultBaseURL = "http://localhost:8000"

const defaultUserAgent = "promptlens"

// Config describes how to reach the analysis service.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// Client talks to the external analysis service.
type Client interface {
	Analyze(ctx context.Context, prompt string) (Result, error)
	Health(ctx context.Context) (HealthStatus, error)
	Examples(ctx context.Context) ([]ExamplePrompt, error)
	Endpoint() string
}

// Suggestion is one actionable fix proposed by the service.
type Suggestion struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Example    string `json:"example,omitempty"`
}

// HasExample reports whether the suggestion carries an improved example.
func (s Suggestion) HasExample() bool {
	return strings.TrimSpace(s.Example) != ""
}

// Result is the critique returned for a single prompt.
type Result struct {
	Score       int          `json:"score"`
	Technique   string       `json:"technique"`
	Strengths   []string     `json:"strengths"`
	Issues      []string     `json:"issues"`
	Suggestions []Suggestion `json:"suggestions"`
}

// HealthStatus mirrors the service's /health payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Redis   string `json:"redis"`
	Claude  string `json:"claude"`
	Version string `json:"version"`
}

// Healthy reports whether the service declared itself healthy.
func (h HealthStatus) Healthy() bool {
	return strings.EqualFold(h.Status, "healthy")
}

// ExamplePrompt is a canned prompt published by the service.
type ExamplePrompt struct {
	Title         string `json:"title"`
	Prompt        string `json:"prompt"`
	ExpectedScore int    `json:"expected_score"`
}

// New builds an HTTP-backed Client.
func New(cfg Config) Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	agent := cfg.UserAgent
	if agent == "" {
		agent = defaultUserAgent
	}
	return &httpClient{
		base:   base,
		agent:  agent,
		client: pickHTTPClient(cfg.HTTPClient),
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// No client-side timeout: cancellation is left to the caller's context.
	return &http.Client{}
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that is forwarded as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
