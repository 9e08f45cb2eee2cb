// Package gemini implements expand.Generator on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/genai"

	"todo/internal/config"
	"todo/internal/expand"
	"todo/internal/logging"
)

const (
	// ResponseMimeType asks the service for a JSON body.
	ResponseMimeType = "application/json"

	// apiKeyHeader carries the API key on Gemini API requests.
	apiKeyHeader = "x-goog-api-key"

	// tokenPlaceholderKey satisfies NewClient's API key requirement on the
	// access token path. It is stripped from every request by keyStripper.
	tokenPlaceholderKey = "oauth2-access-token"
)

// Client implements expand.Generator.
type Client struct {
	models *genai.Models
	log    *log.Logger
}

// New creates a client from the configured credential.
// An API key takes precedence over an access token.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Client, error) {
	if !cfg.HasCredential() {
		return nil, errors.New("no generation credential configured")
	}

	cc := &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.Endpoint},
	}
	if cfg.APIKey == "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		cc.APIKey = tokenPlaceholderKey
		cc.HTTPClient = &http.Client{
			Transport: &oauth2.Transport{Source: ts, Base: keyStripper{base: http.DefaultTransport}},
		}
	}

	return newClient(ctx, cc, logger)
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: endpoint},
	}, nil)
}

func newClient(ctx context.Context, cc *genai.ClientConfig, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	return &Client{models: c.Models, log: logger}, nil
}

// Generate sends one generateContent request constrained to the task schema
// and returns the text of the first candidate. No timeout is applied beyond ctx.
func (c *Client) Generate(ctx context.Context, req expand.Request) (string, error) {
	resp, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: ResponseMimeType,
		ResponseSchema:   TasksSchema(),
	})
	if err != nil {
		return "", wrapError(err)
	}
	c.log.Debug("generation finished", "candidates", len(resp.Candidates))

	return resp.Text(), nil
}

// TasksSchema is expand.ResponseSchema in the service's schema vocabulary.
func TasksSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"tasks": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"tasks"},
	}
}

// keyStripper drops the placeholder API key so only the bearer token
// authenticates the request.
type keyStripper struct {
	base http.RoundTripper
}

func (k keyStripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(apiKeyHeader) == tokenPlaceholderKey {
		req = req.Clone(req.Context())
		req.Header.Del(apiKeyHeader)
		q := req.URL.Query()
		if q.Get("key") == tokenPlaceholderKey {
			q.Del("key")
			req.URL.RawQuery = q.Encode()
		}
	}
	return k.base.RoundTrip(req)
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	code, msg, ok := apiError(err)
	if !ok {
		return err
	}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("credential rejected (%d): %s", code, msg)
	case code == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "api key"):
		// Invalid keys are reported as 400 INVALID_ARGUMENT.
		return fmt.Errorf("credential rejected (%d): %s", code, msg)
	case code == http.StatusNotFound:
		return fmt.Errorf("model not found: %s", msg)
	}
	return fmt.Errorf("generation service error (%d): %s", code, msg)
}

func apiError(err error) (code int, msg string, ok bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}
