// Package gemini wraps the Google generative SDK behind a small text-only interface.
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Client generates text with a Gemini model
type Client struct {
	sdk *genai.Client
}

// NewClient creates a Gemini API client for apiKey.
// httpClient may be nil.
func NewClient(ctx context.Context, apiKey string, httpClient *http.Client) (*Client, error) {
	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{sdk: sdk}, nil
}

// GenerateText sends prompt with an optional system instruction and returns the response text
func (c *Client) GenerateText(ctx context.Context, model, prompt, systemInstruction string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := c.sdk.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	return resp.Text(), nil
}
