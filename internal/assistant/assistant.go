// Package assistant turns a prompt into a completion using the configured provider.
package assistant

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"clippy/internal/gemini"
	"clippy/internal/providers"
	"clippy/internal/transport"
)

// DefaultTemperature is used when the caller does not override it
const DefaultTemperature = 0.7

// GenerativeClient is the text-generation surface of a managed SDK
type GenerativeClient interface {
	GenerateText(ctx context.Context, model, prompt, systemInstruction string) (string, error)
}

// GenerativeClientFactory builds a GenerativeClient for an API key
type GenerativeClientFactory func(ctx context.Context, apiKey string) (GenerativeClient, error)

// Query describes a single prompt
type Query struct {
	Prompt       string
	Model        string
	APIKey       string
	ProviderKey  string
	SystemPrompt string
	MaxTokens    *int
	Temperature  float64
}

// Assistant dispatches queries to providers
type Assistant struct {
	client *transport.Client
	gemini GenerativeClientFactory
}

// Option is a functional option for configuring an Assistant
type Option func(*Assistant)

// WithTransport sets the HTTP transport client
func WithTransport(client *transport.Client) Option {
	return func(a *Assistant) {
		a.client = client
	}
}

// WithGenerativeClientFactory replaces the Gemini SDK factory
func WithGenerativeClientFactory(factory GenerativeClientFactory) Option {
	return func(a *Assistant) {
		a.gemini = factory
	}
}

// New creates an Assistant
func New(opts ...Option) *Assistant {
	a := &Assistant{
		client: transport.New(),
		gemini: func(ctx context.Context, apiKey string) (GenerativeClient, error) {
			return gemini.NewClient(ctx, apiKey, nil)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DefaultSystemPrompt describes the assistant role and the host platform
func DefaultSystemPrompt() string {
	return fmt.Sprintf(
		"You are Clippy, a helpful command-line assistant. The user is running %s on %s. "+
			"Keep answers concise and prefer commands and code that work on this platform.",
		platformName(runtime.GOOS), runtime.GOARCH)
}

func platformName(goos string) string {
	switch goos {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	default:
		return goos
	}
}

// Ask sends q and returns the completion text
func (a *Assistant) Ask(ctx context.Context, q Query) (string, error) {
	provider, err := providers.Get(q.ProviderKey)
	if err != nil {
		return "", err
	}

	system := q.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt()
	}
	prompt := strings.TrimSpace(q.Prompt)

	// google goes through the SDK rather than the generic HTTP path
	if provider.Name() == providers.Google {
		return a.askGenerative(ctx, q.APIKey, q.Model, prompt, system)
	}

	messages := []providers.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}
	req, err := providers.BuildRequest(q.ProviderKey, q.APIKey, q.Model, messages, q.MaxTokens, q.Temperature)
	if err != nil {
		return "", err
	}

	body, err := a.client.Send(ctx, req)
	if err != nil {
		return "", err
	}
	return provider.ParseResponse(body)
}

func (a *Assistant) askGenerative(ctx context.Context, apiKey, model, prompt, system string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	client, err := a.gemini(ctx, apiKey)
	if err != nil {
		return "", providers.NewError(providers.KindConfig, err.Error(), err)
	}
	text, err := client.GenerateText(ctx, model, prompt, system)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", providers.NewError(providers.KindTimeout,
				fmt.Sprintf("Request timed out after %g seconds.", a.timeout().Seconds()), err)
		}
		return "", providers.NewError(providers.KindAPI, err.Error(), err)
	}
	return text, nil
}

func (a *Assistant) timeout() time.Duration {
	if a.client != nil {
		return a.client.Timeout()
	}
	return transport.DefaultTimeout
}
