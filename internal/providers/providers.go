package providers

import (
	"fmt"
	"sort"
	"strings"
)

// Provider keys
const (
	OpenAI    = "openai"
	Google    = "google"
	Anthropic = "anthropic"

	// DefaultProvider is used when a model name matches no known prefix
	DefaultProvider = OpenAI
)

// Message is a single chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines how a completion request is shaped for one provider family
type Provider interface {
	// Name returns the provider key (e.g., "openai", "anthropic")
	Name() string
	// BaseURL returns the endpoint requests are posted to
	BaseURL() string
	// Headers returns the HTTP headers carrying the API key
	Headers(apiKey string) map[string]string
	// Payload builds the JSON request body
	Payload(model string, messages []Message, maxTokens *int, temperature float64) ([]byte, error)
	// ParseResponse extracts the completion text from a decoded response body
	ParseResponse(body []byte) (string, error)
}

// Request is a fully assembled provider request
type Request struct {
	Provider string
	URL      string
	Headers  map[string]string
	Body     []byte
}

// registry stores all registered providers
var registry = make(map[string]Provider)

// Register registers a provider under the given key
func Register(key string, provider Provider) {
	registry[key] = provider
}

// Get returns a provider by key
func Get(key string) (Provider, error) {
	provider, ok := registry[key]
	if !ok {
		return nil, newError(KindConfig, fmt.Sprintf("Unsupported provider type '%s'.", key), nil)
	}
	return provider, nil
}

// List returns all registered provider keys in sorted order
func List() []string {
	list := make([]string, 0, len(registry))
	for key := range registry {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}

// modelPrefixes is checked in order; first match wins
var modelPrefixes = []struct {
	prefix   string
	provider string
}{
	{"gpt-", OpenAI},
	{"gemini-", Google},
	{"claude-", Anthropic},
}

// ResolveKey infers the provider key from a model name.
// known is false when no prefix matched and DefaultProvider was returned.
func ResolveKey(modelName string) (key string, known bool) {
	for _, p := range modelPrefixes {
		if strings.HasPrefix(modelName, p.prefix) {
			return p.provider, true
		}
	}
	return DefaultProvider, false
}

// Resolve is ResolveKey with the fallback reported through warn
func Resolve(modelName string, warn func(string)) string {
	key, known := ResolveKey(modelName)
	if !known && warn != nil {
		warn(fmt.Sprintf("Unknown model prefix for '%s'. Falling back to provider type: '%s'.", modelName, key))
	}
	return key
}

// BuildRequest assembles URL, headers and body for the given provider key
func BuildRequest(providerKey, apiKey, model string, messages []Message, maxTokens *int, temperature float64) (*Request, error) {
	provider, err := Get(providerKey)
	if err != nil {
		return nil, err
	}

	body, err := provider.Payload(model, messages, maxTokens, temperature)
	if err != nil {
		return nil, err
	}

	return &Request{
		Provider: providerKey,
		URL:      provider.BaseURL(),
		Headers:  provider.Headers(apiKey),
		Body:     body,
	}, nil
}

func init() {
	Register(OpenAI, &OpenAIProvider{Key: OpenAI, URL: "https://api.openai.com/v1/chat/completions"})
	// google is served through the generative SDK; the profile keeps the
	// OpenAI-shaped rules for anything that still goes through BuildRequest.
	Register(Google, &OpenAIProvider{Key: Google, URL: "https://generativelanguage.googleapis.com/v1beta/models"})
	Register(Anthropic, &AnthropicProvider{URL: "https://api.anthropic.com/v1/messages"})
}
