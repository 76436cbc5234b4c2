package providers

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	anthropicVersion = "2023-06-01"
	// DefaultAnthropicMaxTokens is sent when the caller leaves max tokens unset
	DefaultAnthropicMaxTokens = 1024
	placeholderContent        = "..."
)

// AnthropicProvider speaks the messages API request and response shape
type AnthropicProvider struct {
	URL string
}

func (p *AnthropicProvider) Name() string {
	return Anthropic
}

func (p *AnthropicProvider) BaseURL() string {
	return p.URL
}

func (p *AnthropicProvider) Headers(apiKey string) map[string]string {
	return map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": anthropicVersion,
		"content-type":      "application/json",
	}
}

// ShapeMessages converts a generic conversation into what the messages API
// accepts: the first system message is returned separately, only user and
// assistant turns are kept, the list never starts with assistant and roles
// alternate (later entries of a same-role run are dropped).
func ShapeMessages(messages []Message) (system string, shaped []Message, err error) {
	for _, m := range messages {
		if m.Role == "system" {
			system = m.Content
			break
		}
	}

	shaped = []Message{}
	lastRole := ""
	for _, m := range messages {
		if m.Role != "user" && m.Role != "assistant" {
			continue
		}
		if len(shaped) == 0 && m.Role == "assistant" {
			continue
		}
		if m.Role == lastRole {
			continue
		}
		shaped = append(shaped, m)
		lastRole = m.Role
	}

	if len(shaped) == 0 {
		if system == "" {
			return "", nil, newError(KindValidation, "Cannot send request to Anthropic with no valid messages.", nil)
		}
		shaped = append(shaped, Message{Role: "user", Content: placeholderContent})
	}
	return system, shaped, nil
}

// Payload builds {model, max_tokens, messages, system?, temperature}
func (p *AnthropicProvider) Payload(model string, messages []Message, maxTokens *int, temperature float64) ([]byte, error) {
	system, shaped, err := ShapeMessages(messages)
	if err != nil {
		return nil, err
	}

	tokens := DefaultAnthropicMaxTokens
	if maxTokens != nil && *maxTokens != 0 {
		tokens = *maxTokens
	}

	body := []byte(`{}`)
	if body, err = sjson.SetBytes(body, "model", model); err != nil {
		return nil, fmt.Errorf("failed to set model: %w", err)
	}
	if body, err = sjson.SetBytes(body, "max_tokens", tokens); err != nil {
		return nil, fmt.Errorf("failed to set max_tokens: %w", err)
	}
	if body, err = sjson.SetBytes(body, "messages", shaped); err != nil {
		return nil, fmt.Errorf("failed to set messages: %w", err)
	}
	if system != "" {
		if body, err = sjson.SetBytes(body, "system", system); err != nil {
			return nil, fmt.Errorf("failed to set system: %w", err)
		}
	}
	if body, err = sjson.SetBytes(body, "temperature", temperature); err != nil {
		return nil, fmt.Errorf("failed to set temperature: %w", err)
	}
	return body, nil
}

// ParseResponse concatenates every text block of the response content.
// A response without text blocks yields an empty string.
func (p *AnthropicProvider) ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", newError(KindParse, "response is not valid JSON", nil)
	}
	res := gjson.ParseBytes(body)

	if res.Get("type").String() == "error" {
		msg := res.Get("error.message").String()
		if msg == "" {
			msg = "Unknown Anthropic Error"
		}
		return "", newError(KindAPI, msg, nil)
	}

	var sb strings.Builder
	res.Get("content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() == "text" {
			sb.WriteString(block.Get("text").String())
		}
		return true
	})
	return sb.String(), nil
}
