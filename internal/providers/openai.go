package providers

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// OpenAIProvider speaks the chat-completions request and response shape
type OpenAIProvider struct {
	Key string
	URL string
}

func (p *OpenAIProvider) Name() string {
	return p.Key
}

func (p *OpenAIProvider) BaseURL() string {
	return p.URL
}

func (p *OpenAIProvider) Headers(apiKey string) map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + apiKey,
	}
}

// Payload builds {model, messages, temperature, max_tokens?}
func (p *OpenAIProvider) Payload(model string, messages []Message, maxTokens *int, temperature float64) ([]byte, error) {
	if messages == nil {
		messages = []Message{}
	}

	body := []byte(`{}`)
	var err error
	if body, err = sjson.SetBytes(body, "model", model); err != nil {
		return nil, fmt.Errorf("failed to set model: %w", err)
	}
	if body, err = sjson.SetBytes(body, "messages", messages); err != nil {
		return nil, fmt.Errorf("failed to set messages: %w", err)
	}
	if body, err = sjson.SetBytes(body, "temperature", temperature); err != nil {
		return nil, fmt.Errorf("failed to set temperature: %w", err)
	}
	if maxTokens != nil {
		if body, err = sjson.SetBytes(body, "max_tokens", *maxTokens); err != nil {
			return nil, fmt.Errorf("failed to set max_tokens: %w", err)
		}
	}
	return body, nil
}

// ParseResponse reads choices[0].message.content, falling back to choices[0].text.
// An "error" member becomes a KindAPI error.
func (p *OpenAIProvider) ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", newError(KindParse, "response is not valid JSON", nil)
	}
	res := gjson.ParseBytes(body)

	if apiErr := res.Get("error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		msg := apiErr.String()
		if apiErr.IsObject() {
			msg = apiErr.Get("message").String()
			if msg == "" {
				msg = "Unknown OpenAI API Error"
			}
		}
		return "", newError(KindAPI, msg, nil)
	}

	choice := res.Get("choices.0")
	if !choice.Exists() {
		return "", newError(KindParse, fmt.Sprintf("unexpected OpenAI response structure: %s", truncate(res.Raw, 200)), nil)
	}
	if content := choice.Get("message.content"); content.Exists() && content.Type != gjson.Null {
		return content.String(), nil
	}
	if text := choice.Get("text"); text.Exists() && text.Type != gjson.Null {
		return text.String(), nil
	}
	return "", newError(KindParse, fmt.Sprintf("no content in OpenAI choice: %s", truncate(choice.Raw, 200)), nil)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
