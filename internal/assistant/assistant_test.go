package assistant

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"clippy/internal/providers"
	"clippy/internal/transport"
)

// redirectTransport sends every request to target and records the requested host in a header
type redirectTransport struct {
	target *url.URL
}

func (rt *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Original-Host", req.URL.Host)
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func newTestAssistant(t *testing.T, handler http.HandlerFunc, opts ...Option) *Assistant {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, _ := url.Parse(server.URL)
	client := transport.New(transport.WithHTTPClient(&http.Client{Transport: &redirectTransport{target: target}}))
	return New(append([]Option{WithTransport(client)}, opts...)...)
}

func TestAskOpenAI(t *testing.T) {
	var host, body string
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		host = r.Header.Get("X-Original-Host")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.Write([]byte(`{"choices":[{"message":{"content":"use ls -la"}}]}`))
	})

	got, err := a.Ask(context.Background(), Query{
		Prompt:      "  list hidden files \n",
		Model:       "gpt-4o",
		APIKey:      "sk-test",
		ProviderKey: providers.OpenAI,
		Temperature: DefaultTemperature,
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "use ls -la" {
		t.Errorf("Ask() = %q", got)
	}
	if host != "api.openai.com" {
		t.Errorf("request host = %q, want api.openai.com", host)
	}
	msgs := gjson.Get(body, "messages").Array()
	if len(msgs) != 2 {
		t.Fatalf("messages = %v", msgs)
	}
	if msgs[0].Get("role").String() != "system" || msgs[0].Get("content").String() != DefaultSystemPrompt() {
		t.Errorf("system message = %s", msgs[0].Raw)
	}
	if msgs[1].Get("content").String() != "list hidden files" {
		t.Errorf("user content = %q, want trimmed prompt", msgs[1].Get("content").String())
	}
}

func TestAskAnthropic(t *testing.T) {
	var system string
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		system = gjson.GetBytes(b, "system").String()
		w.Write([]byte(`{"content":[{"type":"text","text":"hi"}]}`))
	})

	got, err := a.Ask(context.Background(), Query{
		Prompt:       "hello",
		Model:        "claude-3-haiku",
		APIKey:       "ak",
		ProviderKey:  providers.Anthropic,
		SystemPrompt: "custom",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "hi" {
		t.Errorf("Ask() = %q", got)
	}
	if system != "custom" {
		t.Errorf("system = %q, want %q", system, "custom")
	}
}

func TestAskAPIError(t *testing.T) {
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := a.Ask(context.Background(), Query{Prompt: "x", Model: "gpt-4o", APIKey: "k", ProviderKey: providers.OpenAI})
	if !providers.IsKind(err, providers.KindAPI) || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("Ask() error = %v, want API error carrying message", err)
	}
}

func TestAskUnknownProvider(t *testing.T) {
	_, err := New().Ask(context.Background(), Query{Prompt: "x", Model: "m", ProviderKey: "cohere"})
	if !providers.IsKind(err, providers.KindConfig) {
		t.Errorf("Ask() error = %v, want config error", err)
	}
}

type fakeGenerative struct {
	model, prompt, system string
	text                  string
	err                   error
}

func (f *fakeGenerative) GenerateText(_ context.Context, model, prompt, system string) (string, error) {
	f.model, f.prompt, f.system = model, prompt, system
	return f.text, f.err
}

func TestAskGoogleUsesGenerativeClient(t *testing.T) {
	fake := &fakeGenerative{text: "gemini says hi"}
	var gotKey string
	called := false
	a := newTestAssistant(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, WithGenerativeClientFactory(func(_ context.Context, apiKey string) (GenerativeClient, error) {
		gotKey = apiKey
		return fake, nil
	}))

	got, err := a.Ask(context.Background(), Query{
		Prompt:       "hello",
		Model:        "gemini-1.5-flash",
		APIKey:       "g-key",
		ProviderKey:  providers.Google,
		SystemPrompt: "sys",
	})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "gemini says hi" {
		t.Errorf("Ask() = %q", got)
	}
	if called {
		t.Error("google requests must not go through the HTTP transport")
	}
	if gotKey != "g-key" || fake.model != "gemini-1.5-flash" || fake.prompt != "hello" || fake.system != "sys" {
		t.Errorf("generative client got key=%q model=%q prompt=%q system=%q", gotKey, fake.model, fake.prompt, fake.system)
	}
}

func TestAskGoogleErrors(t *testing.T) {
	t.Run("factory failure", func(t *testing.T) {
		a := New(WithGenerativeClientFactory(func(context.Context, string) (GenerativeClient, error) {
			return nil, errors.New("no key")
		}))
		_, err := a.Ask(context.Background(), Query{Prompt: "x", Model: "gemini-pro", ProviderKey: providers.Google})
		if !providers.IsKind(err, providers.KindConfig) {
			t.Errorf("error = %v, want config error", err)
		}
	})

	t.Run("generation failure", func(t *testing.T) {
		a := New(WithGenerativeClientFactory(func(context.Context, string) (GenerativeClient, error) {
			return &fakeGenerative{err: errors.New("quota exceeded")}, nil
		}))
		_, err := a.Ask(context.Background(), Query{Prompt: "x", Model: "gemini-pro", ProviderKey: providers.Google})
		if !providers.IsKind(err, providers.KindAPI) || !strings.Contains(err.Error(), "quota exceeded") {
			t.Errorf("error = %v, want API error", err)
		}
	})
}

func TestDefaultSystemPromptMentionsPlatform(t *testing.T) {
	if !strings.Contains(DefaultSystemPrompt(), "running") {
		t.Errorf("DefaultSystemPrompt() = %q", DefaultSystemPrompt())
	}
	if platformName("darwin") != "macOS" || platformName("plan9") != "plan9" {
		t.Error("platformName mapping is wrong")
	}
}
