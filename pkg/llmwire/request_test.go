package llmwire

import (
	"encoding/json"
	"strings"
	"testing"
)

func header(t *testing.T, headers []Header, name string) string {
	t.Helper()
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

func TestBuildHTTPRequest_OpenAIHello(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderOpenAI}, APIKey: "sk-X", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.Messages = append(client.Messages, Message{Role: "user", Content: "Hello, computer!"})

	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}

	if req.URL != "https://api.openai.com/v1/chat/completions" {
		t.Errorf("URL = %q", req.URL)
	}
	if got := header(t, req.Headers, "Authorization"); got != "Bearer sk-X" {
		t.Errorf("Authorization = %q", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body not valid JSON: %v; body=%s", err, req.Body)
	}
	if decoded["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", decoded["model"])
	}
	if _, ok := decoded["tools"]; ok {
		t.Error("tools key present with no tools configured")
	}
	if _, ok := decoded["seed"]; ok {
		t.Error("seed key present with Seed=0")
	}
	if _, ok := decoded["max_completion_tokens"]; ok {
		t.Error("max_completion_tokens present with MaxTokens=0")
	}
	messages, ok := decoded["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("messages = %v", decoded["messages"])
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "Hello, computer!" {
		t.Errorf("message = %v", msg)
	}
}

func TestBuildHTTPRequest_AnthropicSystemStripping(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderAnthropic}, APIKey: "k", Model: "claude-3-5-sonnet-20241022"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.MaxTokens = 4096
	client.System = "S0"
	client.Messages = append(client.Messages, Message{Role: "system", Content: "S1"})
	client.Messages = append(client.Messages, Message{Role: "user", Content: "hi"})

	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body not valid JSON: %v; body=%s", err, req.Body)
	}
	if decoded["system"] != "S0\nS1" {
		t.Errorf("system = %v", decoded["system"])
	}
	messages := decoded["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("messages = %v", messages)
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "hi" {
		t.Errorf("message = %v", msg)
	}
	if client.System != "S0\nS1" {
		t.Errorf("client.System not updated, got %q", client.System)
	}
}

func TestBuildHTTPRequest_OpenRouterExtras(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderOpenRouter}, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.ProviderOrder = []string{"A", "B"}
	client.Route = RouteFallback
	client.Models = []string{"m1", "m2"}

	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body not valid JSON: %v", err)
	}
	prov, ok := decoded["provider"].(map[string]any)
	if !ok {
		t.Fatalf("provider missing: %v", decoded)
	}
	order := prov["order"].([]any)
	if len(order) != 2 || order[0] != "A" || order[1] != "B" {
		t.Errorf("order = %v", order)
	}
	if decoded["route"] != "fallback" {
		t.Errorf("route = %v", decoded["route"])
	}
	models := decoded["models"].([]any)
	if len(models) != 2 {
		t.Errorf("models = %v", models)
	}
}

func TestBuildHTTPRequest_OpenRouterNoExtras(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderOpenRouter}, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body not valid JSON: %v", err)
	}
	for _, key := range []string{"provider", "route", "models"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("%s present when absent", key)
		}
	}
}

func TestBuildHTTPRequest_NoToolsNoToolChoice(t *testing.T) {
	for _, kind := range []ProviderKind{ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter} {
		client, err := New(Config{Provider: Provider{Kind: kind}, APIKey: "k", Model: "m"})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if kind == ProviderAnthropic {
			client.MaxTokens = 100
		}
		req, err := BuildHTTPRequest(client, DefaultRequestOptions())
		if err != nil {
			t.Fatalf("BuildHTTPRequest(%v): %v", kind, err)
		}
		if strings.Contains(string(req.Body), "tool_choice") {
			t.Errorf("%v: tool_choice present with no tools: %s", kind, req.Body)
		}
	}
}

func TestBuildHTTPRequest_CachedMessageUsesContentBlock(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderAnthropic}, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.MaxTokens = 100
	client.Messages = append(client.Messages, Message{Role: "user", Content: "cache me", Cached: true})

	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}
	if !strings.Contains(string(req.Body), `"cache_control":{"type":"ephemeral"}`) {
		t.Errorf("expected cache_control block, got %s", req.Body)
	}
}

func TestBuildHTTPRequest_CachedToolResultStaysPlainString(t *testing.T) {
	client, err := New(Config{Provider: Provider{Kind: ProviderOpenRouter}, APIKey: "k", Model: "m"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	client.Messages = append(client.Messages, Message{Role: "tool", Content: "result", ToolCallID: "call_1", Cached: true})

	req, err := BuildHTTPRequest(client, DefaultRequestOptions())
	if err != nil {
		t.Fatalf("BuildHTTPRequest: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(req.Body, &decoded); err != nil {
		t.Fatalf("body not valid JSON: %v", err)
	}
	messages := decoded["messages"].([]any)
	msg := messages[0].(map[string]any)
	if _, isString := msg["content"].(string); !isString {
		t.Errorf("expected plain string content for cached tool result, got %T", msg["content"])
	}
}
