package llmwire

import (
	"encoding/json"
	"strings"
)

// RequestOptions configures one BuildHTTPRequest call. ToolChoice is only
// meaningful when the client has tools configured; it is otherwise ignored.
type RequestOptions struct {
	ToolChoice ToolChoice
}

// DefaultRequestOptions returns options with ToolChoiceAuto, the policy used
// whenever a caller doesn't need to force a specific tool or forbid tool use.
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{ToolChoice: ToolChoice{Kind: ToolChoiceAuto}}
}

// openAIBase is the restricted field set shared by OpenAI and any
// OpenAI-compliant endpoint. Messages is always marshaled as an empty array;
// the real messages are spliced in afterward by injectMessages.
type openAIBase struct {
	Model             string    `json:"model"`
	Messages          []Message `json:"messages"`
	Temperature       float64   `json:"temperature"`
	TopP              float64   `json:"top_p"`
	FrequencyPenalty  float64   `json:"frequency_penalty"`
	PresencePenalty   float64   `json:"presence_penalty"`
	Seed              int64     `json:"seed,omitempty"`
	MaxTokens         int       `json:"max_completion_tokens,omitempty"`
}

type anthropicBase struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Temperature float64 `json:"temperature"`
	TopP      float64   `json:"top_p"`
	TopK      int       `json:"top_k,omitempty"`
	Seed      int64     `json:"seed,omitempty"`
	MaxTokens int       `json:"max_tokens,omitempty"`
	System    string    `json:"system,omitempty"`
}

type openRouterProvider struct {
	Order []string `json:"order,omitempty"`
}

type openRouterBase struct {
	Model             string              `json:"model"`
	Messages          []Message           `json:"messages"`
	Temperature       float64             `json:"temperature"`
	TopP              float64             `json:"top_p"`
	FrequencyPenalty  float64             `json:"frequency_penalty"`
	PresencePenalty   float64             `json:"presence_penalty"`
	Seed              int64               `json:"seed,omitempty"`
	MaxTokens         int                 `json:"max_completion_tokens,omitempty"`
	TopA              float64             `json:"top_a,omitempty"`
	TopK              int                 `json:"top_k,omitempty"`
	RepetitionPenalty float64             `json:"repetition_penalty,omitempty"`
	MinP              float64             `json:"min_p,omitempty"`
	Provider          *openRouterProvider `json:"provider,omitempty"`
	Models            []string            `json:"models,omitempty"`
	Route             string              `json:"route,omitempty"`
}

// BuildHTTPRequest translates client and its accumulated messages/tools into
// the provider-specific wire request. It does not mutate client except, on
// Anthropic, to fold pending system-role messages into client.System (see
// foldAnthropicSystem) — the same bookkeeping convo.AddSystem performs when
// called directly.
func BuildHTTPRequest(client *Client, opts RequestOptions) (*RequestDescription, error) {
	messages := client.Messages
	system := client.System

	if client.Provider.Kind == ProviderAnthropic {
		system, messages = foldAnthropicSystem(system, client.Messages)
	}

	base, err := buildBaseBody(client, system)
	if err != nil {
		return nil, err
	}

	body, err := injectMessages(base, messages, client.Provider.Kind)
	if err != nil {
		return nil, err
	}

	if len(client.Tools) > 0 {
		body, err = injectTools(body, client.Tools, opts.ToolChoice, client.Provider.Kind)
		if err != nil {
			return nil, err
		}
	}

	client.System = system

	return &RequestDescription{
		Method:  "POST",
		URL:     client.Provider.endpoint(),
		Headers: authHeaders(client),
		Body:    body,
		Timeout: client.Timeout,
	}, nil
}

func authHeaders(client *Client) []Header {
	headers := []Header{{Name: "content-type", Value: "application/json"}}
	switch client.Provider.Kind {
	case ProviderAnthropic:
		headers = append(headers,
			Header{Name: "x-api-key", Value: client.APIKey},
			Header{Name: "anthropic-version", Value: "2023-06-01"},
		)
	default:
		headers = append(headers, Header{Name: "Authorization", Value: "Bearer " + client.APIKey})
	}
	return headers
}

func buildBaseBody(client *Client, system string) ([]byte, error) {
	switch client.Provider.Kind {
	case ProviderAnthropic:
		return json.Marshal(anthropicBase{
			Model:       client.Model,
			Messages:    []Message{},
			Temperature: client.Temperature,
			TopP:        client.TopP,
			TopK:        client.TopK,
			Seed:        client.Seed,
			MaxTokens:   client.MaxTokens,
			System:      system,
		})
	case ProviderOpenRouter:
		var prov *openRouterProvider
		if len(client.ProviderOrder) > 0 {
			prov = &openRouterProvider{Order: client.ProviderOrder}
		}
		return json.Marshal(openRouterBase{
			Model:             client.Model,
			Messages:          []Message{},
			Temperature:       client.Temperature,
			TopP:              client.TopP,
			FrequencyPenalty:  client.FrequencyPenalty,
			PresencePenalty:   client.PresencePenalty,
			Seed:              client.Seed,
			MaxTokens:         client.MaxTokens,
			TopA:              client.TopA,
			TopK:              client.TopK,
			RepetitionPenalty: client.RepetitionPenalty,
			MinP:              client.MinP,
			Provider:          prov,
			Models:            client.Models,
			Route:             string(client.Route),
		})
	default: // ProviderOpenAI, ProviderOpenAICompliant
		return json.Marshal(openAIBase{
			Model:            client.Model,
			Messages:         []Message{},
			Temperature:      client.Temperature,
			TopP:             client.TopP,
			FrequencyPenalty: client.FrequencyPenalty,
			PresencePenalty:  client.PresencePenalty,
			Seed:             client.Seed,
			MaxTokens:        client.MaxTokens,
		})
	}
}

// foldAnthropicSystem removes system-role messages from the message list,
// folding their content into system (deduped by substring containment, the
// same rule convo.AddSystem uses for a single call). It returns the updated
// system string and the stripped message list; it never mutates its inputs.
func foldAnthropicSystem(system string, messages []Message) (string, []Message) {
	kept := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role != "system" {
			kept = append(kept, m)
			continue
		}
		if m.Content == "" || strings.Contains(system, m.Content) {
			continue
		}
		if system == "" {
			system = m.Content
		} else {
			system = system + "\n" + m.Content
		}
	}
	return system, kept
}
