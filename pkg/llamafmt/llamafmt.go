// Package llamafmt formats a conversation as Llama-style prompt tags and
// builds the single-string "raw completion" request some OpenAI-compliant
// local servers (llama.cpp, vLLM in completion mode) expect instead of a
// chat-completions body. Neither concern is part of the request
// assembler/tool-call loop core; both are included because the repository
// is expected to carry them as an adjacent, separately-tested feature.
package llamafmt

import (
	"strings"

	"convoy/pkg/llmwire"
)

const (
	beginOfText = "<|begin_of_text|>"
	startHeader = "<|start_header_id|>"
	endHeader   = "<|end_header_id|>"
	endOfTurn   = "<|eot_id|>"
)

// FormatConversation renders messages (system, user, and assistant turns
// only — tool calls have no Llama prompt-tag representation and are
// skipped) as a single Llama 3 style prompt string, ending with an open
// assistant header ready for the model to continue.
func FormatConversation(messages []llmwire.Message) string {
	var b strings.Builder
	b.WriteString(beginOfText)
	for _, m := range messages {
		if m.Role != "system" && m.Role != "user" && m.Role != "assistant" {
			continue
		}
		b.WriteString(startHeader)
		b.WriteString(m.Role)
		b.WriteString(endHeader)
		b.WriteString("\n\n")
		b.WriteString(m.Content)
		b.WriteString(endOfTurn)
	}
	b.WriteString(startHeader)
	b.WriteString("assistant")
	b.WriteString(endHeader)
	b.WriteString("\n\n")
	return b.String()
}

// RawCompletionBody is the body shape a legacy /completions-style endpoint
// expects: a single prompt string rather than a messages array.
type RawCompletionBody struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// BuildRawCompletionRequest formats client's messages as a Llama prompt
// string and wraps it in the legacy completions body shape. It returns only
// the body; it builds no URL, headers, or request description.
func BuildRawCompletionRequest(client *llmwire.Client) RawCompletionBody {
	return RawCompletionBody{
		Model:       client.Model,
		Prompt:      FormatConversation(client.Messages),
		Temperature: client.Temperature,
		TopP:        client.TopP,
		MaxTokens:   client.MaxTokens,
	}
}
