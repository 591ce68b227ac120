package llmwire

import (
	"encoding/json"
)

// chatCompletionBody is the OpenAI/OpenRouter/compliant response shape.
type chatCompletionBody struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role      string         `json:"role"`
			Content   string         `json:"content"`
			ToolCalls []wireToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// anthropicResponseBody is the Anthropic /v1/messages response shape.
type anthropicResponseBody struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Model   string `json:"model"`
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text,omitempty"`
		ID    string          `json:"id,omitempty"`
		Name  string          `json:"name,omitempty"`
		Input json.RawMessage `json:"input,omitempty"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// errorBody matches both OpenAI-family and Anthropic error shapes; Code may
// arrive as a JSON string or number on the wire, hence json.RawMessage.
type errorBody struct {
	Error *struct {
		Code    json.RawMessage `json:"code"`
		Type    string          `json:"type"`
		Message string          `json:"message"`
	} `json:"error"`
}

func trimLeadingWhitespace(body []byte) []byte {
	i := 0
	for i < len(body) && body[i] <= 0x20 {
		i++
	}
	return body[i:]
}

// DecodeResponse parses body against the chat-completions shape, then the
// Anthropic shape, then the provider error shape, in that order, falling
// back to a BadJSONError carrying the raw text.
func DecodeResponse(body []byte) (*Response, error) {
	body = trimLeadingWhitespace(body)

	var chat chatCompletionBody
	if err := json.Unmarshal(body, &chat); err == nil && chat.Object != "" {
		return decodeChatCompletion(chat), nil
	}

	var anth anthropicResponseBody
	if err := json.Unmarshal(body, &anth); err == nil && anth.Type == "message" {
		return decodeAnthropic(anth), nil
	}

	var apiErr errorBody
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
		return nil, &APIError{Code: rawCodeToString(apiErr.Error.Code), Message: apiErr.Error.Message}
	}

	return nil, &BadJSONError{Raw: string(body)}
}

func rawCodeToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

func decodeChatCompletion(chat chatCompletionBody) *Response {
	choices := make([]Choice, 0, len(chat.Choices))
	for _, c := range chat.Choices {
		toolCalls := make([]ToolCall, 0, len(c.Message.ToolCalls))
		for _, tc := range c.Message.ToolCalls {
			toolCalls = append(toolCalls, ToolCall{
				ID:   tc.ID,
				Type: tc.Type,
				Function: FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		choices = append(choices, Choice{
			Index: c.Index,
			Message: Message{
				Role:      c.Message.Role,
				Content:   c.Message.Content,
				ToolCalls: toolCalls,
			},
			FinishReason: c.FinishReason,
		})
	}
	return &Response{
		ID:      chat.ID,
		Model:   chat.Model,
		Object:  chat.Object,
		Created: chat.Created,
		Choices: choices,
		Usage: Usage{
			PromptTokens:     chat.Usage.PromptTokens,
			CompletionTokens: chat.Usage.CompletionTokens,
			TotalTokens:      chat.Usage.TotalTokens,
		},
	}
}

// decodeAnthropic closes the gap the source's Anthropic decoder left open:
// a tool_use block's Input is carried through as a JSON-object-turned-string
// ToolCall.Arguments rather than dropped, so Anthropic tool calls round-trip
// through the tool-call loop exactly like OpenAI/OpenRouter ones.
func decodeAnthropic(anth anthropicResponseBody) *Response {
	var content string
	var toolCalls []ToolCall
	for _, block := range anth.Content {
		switch block.Type {
		case "text":
			content += block.Text
		case "tool_use":
			args := string(block.Input)
			if args == "" {
				args = "{}"
			}
			toolCalls = append(toolCalls, ToolCall{
				ID:   block.ID,
				Type: "function",
				Function: FunctionCall{
					Name:      block.Name,
					Arguments: args,
				},
			})
		}
	}
	return &Response{
		ID:      anth.ID,
		Model:   anth.Model,
		Object:  anth.Type,
		Choices: []Choice{{
			Index: 0,
			Message: Message{
				Role:      "assistant",
				Content:   content,
				ToolCalls: toolCalls,
			},
			FinishReason: anth.StopReason,
		}},
		Usage: Usage{
			PromptTokens:     anth.Usage.InputTokens,
			CompletionTokens: anth.Usage.OutputTokens,
			TotalTokens:      anth.Usage.InputTokens + anth.Usage.OutputTokens,
		},
	}
}

// DecodeTopMessageChoice decodes body and returns choice 0's message, or
// ErrNoChoices if decoding succeeded but produced zero choices.
func DecodeTopMessageChoice(body []byte) (*Message, error) {
	resp, err := DecodeResponse(body)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoices
	}
	return &resp.Choices[0].Message, nil
}
