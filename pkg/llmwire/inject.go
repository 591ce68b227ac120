package llmwire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The wire body is assembled in stages rather than through one pass of
// encoding/json because a message's content field is string-shaped or
// content-block-array-shaped depending on its Cached flag and role, and a
// tool's parameter map is keyed by an open, caller-defined vocabulary.
// Modeling either through a single generic Go type would mean threading
// json.RawMessage through every call site; splicing pre-encoded fragments
// into an already-valid body is the more direct translation of the same
// technique the source's per-provider adapters used by hand.

func findMessagesSlotEnd(body []byte) (int, bool) {
	for _, needle := range []string{`"messages":[`, `"messages": [`} {
		if i := bytes.Index(body, []byte(needle)); i >= 0 {
			return i + len(needle), true
		}
	}
	return 0, false
}

// injectMessages splices the encoded message array into base at the
// "messages":[ slot produced by buildBaseBody's empty placeholder. If no
// such slot exists, base is returned unchanged.
func injectMessages(base []byte, messages []Message, kind ProviderKind) ([]byte, error) {
	pos, ok := findMessagesSlotEnd(base)
	if !ok {
		return base, nil
	}
	var encoded []byte
	var err error
	if kind == ProviderAnthropic {
		encoded, err = encodeAnthropicMessages(messages)
	} else {
		encoded, err = encodeChatMessages(messages, kind == ProviderOpenRouter)
	}
	if err != nil {
		return nil, err
	}
	// The slot already supplies the array's brackets; splice only the
	// elements between encoded's own '[' and ']'.
	elems := encoded[1 : len(encoded)-1]
	out := make([]byte, 0, len(base)+len(elems))
	out = append(out, base[:pos]...)
	out = append(out, elems...)
	out = append(out, base[pos:]...)
	return out, nil
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireFunctionCall `json:"function"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type textBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *cacheControl `json:"cache_control,omitempty"`
}

type cacheControl struct {
	Type string `json:"type"`
}

// chatMessage is the OpenAI/OpenRouter/compliant wire shape.
type chatMessage struct {
	Role       string         `json:"role"`
	Content    interface{}    `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// encodeChatMessages renders messages in the OpenAI-family shape. allowCache
// is true for OpenRouter, which proxies Anthropic-style ephemeral caching;
// OpenAI and OpenAI-compliant endpoints never honor Cached, so it is dropped
// (encoded as a plain string) there.
func encodeChatMessages(messages []Message, allowCache bool) ([]byte, error) {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		wm := chatMessage{
			Role:       m.Role,
			Name:       m.Name,
			ToolCallID: m.ToolCallID,
		}
		if allowCache && m.Cached && m.ToolCallID == "" {
			wm.Content = []textBlock{{Type: "text", Text: m.Content, CacheControl: &cacheControl{Type: "ephemeral"}}}
		} else {
			wm.Content = m.Content
		}
		for _, tc := range m.ToolCalls {
			wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: wireFunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		out = append(out, wm)
	}
	return json.Marshal(out)
}

type anthropicContentBlock struct {
	Type         string          `json:"type"`
	Text         string          `json:"text,omitempty"`
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name,omitempty"`
	Input        json.RawMessage `json:"input,omitempty"`
	ToolUseID    string          `json:"tool_use_id,omitempty"`
	Content      string          `json:"content,omitempty"`
	CacheControl *cacheControl   `json:"cache_control,omitempty"`
}

type anthropicMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// encodeAnthropicMessages reshapes the unified role set onto Anthropic's
// convention: assistant tool calls become tool_use content blocks, and
// there is no "tool" role — tool results are user messages carrying a
// tool_result block. System messages must already have been stripped by
// foldAnthropicSystem before this is called.
func encodeAnthropicMessages(messages []Message) ([]byte, error) {
	out := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			if len(m.ToolCalls) == 0 {
				out = append(out, anthropicMessage{Role: "assistant", Content: cachedText(m)})
				continue
			}
			var blocks []anthropicContentBlock
			if m.Content != "" {
				blocks = append(blocks, anthropicContentBlock{Type: "text", Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				input := tc.Function.Arguments
				if input == "" {
					input = "{}"
				}
				blocks = append(blocks, anthropicContentBlock{
					Type:  "tool_use",
					ID:    tc.ID,
					Name:  tc.Function.Name,
					Input: json.RawMessage(input),
				})
			}
			out = append(out, anthropicMessage{Role: "assistant", Content: blocks})
		case "tool":
			out = append(out, anthropicMessage{
				Role: "user",
				Content: []anthropicContentBlock{{
					Type:      "tool_result",
					ToolUseID: m.ToolCallID,
					Content:   m.Content,
				}},
			})
		default: // "user"
			out = append(out, anthropicMessage{Role: m.Role, Content: cachedText(m)})
		}
	}
	return json.Marshal(out)
}

func cachedText(m Message) interface{} {
	if m.Cached && m.ToolCallID == "" {
		return []anthropicContentBlock{{Type: "text", Text: m.Content, CacheControl: &cacheControl{Type: "ephemeral"}}}
	}
	return m.Content
}

// injectTools splices the tools array and a tool_choice value immediately
// before the base body's final closing brace; the one exception is
// ToolChoiceNone on Anthropic, which emits no tool_choice key (other
// providers get "none"). Tool parameter schemas are assembled by direct string concatenation
// rather than a generic map, because property order — the caller's
// declaration order — must survive encoding, and Go map iteration does not
// preserve it.
func injectTools(body []byte, tools []Tool, choice ToolChoice, kind ProviderKind) ([]byte, error) {
	end := bytes.LastIndexByte(body, '}')
	if end < 0 {
		return nil, fmt.Errorf("llmwire: base body has no closing brace")
	}

	var buf bytes.Buffer
	buf.WriteString(`,"tools":[`)
	for i, t := range tools {
		if i > 0 {
			buf.WriteByte(',')
		}
		if kind == ProviderAnthropic {
			buf.Write(encodeAnthropicToolSchema(t))
		} else {
			buf.Write(encodeChatToolSchema(t))
		}
	}
	buf.WriteByte(']')

	if choice.Kind != ToolChoiceNone || kind != ProviderAnthropic {
		buf.WriteString(`,"tool_choice":`)
		buf.Write(encodeToolChoice(choice, kind))
	}

	out := make([]byte, 0, len(body)+buf.Len())
	out = append(out, body[:end]...)
	out = append(out, buf.Bytes()...)
	out = append(out, body[end:]...)
	return out, nil
}

func encodeParamProperties(params []ParamSchema) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, _ := json.Marshal(p.Name)
		typ, _ := json.Marshal(p.Type)
		desc, _ := json.Marshal(p.Description)
		buf.Write(name)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, `{"type":%s,"description":%s}`, typ, desc)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func encodeRequiredList(required []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range required {
		if i > 0 {
			buf.WriteByte(',')
		}
		v, _ := json.Marshal(r)
		buf.Write(v)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func encodeChatToolSchema(t Tool) []byte {
	name, _ := json.Marshal(t.Function.Name)
	desc, _ := json.Marshal(t.Function.Description)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"type":"function","function":{"name":%s,"description":%s,"parameters":{"type":"object","properties":%s},"required":%s}}`,
		name, desc, encodeParamProperties(t.Function.Properties), encodeRequiredList(t.Function.Required))
	return buf.Bytes()
}

func encodeAnthropicToolSchema(t Tool) []byte {
	name, _ := json.Marshal(t.Function.Name)
	desc, _ := json.Marshal(t.Function.Description)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"name":%s,"description":%s,"input_schema":{"type":"object","properties":%s,"required":%s}}`,
		name, desc, encodeParamProperties(t.Function.Properties), encodeRequiredList(t.Function.Required))
	return buf.Bytes()
}

func encodeToolChoice(choice ToolChoice, kind ProviderKind) []byte {
	switch choice.Kind {
	case ToolChoiceAuto:
		if kind == ProviderAnthropic {
			return []byte(`{"type":"auto"}`)
		}
		return []byte(`"auto"`)
	case ToolChoiceName:
		name, _ := json.Marshal(choice.Name)
		return []byte(fmt.Sprintf(`{"type":"function","function":{"name":%s}}`, name))
	default:
		if kind == ProviderAnthropic {
			return []byte(`{"type":"auto"}`)
		}
		return []byte(`"none"`)
	}
}
