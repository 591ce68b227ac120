// Package convo implements the Conversation Controller: the small set of
// builder operations that append messages to an llmwire.Client and fold an
// HTTP response back into it.
package convo

import (
	"strings"

	"convoy/pkg/llmwire"
)

// MessageOptions configures one Add* call. Cached requests ephemeral prompt
// caching for the added message on providers that honor it.
type MessageOptions struct {
	Cached bool
}

// AddSystem appends a system message. On Anthropic, system messages are
// never sent in the messages array — instead the text is folded into
// client.System, deduplicated by substring containment so repeated calls
// with the same boilerplate don't grow the system prompt unboundedly.
func AddSystem(client *llmwire.Client, text string, opts MessageOptions) {
	if client.Provider.Kind == llmwire.ProviderAnthropic {
		if text == "" || strings.Contains(client.System, text) {
			return
		}
		if client.System == "" {
			client.System = text
		} else {
			client.System = client.System + "\n\n" + text
		}
		return
	}
	client.Messages = append(client.Messages, llmwire.Message{
		Role:    "system",
		Content: text,
		Cached:  opts.Cached,
	})
}

// AddUser appends a user message.
func AddUser(client *llmwire.Client, text string, opts MessageOptions) {
	client.Messages = append(client.Messages, llmwire.Message{
		Role:    "user",
		Content: text,
		Cached:  opts.Cached,
	})
}

// AddAssistant appends an assistant message with no tool calls. Responses
// decoded off the wire are appended via UpdateMessages instead, which
// preserves any tool calls the model produced.
func AddAssistant(client *llmwire.Client, text string, opts MessageOptions) {
	client.Messages = append(client.Messages, llmwire.Message{
		Role:    "assistant",
		Content: text,
		Cached:  opts.Cached,
	})
}

// UpdateMessages folds an HTTP response into client: on a 2xx status, the
// top choice's message is decoded and appended; otherwise the client is
// left unmodified and an *llmwire.HTTPError is returned.
func UpdateMessages(client *llmwire.Client, status int, body []byte) error {
	if status < 200 || status >= 300 {
		return &llmwire.HTTPError{Status: status, Body: string(body)}
	}
	msg, err := llmwire.DecodeTopMessageChoice(body)
	if err != nil {
		return err
	}
	client.Messages = append(client.Messages, *msg)
	return nil
}
