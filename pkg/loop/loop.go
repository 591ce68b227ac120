// Package loop implements the Tool-Call Loop: the budget-bounded
// model-then-tools iteration that drives a conversation forward once the
// model starts requesting tool calls.
package loop

import (
	"context"
	"math"

	"convoy/pkg/convo"
	"convoy/pkg/llmwire"
	"convoy/pkg/toolreg"
)

// unknownToolMessage is returned verbatim as the tool-result content when
// the model names a tool this process has no handler for. Unlike a handler
// error, this never aborts the loop.
const unknownToolMessage = "Error: the requested tool could not be found on the host machine."

// Options configures one HandleToolCalls invocation.
type Options struct {
	// MaxModelCalls bounds how many model requests this invocation may
	// issue. Zero means the budget is already spent: HandleToolCalls returns
	// the client without dispatching or requesting anything. DefaultOptions
	// sets math.MaxUint32.
	MaxModelCalls uint32
}

// DefaultOptions returns an effectively unbounded budget.
func DefaultOptions() Options {
	return Options{MaxModelCalls: math.MaxUint32}
}

// HandleToolCalls inspects the last message on client. If it isn't an
// assistant message carrying tool calls, client is returned unchanged. Use
// it repeatedly is not required: HandleToolCalls recurses on its own,
// issuing further model requests through transport as long as the model
// keeps asking for tools and the budget allows it.
func HandleToolCalls(ctx context.Context, transport llmwire.Transport, client *llmwire.Client, handlers toolreg.HandlerMap, opts Options) (*llmwire.Client, error) {
	last := lastMessage(client)
	if last == nil || last.Role != "assistant" || len(last.ToolCalls) == 0 {
		return client, nil
	}
	if opts.MaxModelCalls == 0 {
		// Budget already exhausted: stop without dispatching this round's
		// tool calls, since no further model request could consume them.
		return client, nil
	}

	for _, call := range last.ToolCalls {
		handler, ok := handlers[call.Function.Name]
		var result string
		if ok {
			out, err := handler(ctx, call.Function.Arguments)
			if err != nil {
				return client, err
			}
			result = out
		} else {
			result = unknownToolMessage
		}
		client.Messages = append(client.Messages, llmwire.Message{
			Role:       "tool",
			Content:    result,
			ToolCallID: call.ID,
			Name:       call.Function.Name,
		})
	}

	choice := llmwire.ToolChoice{Kind: llmwire.ToolChoiceAuto}
	if opts.MaxModelCalls <= 1 {
		choice = llmwire.ToolChoice{Kind: llmwire.ToolChoiceNone}
	}

	req, err := llmwire.BuildHTTPRequest(client, llmwire.RequestOptions{ToolChoice: choice})
	if err != nil {
		return client, err
	}
	resp, err := transport.Do(ctx, req)
	if err != nil {
		return client, err
	}
	if err := convo.UpdateMessages(client, resp.Status, resp.Body); err != nil {
		return client, err
	}

	return HandleToolCalls(ctx, transport, client, handlers, Options{MaxModelCalls: opts.MaxModelCalls - 1})
}

func lastMessage(client *llmwire.Client) *llmwire.Message {
	if len(client.Messages) == 0 {
		return nil
	}
	return &client.Messages[len(client.Messages)-1]
}
