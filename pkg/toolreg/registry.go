// Package toolreg builds llmwire.Tool schemas from an ordered parameter list
// and maps tool names to the handlers that execute them. It is the
// in-process analogue of the source's manifest-driven, exec.Command-based
// tool registry: the wire contract here is a single Go function, not an
// external binary, and parameter order is preserved explicitly rather than
// iterated off a Go map, which does not guarantee order.
package toolreg

import (
	"context"
	"fmt"

	"convoy/pkg/llmwire"
)

// ParamSpec describes one tool parameter, in the order it should appear in
// the emitted schema.
type ParamSpec struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// BuildTool assembles a Tool schema from an ordered parameter list. The
// Required slice it produces preserves the declaration order of params whose
// Required flag is set — this is the one fix over the source's manifest
// registry, whose map-backed buildJSONSchema produced nondeterministic
// property and required order.
func BuildTool(name, description string, params []ParamSpec) llmwire.Tool {
	props := make([]llmwire.ParamSchema, 0, len(params))
	var required []string
	for _, p := range params {
		props = append(props, llmwire.ParamSchema{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
		})
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return llmwire.Tool{
		Type: "function",
		Function: llmwire.FunctionSchema{
			Name:        name,
			Description: description,
			Properties:  props,
			Required:    required,
		},
	}
}

// Handler executes one tool call. arguments is the raw JSON object the
// model produced, encoded as a string; handlers are responsible for parsing
// it. A returned error aborts the enclosing tool-call loop.
type Handler func(ctx context.Context, arguments string) (string, error)

// HandlerMap is the name-to-handler lookup loop.HandleToolCalls dispatches
// through.
type HandlerMap map[string]Handler

// Registry pairs a tool's schema with its handler under one name, so a
// caller registers both from the same source of truth and gets out both the
// []llmwire.Tool slice for Client.Tools and the HandlerMap for the loop.
type Registry struct {
	order    []string
	tools    map[string]llmwire.Tool
	handlers HandlerMap
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:    make(map[string]llmwire.Tool),
		handlers: make(HandlerMap),
	}
}

// Register adds one tool under name. Registering the same name twice
// replaces the earlier definition but keeps its original position in Tools.
func (r *Registry) Register(name, description string, params []ParamSpec, handler Handler) {
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = BuildTool(name, description, params)
	r.handlers[name] = handler
}

// Tools returns every registered tool's schema, in registration order.
func (r *Registry) Tools() []llmwire.Tool {
	out := make([]llmwire.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Handlers returns the HandlerMap backing this registry's tools.
func (r *Registry) Handlers() HandlerMap {
	return r.handlers
}

// Execute looks up and invokes the handler for a model-produced tool call
// directly, bypassing the tool-call loop. Most callers should go through
// loop.HandleToolCalls instead; this exists for callers that want to
// dispatch a single call without the rest of the loop's bookkeeping.
func (r *Registry) Execute(ctx context.Context, call llmwire.ToolCall) (string, error) {
	handler, ok := r.handlers[call.Function.Name]
	if !ok {
		return "", fmt.Errorf("toolreg: no handler registered for %q", call.Function.Name)
	}
	return handler(ctx, call.Function.Arguments)
}
