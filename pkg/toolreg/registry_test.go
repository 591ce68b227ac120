package toolreg

import (
	"context"
	"testing"

	"convoy/pkg/llmwire"
)

func toolCallFor(name, arguments string) llmwire.ToolCall {
	return llmwire.ToolCall{ID: "call_1", Function: llmwire.FunctionCall{Name: name, Arguments: arguments}}
}

func TestBuildTool_RequiredOrderPreserved(t *testing.T) {
	tool := BuildTool("search", "search the index", []ParamSpec{
		{Name: "query", Type: "string", Description: "query text", Required: true},
		{Name: "limit", Type: "integer", Description: "max results"},
		{Name: "cursor", Type: "string", Description: "pagination cursor", Required: true},
	})
	if len(tool.Function.Properties) != 3 {
		t.Fatalf("properties = %+v", tool.Function.Properties)
	}
	if tool.Function.Properties[0].Name != "query" || tool.Function.Properties[2].Name != "cursor" {
		t.Errorf("property order not preserved: %+v", tool.Function.Properties)
	}
	if len(tool.Function.Required) != 2 || tool.Function.Required[0] != "query" || tool.Function.Required[1] != "cursor" {
		t.Errorf("required order not preserved: %v", tool.Function.Required)
	}
}

func TestRegistry_ToolsPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b_tool", "does b", nil, func(context.Context, string) (string, error) { return "", nil })
	reg.Register("a_tool", "does a", nil, func(context.Context, string) (string, error) { return "", nil })

	names := []string{}
	for _, tool := range reg.Tools() {
		names = append(names, tool.Function.Name)
	}
	if len(names) != 2 || names[0] != "b_tool" || names[1] != "a_tool" {
		t.Errorf("order = %v, expected registration order preserved", names)
	}
}

func TestRegistry_Execute(t *testing.T) {
	reg := NewRegistry()
	reg.Register("echo", "echoes input", nil, func(_ context.Context, arguments string) (string, error) {
		return "got:" + arguments, nil
	})

	out, err := reg.Execute(context.Background(), toolCallFor("echo", `{"x":1}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != `got:{"x":1}` {
		t.Errorf("out = %q", out)
	}
}

func TestRegistry_ExecuteUnknownTool(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Execute(context.Background(), toolCallFor("missing", "{}"))
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
}
