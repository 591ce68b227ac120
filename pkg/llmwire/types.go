// Package llmwire implements the wire-level data model shared by every
// provider: client configuration, messages, tool schemas, tool calls, and
// decoded responses. It also builds and decodes the actual HTTP requests
// (see request.go, inject.go, decode.go) and defines the Transport
// collaborator each of those depends on (see transport.go).
package llmwire

// ProviderKind names one of the closed set of wire dialects this package
// knows how to speak.
type ProviderKind int

const (
	ProviderOpenAI ProviderKind = iota
	ProviderAnthropic
	ProviderOpenRouter
	ProviderOpenAICompliant
)

func (k ProviderKind) String() string {
	switch k {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderOpenRouter:
		return "openrouter"
	case ProviderOpenAICompliant:
		return "openai-compliant"
	default:
		return "unknown"
	}
}

// Provider identifies which wire dialect and endpoint a Client talks to.
// URL is only meaningful (and required) when Kind is ProviderOpenAICompliant;
// the other three kinds have fixed, well-known endpoints.
type Provider struct {
	Kind ProviderKind
	URL  string
}

func (p Provider) endpoint() string {
	switch p.Kind {
	case ProviderOpenAI:
		return "https://api.openai.com/v1/chat/completions"
	case ProviderAnthropic:
		return "https://api.anthropic.com/v1/messages"
	case ProviderOpenRouter:
		return "https://openrouter.ai/api/v1/chat/completions"
	case ProviderOpenAICompliant:
		return p.URL
	default:
		return ""
	}
}

// Route selects OpenRouter's model-fallback behavior. The zero value means
// "absent" (no route key on the wire).
type Route string

const RouteFallback Route = "fallback"

// Timeout expresses either "no timeout" or a millisecond bound.
type Timeout struct {
	None         bool
	Milliseconds uint64
}

// NoTimeout is the zero-value convenience constructor for an absent timeout.
func NoTimeout() Timeout { return Timeout{None: true} }

// TimeoutMillis builds a bounded Timeout.
func TimeoutMillis(ms uint64) Timeout { return Timeout{Milliseconds: ms} }

// Message is the uniform, provider-agnostic representation of one turn in a
// conversation. Absent optional fields are represented by Go zero values
// (empty string, nil slice, false) rather than pointers: the wire encoder
// treats each of those as "omit this key", never as JSON null.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	Name       string
	ToolCallID string
	// Cached marks this message as eligible for ephemeral prompt caching on
	// providers that support it. It has no effect on providers that don't.
	Cached bool
}

// ToolCall is a single function invocation requested by the model.
type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

// FunctionCall names the function the model wants invoked and the raw JSON
// object (encoded as a string) it wants to invoke it with.
type FunctionCall struct {
	Name      string
	Arguments string
}

// ParamSchema is one property in a Tool's parameter object.
type ParamSchema struct {
	Name        string
	Type        string
	Description string
}

// FunctionSchema describes one callable tool's shape to the model.
type FunctionSchema struct {
	Name        string
	Description string
	// Properties is ordered: iteration order is wire order, and must match
	// the order tools were declared in so encoded schemas are stable.
	Properties []ParamSchema
	// Required lists the names, in declaration order, of properties the
	// model must supply.
	Required []string
}

// Tool is a schema exposed to the model so it may request a call to it.
type Tool struct {
	Type     string
	Function FunctionSchema
}

// ToolChoiceKind selects whether/which tool the model must pick next turn.
type ToolChoiceKind int

const (
	ToolChoiceAuto ToolChoiceKind = iota
	ToolChoiceNone
	ToolChoiceName
)

// ToolChoice pairs a ToolChoiceKind with the tool name when Kind is
// ToolChoiceName.
type ToolChoice struct {
	Kind ToolChoiceKind
	Name string
}

// Choice pairs one candidate assistant message with its position and the
// reason generation stopped.
type Choice struct {
	Index        int
	Message      Message
	FinishReason string
}

// Usage echoes the provider's token accounting; it is never computed or
// second-guessed by this package beyond the Anthropic input+output sum.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Response is the unified shape every provider's body decodes into.
type Response struct {
	ID      string
	Model   string
	Object  string
	Created int64
	Choices []Choice
	Usage   Usage
}

// Client holds one conversation's configuration and accumulated message
// history. It is not safe for concurrent use by more than one goroutine;
// independent conversations must use independent Clients.
type Client struct {
	Provider Provider
	APIKey   string
	Model    string
	Timeout  Timeout

	Temperature       float64
	TopP              float64
	TopK              int
	FrequencyPenalty  float64
	PresencePenalty   float64
	RepetitionPenalty float64
	MinP              float64
	TopA              float64

	Seed      int64
	MaxTokens int

	// ProviderOrder, Models, and Route are OpenRouter-only knobs; they are
	// ignored (and omitted from the wire body) by every other provider.
	ProviderOrder []string
	Models        []string
	Route         Route

	Tools  []Tool
	System string
	Stream bool

	Messages []Message
}

// Config seeds a new Client. Only Provider, APIKey, and Model are required;
// every other field defaults per New's zero-value conventions.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
}

// New constructs a Client with the sampling-parameter defaults the spec
// fixes (Temperature=1, TopP=1, RepetitionPenalty=1, everything else 0/absent).
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" && cfg.Provider.Kind != ProviderOpenAICompliant {
		return nil, ErrMissingAPIKey
	}
	return &Client{
		Provider:          cfg.Provider,
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		Timeout:           NoTimeout(),
		Temperature:       1.0,
		TopP:              1.0,
		RepetitionPenalty: 1.0,
	}, nil
}
