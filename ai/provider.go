package ai

import "context"

// Mode selects how a provider should shape its output.
type Mode int

const (
	// ModeText asks for unconstrained free text.
	ModeText Mode = iota
	// ModeJSON asks for a JSON payload, constrained by Request.Schema when set.
	ModeJSON
)

func (m Mode) String() string {
	if m == ModeJSON {
		return "json"
	}
	return "text"
}

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
)

// Schema is a provider-neutral description of the expected JSON shape. Each
// provider translates it to its own schema type.
type Schema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*Schema
	Required    []string
	Items       *Schema
	Enum        []string
	MaxItems    int
	MinItems    int
}

type Request struct {
	Model  string
	Prompt string
	Mode   Mode
	Schema *Schema
}

type SpeechRequest struct {
	Model    string
	Voice    string
	Language string
	Text     string
}

// Speech is encoded audio as returned by a provider.
type Speech struct {
	Audio []byte
	MIME  string
}

// Provider is one generative backend. Implementations perform exactly one
// network call per method invocation and never retry.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Synthesize(ctx context.Context, req SpeechRequest) (Speech, error)
}

// Connector builds a Provider for an API key.
type Connector func(ctx context.Context, apiKey string) (Provider, error)
