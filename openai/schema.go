package openai

import (
	"github.com/sashabaranov/go-openai/jsonschema"

	"carf-backend/ai"
)

// toDefinition converts s for strict structured outputs, which reject
// additional properties on every object.
func toDefinition(s *ai.Schema) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if s.Items != nil {
		items := toDefinition(s.Items)
		def.Items = &items
	}
	if s.Type == ai.TypeObject {
		def.AdditionalProperties = false
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = toDefinition(prop)
		}
	}
	return def
}
