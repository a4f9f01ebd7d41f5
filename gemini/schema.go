package gemini

import (
	"google.golang.org/genai"

	"carf-backend/ai"
)

func toSchema(s *ai.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
		Items:       toSchema(s.Items),
	}
	if s.Enum != nil {
		out.Format = "enum"
	}
	if s.MaxItems > 0 {
		n := int64(s.MaxItems)
		out.MaxItems = &n
	}
	if s.MinItems > 0 {
		n := int64(s.MinItems)
		out.MinItems = &n
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func schemaType(t ai.SchemaType) genai.Type {
	switch t {
	case ai.TypeObject:
		return genai.TypeObject
	case ai.TypeArray:
		return genai.TypeArray
	case ai.TypeInteger:
		return genai.TypeInteger
	default:
		return genai.TypeString
	}
}
