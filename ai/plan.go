package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"carf-backend/apierr"
	"carf-backend/prompts"
)

type PlanStep struct {
	Passo         int    `json:"passo"`
	CursoSugerido string `json:"curso_sugerido"`
	Justificativa string `json:"justificativa"`
}

// SuggestionPlan is the course path the model proposes for one worker.
type SuggestionPlan struct {
	ServidorID     int        `json:"servidor_id"`
	TrilhaSugerida []PlanStep `json:"trilha_sugerida"`
}

// ParsePlan strictly decodes the model output. Anything that is not a single
// JSON object with 1 to 4 steps is a MalformedModelOutput carrying raw.
func ParsePlan(raw string) (*SuggestionPlan, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	var plan SuggestionPlan
	if err := dec.Decode(&plan); err != nil {
		return nil, apierr.Malformed(raw, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, apierr.Malformed(raw, errors.New("conteúdo adicional após o objeto JSON"))
	}
	if n := len(plan.TrilhaSugerida); n == 0 || n > prompts.MaxPlanSteps {
		return nil, apierr.Malformed(raw, fmt.Errorf("trilha com %d passos (esperado de 1 a %d)", n, prompts.MaxPlanSteps))
	}
	return &plan, nil
}

// Violation is a post-condition the model was instructed to honor but did not.
type Violation struct {
	Passo  int    `json:"passo,omitempty"`
	Campo  string `json:"campo"`
	Valor  string `json:"valor"`
	Motivo string `json:"motivo"`
}

func (v Violation) String() string {
	return fmt.Sprintf("passo %d: %s=%q: %s", v.Passo, v.Campo, v.Valor, v.Motivo)
}

// VerifyPlan checks the worker id, the step numbering and that every course
// is copied verbatim from catalog.
func VerifyPlan(plan *SuggestionPlan, workerID int, catalog []string) []Violation {
	if plan == nil {
		return nil
	}
	var out []Violation
	if plan.ServidorID != workerID {
		out = append(out, Violation{
			Campo:  "servidor_id",
			Valor:  fmt.Sprint(plan.ServidorID),
			Motivo: fmt.Sprintf("esperado %d", workerID),
		})
	}
	known := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		known[c] = struct{}{}
	}
	for i, s := range plan.TrilhaSugerida {
		if s.Passo != i+1 {
			out = append(out, Violation{Passo: s.Passo, Campo: "passo", Valor: fmt.Sprint(s.Passo), Motivo: fmt.Sprintf("esperado %d", i+1)})
		}
		if _, ok := known[s.CursoSugerido]; !ok {
			out = append(out, Violation{Passo: s.Passo, Campo: "curso_sugerido", Valor: s.CursoSugerido, Motivo: "curso fora do catálogo"})
		}
	}
	return out
}

// PlanSchema describes SuggestionPlan for schema-constrained generation.
// Course names are restricted to catalog when it is not empty.
func PlanSchema(catalog []string) *Schema {
	course := &Schema{Type: TypeString, Description: "Nome EXATO de um curso do catálogo"}
	if len(catalog) > 0 {
		course.Enum = append([]string(nil), catalog...)
	}
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"servidor_id": {Type: TypeInteger},
			"trilha_sugerida": {
				Type:     TypeArray,
				MinItems: 1,
				MaxItems: prompts.MaxPlanSteps,
				Items: &Schema{
					Type: TypeObject,
					Properties: map[string]*Schema{
						"passo":          {Type: TypeInteger},
						"curso_sugerido": course,
						"justificativa":  {Type: TypeString},
					},
					Required: []string{"passo", "curso_sugerido", "justificativa"},
				},
			},
		},
		Required: []string{"servidor_id", "trilha_sugerida"},
	}
}
