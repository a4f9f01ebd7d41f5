package ai

import (
	"context"

	"carf-backend/apierr"
	"carf-backend/logger"
	"carf-backend/metrics"
	"carf-backend/prompts"
	"carf-backend/store"
)

// ChatRequest is one stateless question. Attachment is the excerpt (or the
// degraded extraction message) of an uploaded document.
type ChatRequest struct {
	Question   string
	Attachment string
	Audio      bool
}

// Service runs the two assistant flows end to end. It keeps no state
// between calls.
type Service struct {
	adapter       *Adapter
	prompts       *prompts.Assembler
	log           *logger.Logger
	strictCatalog bool
}

func NewService(adapter *Adapter, assembler *prompts.Assembler, log *logger.Logger, strictCatalog bool) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if assembler == nil {
		assembler = prompts.New("")
	}
	return &Service{adapter: adapter, prompts: assembler, log: log, strictCatalog: strictCatalog}
}

// SuggestCourses asks the model for a course plan for w drawn from catalog.
func (s *Service) SuggestCourses(ctx context.Context, w store.Worker, catalog []string) (*SuggestionPlan, error) {
	prompt := s.prompts.CourseSuggestion(w, catalog)
	raw, err := s.adapter.CompleteJSON(ctx, prompt, PlanSchema(catalog))
	if err != nil {
		return nil, err
	}
	plan, err := ParsePlan(raw)
	if err != nil {
		s.log.Warn("course plan is not valid JSON", "servidor_id", w.ID, "error", err)
		return nil, err
	}
	if violations := VerifyPlan(plan, w.ID, catalog); len(violations) > 0 {
		s.log.Warn("course plan breaks its output contract", "servidor_id", w.ID, "violations", violations, "strict", s.strictCatalog)
		if s.strictCatalog {
			return nil, &apierr.Error{
				Code:    apierr.MalformedModelOutput,
				Message: "a trilha sugerida não respeita o catálogo: " + violations[0].String(),
				Raw:     raw,
			}
		}
	}
	return plan, nil
}

// Chat answers req. Generation failures end up in the envelope; audio
// failures only drop the audio.
func (s *Service) Chat(ctx context.Context, req ChatRequest) ChatEnvelope {
	prompt := s.prompts.Chat(req.Question, req.Attachment)
	text, err := s.adapter.Complete(ctx, prompt)
	if err != nil {
		s.log.Error("chat generation failed", "code", apierr.CodeOf(err), "error", err)
		return Compose("", Audio{}, err)
	}
	return Compose(text, s.synthesize(ctx, text, req.Audio), nil)
}

func (s *Service) synthesize(ctx context.Context, text string, enabled bool) Audio {
	if !enabled {
		return Audio{}
	}
	sp, err := s.adapter.Speak(ctx, text)
	if err != nil {
		s.log.Warn("speech synthesis failed, answering without audio", "error", err)
		metrics.ObserveAudio("degraded")
		return Audio{}
	}
	metrics.ObserveAudio("ok")
	return encodeAudio(sp)
}
