package ai

import (
	"context"
	"errors"
	"sync"

	"carf-backend/store"
)

type fakeProvider struct {
	mu         sync.Mutex
	text       string
	genErr     error
	speech     Speech
	speechErr  error
	requests   []Request
	speechReqs []SpeechRequest
}

func (f *fakeProvider) Generate(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.text, f.genErr
}

func (f *fakeProvider) Synthesize(_ context.Context, req SpeechRequest) (Speech, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speechReqs = append(f.speechReqs, req)
	return f.speech, f.speechErr
}

// newTestAdapter returns an adapter whose credential is set and whose
// connector hands out p, counting connections.
func newTestAdapter(p Provider, connects *int) *Adapter {
	return &Adapter{
		CredentialEnv:   "TEST_API_KEY",
		ChatModel:       "chat-model",
		SuggestionModel: "suggest-model",
		TTSModel:        "tts-model",
		TTSVoice:        "Kore",
		TTSLanguage:     "pt-BR",
		Lookup:          func(string) string { return "secret" },
		Connect: func(_ context.Context, key string) (Provider, error) {
			if connects != nil {
				*connects++
			}
			if key != "secret" {
				return nil, errors.New("unexpected key")
			}
			return p, nil
		},
	}
}

func ana() store.Worker {
	return store.Worker{
		ID:     7,
		Nome:   "Ana",
		Funcao: "Analista",
		LacunasIdentificadas: []store.Gap{
			{Competencia: "Excel Avançado", LacunaPercentual: 40},
			{Competencia: "Gestão de Processos", LacunaPercentual: 25},
		},
	}
}

var testCatalog = []string{"Excel Avançado – Módulo II", "Gestão de Processos", "Redação Oficial"}
