package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"carf-backend/apierr"
	"carf-backend/metrics"
)

const (
	opChat       = "chat"
	opSuggestion = "course_suggestion"
	opSpeech     = "speech"
)

// Adapter resolves the credential, builds a provider client and performs a
// single call per invocation. Every failure leaves it as an *apierr.Error.
type Adapter struct {
	CredentialEnv   string
	ChatModel       string
	SuggestionModel string
	TTSModel        string
	TTSVoice        string
	TTSLanguage     string

	Connect Connector
	// Lookup reads the environment; nil means os.Getenv.
	Lookup func(string) string
}

// Credential returns the value of the named variable or a MissingCredential error.
func Credential(lookup func(string) string, name string) (string, error) {
	if lookup == nil {
		lookup = os.Getenv
	}
	key := strings.TrimSpace(lookup(name))
	if key == "" {
		return "", apierr.New(apierr.MissingCredential, fmt.Sprintf("API Key '%s' não configurada.", name), nil)
	}
	return key, nil
}

func (a *Adapter) client(ctx context.Context) (Provider, error) {
	key, err := Credential(a.Lookup, a.CredentialEnv)
	if err != nil {
		return nil, err
	}
	if a.Connect == nil {
		return nil, apierr.New(apierr.ProviderCallFailure, "nenhum provedor configurado", nil)
	}
	p, err := a.Connect(ctx, key)
	if err != nil {
		return nil, apierr.New(apierr.ProviderCallFailure, "falha ao criar o cliente do modelo", err)
	}
	return p, nil
}

// Complete runs a free-text generation for the chat flow.
func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	return a.generate(ctx, opChat, Request{Model: a.ChatModel, Prompt: prompt, Mode: ModeText})
}

// CompleteJSON runs a schema-constrained generation for the course flow.
func (a *Adapter) CompleteJSON(ctx context.Context, prompt string, schema *Schema) (string, error) {
	return a.generate(ctx, opSuggestion, Request{Model: a.SuggestionModel, Prompt: prompt, Mode: ModeJSON, Schema: schema})
}

func (a *Adapter) generate(ctx context.Context, op string, req Request) (text string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveProviderCall(op, resultLabel(err), time.Since(start)) }()

	p, err := a.client(ctx)
	if err != nil {
		return "", err
	}
	text, err = p.Generate(ctx, req)
	if err != nil {
		return "", apierr.New(apierr.ProviderCallFailure, "erro ao chamar o modelo generativo", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apierr.New(apierr.ProviderCallFailure, "o modelo generativo retornou uma resposta vazia", nil)
	}
	return text, nil
}

// Speak synthesizes text in the configured language.
func (a *Adapter) Speak(ctx context.Context, text string) (sp Speech, err error) {
	start := time.Now()
	defer func() { metrics.ObserveProviderCall(opSpeech, resultLabel(err), time.Since(start)) }()

	p, err := a.client(ctx)
	if err != nil {
		return Speech{}, err
	}
	sp, err = p.Synthesize(ctx, SpeechRequest{
		Model:    a.TTSModel,
		Voice:    a.TTSVoice,
		Language: a.TTSLanguage,
		Text:     text,
	})
	if err != nil {
		return Speech{}, apierr.New(apierr.ProviderCallFailure, "erro ao sintetizar áudio", err)
	}
	if len(sp.Audio) == 0 {
		return Speech{}, apierr.New(apierr.ProviderCallFailure, "síntese de áudio vazia", errors.New("empty audio"))
	}
	return sp, nil
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if code := apierr.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}
