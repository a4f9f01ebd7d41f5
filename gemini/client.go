package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"carf-backend/ai"
)

type Provider struct {
	client *genai.Client
}

// Connect builds a Gemini API client for apiKey. It matches ai.Connector.
func Connect(ctx context.Context, apiKey string) (ai.Provider, error) {
	return Connector("")(ctx, apiKey)
}

// Connector is Connect against baseURL. An empty baseURL keeps the SDK default.
func Connector(baseURL string) ai.Connector {
	return func(ctx context.Context, apiKey string) (ai.Provider, error) {
		cfg := &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		}
		if baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
		}
		client, err := genai.NewClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("gemini: new client: %w", err)
		}
		return &Provider{client: client}, nil
	}
}

func (p *Provider) Generate(ctx context.Context, req ai.Request) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), generationConfig(req))
	if err != nil {
		return "", err
	}
	parts, err := firstParts(resp)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, part := range parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func generationConfig(req ai.Request) *genai.GenerateContentConfig {
	if req.Mode != ai.ModeJSON {
		return nil
	}
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toSchema(req.Schema),
	}
}

func (p *Provider) Synthesize(ctx context.Context, req ai.SpeechRequest) (ai.Speech, error) {
	resp, err := p.client.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Text}}}},
		speechConfig(req),
	)
	if err != nil {
		return ai.Speech{}, err
	}
	parts, err := firstParts(resp)
	if err != nil {
		return ai.Speech{}, err
	}
	for _, part := range parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		if strings.HasPrefix(part.InlineData.MIMEType, "audio/wav") {
			return ai.Speech{Audio: part.InlineData.Data, MIME: "audio/wav"}, nil
		}
		wav := pcmToWAV(part.InlineData.Data, sampleRateOf(part.InlineData.MIMEType))
		return ai.Speech{Audio: wav, MIME: "audio/wav"}, nil
	}
	return ai.Speech{}, errors.New("gemini: response has no audio")
}

func speechConfig(req ai.SpeechRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"audio"},
		SpeechConfig:       &genai.SpeechConfig{LanguageCode: req.Language},
	}
	if req.Voice != "" {
		cfg.SpeechConfig.VoiceConfig = &genai.VoiceConfig{
			PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
		}
	}
	return cfg
}

func firstParts(resp *genai.GenerateContentResponse) ([]*genai.Part, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini: empty response")
	}
	return resp.Candidates[0].Content.Parts, nil
}
