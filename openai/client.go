package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"carf-backend/ai"
)

const planSchemaName = "trilha_sugerida"

type Client struct {
	api *openai.Client
}

// Connector returns an ai.Connector for the OpenAI API. baseURL overrides the
// default endpoint when set.
func Connector(baseURL string) ai.Connector {
	return func(_ context.Context, apiKey string) (ai.Provider, error) {
		cfg := openai.DefaultConfig(apiKey)
		if strings.TrimSpace(baseURL) != "" {
			cfg.BaseURL = strings.TrimRight(baseURL, "/")
		}
		return &Client{api: openai.NewClientWithConfig(cfg)}, nil
	}
}

func (c *Client) Generate(ctx context.Context, req ai.Request) (string, error) {
	creq := openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Mode == ai.ModeJSON {
		creq.ResponseFormat = responseFormat(req.Schema)
	}
	resp, err := c.api.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func responseFormat(s *ai.Schema) *openai.ChatCompletionResponseFormat {
	if s == nil {
		return &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	def := toDefinition(s)
	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:   planSchemaName,
			Schema: &def,
			Strict: true,
		},
	}
}

func (c *Client) Synthesize(ctx context.Context, req ai.SpeechRequest) (ai.Speech, error) {
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Text,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return ai.Speech{}, err
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return ai.Speech{}, fmt.Errorf("openai: read speech: %w", err)
	}
	return ai.Speech{Audio: audio, MIME: "audio/mpeg"}, nil
}
