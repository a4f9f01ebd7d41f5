package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carf-backend/apierr"
	"carf-backend/prompts"
)

func newTestService(p *fakeProvider, strict bool) *Service {
	return NewService(newTestAdapter(p, nil), prompts.New(""), nil, strict)
}

func TestSuggestCoursesScenario(t *testing.T) {
	p := &fakeProvider{text: validPlan}
	svc := newTestService(p, true)

	plan, err := svc.SuggestCourses(context.Background(), ana(), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, 7, plan.ServidorID)
	assert.Len(t, plan.TrilhaSugerida, 2)

	require.Len(t, p.requests, 1)
	assert.Contains(t, p.requests[0].Prompt, "- Excel Avançado (Lacuna: 40%)")
	assert.Contains(t, p.requests[0].Prompt, "- Gestão de Processos")
	assert.Equal(t, ModeJSON, p.requests[0].Mode)
}

func TestSuggestCoursesMalformed(t *testing.T) {
	svc := newTestService(&fakeProvider{text: "Claro! Aqui está a trilha."}, false)

	_, err := svc.SuggestCourses(context.Background(), ana(), testCatalog)
	require.Error(t, err)
	assert.Equal(t, apierr.MalformedModelOutput, apierr.CodeOf(err))
	assert.Equal(t, "Claro! Aqui está a trilha.", apierr.RawOf(err))
}

func TestSuggestCoursesOffCatalog(t *testing.T) {
	raw := `{"servidor_id":7,"trilha_sugerida":[{"passo":1,"curso_sugerido":"Python Básico","justificativa":"x"}]}`

	plan, err := newTestService(&fakeProvider{text: raw}, false).SuggestCourses(context.Background(), ana(), testCatalog)
	require.NoError(t, err)
	assert.Equal(t, "Python Básico", plan.TrilhaSugerida[0].CursoSugerido)

	_, err = newTestService(&fakeProvider{text: raw}, true).SuggestCourses(context.Background(), ana(), testCatalog)
	require.Error(t, err)
	assert.Equal(t, apierr.MalformedModelOutput, apierr.CodeOf(err))
	assert.Equal(t, raw, apierr.RawOf(err))
}

func TestSuggestCoursesProviderFailure(t *testing.T) {
	svc := newTestService(&fakeProvider{genErr: errors.New("503")}, false)
	_, err := svc.SuggestCourses(context.Background(), ana(), testCatalog)
	assert.Equal(t, apierr.ProviderCallFailure, apierr.CodeOf(err))
}

func TestChatWithoutAudioNeverSynthesizes(t *testing.T) {
	p := &fakeProvider{text: "O CARF julga recursos."}
	env := newTestService(p, false).Chat(context.Background(), ChatRequest{Question: "O que é o CARF?"})

	require.False(t, env.Failed())
	assert.Equal(t, "O CARF julga recursos.", env.Text)
	assert.False(t, env.Audio.Present())
	assert.Empty(t, p.speechReqs)
	assert.Contains(t, p.requests[0].Prompt, "Nenhum documento anexo fornecido.")
}

func TestChatWithAudio(t *testing.T) {
	p := &fakeProvider{text: "Resposta", speech: Speech{Audio: []byte("RIFF"), MIME: "audio/wav"}}
	env := newTestService(p, false).Chat(context.Background(), ChatRequest{Question: "q", Audio: true})

	require.False(t, env.Failed())
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("RIFF")), env.Audio.Base64)
	assert.Equal(t, "audio/wav", env.Audio.MIME)
	require.Len(t, p.speechReqs, 1)
	assert.Equal(t, "Resposta", p.speechReqs[0].Text)
}

func TestChatAudioFailureDegrades(t *testing.T) {
	p := &fakeProvider{text: "Resposta", speechErr: errors.New("tts down")}
	env := newTestService(p, false).Chat(context.Background(), ChatRequest{Question: "q", Audio: true})

	require.False(t, env.Failed())
	assert.Equal(t, "Resposta", env.Text)
	assert.False(t, env.Audio.Present())
}

func TestChatIncludesAttachment(t *testing.T) {
	p := &fakeProvider{text: "ok"}
	newTestService(p, false).Chat(context.Background(), ChatRequest{Question: "Resuma", Attachment: "Acórdão 1234"})
	assert.Contains(t, p.requests[0].Prompt, "Acórdão 1234")
}

func TestChatMissingCredential(t *testing.T) {
	p := &fakeProvider{text: "nunca"}
	svc := newTestService(p, false)
	svc.adapter.Lookup = func(string) string { return "" }

	env := svc.Chat(context.Background(), ChatRequest{Question: "q", Audio: true})
	require.True(t, env.Failed())
	assert.Equal(t, apierr.MissingCredential, env.Err.Code)
	assert.Empty(t, p.requests)
	assert.Empty(t, p.speechReqs)
}
