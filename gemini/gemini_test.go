package gemini

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"carf-backend/ai"
)

func TestPCMToWAVHeader(t *testing.T) {
	pcm := []byte{1, 2, 3, 4}
	wav := pcmToWAV(pcm, 24000)

	require.Len(t, wav, 48)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(wav[4:8]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(wav[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(wav[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(wav[28:32]))
	assert.Equal(t, "data", string(wav[36:40]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(wav[40:44]))
	assert.Equal(t, pcm, wav[44:])
}

func TestSampleRateOf(t *testing.T) {
	assert.Equal(t, 16000, sampleRateOf("audio/L16;codec=pcm;rate=16000"))
	assert.Equal(t, defaultSampleRate, sampleRateOf("audio/L16"))
	assert.Equal(t, defaultSampleRate, sampleRateOf("audio/L16;rate=abc"))
}

func TestToSchemaPlan(t *testing.T) {
	s := toSchema(ai.PlanSchema([]string{"Gestão de Processos"}))

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"servidor_id", "trilha_sugerida"}, s.Required)
	steps := s.Properties["trilha_sugerida"]
	require.NotNil(t, steps)
	assert.Equal(t, genai.TypeArray, steps.Type)
	require.NotNil(t, steps.MaxItems)
	assert.Equal(t, int64(4), *steps.MaxItems)
	course := steps.Items.Properties["curso_sugerido"]
	assert.Equal(t, []string{"Gestão de Processos"}, course.Enum)
	assert.Equal(t, genai.TypeInteger, steps.Items.Properties["passo"].Type)
}

func TestToSchemaNil(t *testing.T) {
	assert.Nil(t, toSchema(nil))
}

func TestGenerationConfig(t *testing.T) {
	assert.Nil(t, generationConfig(ai.Request{Mode: ai.ModeText}))

	cfg := generationConfig(ai.Request{Mode: ai.ModeJSON, Schema: ai.PlanSchema(nil)})
	require.NotNil(t, cfg)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.NotNil(t, cfg.ResponseSchema)
}

func TestSpeechConfig(t *testing.T) {
	cfg := speechConfig(ai.SpeechRequest{Voice: "Kore", Language: "pt-BR"})
	assert.Equal(t, []string{"audio"}, cfg.ResponseModalities)
	assert.Equal(t, "pt-BR", cfg.SpeechConfig.LanguageCode)
	assert.Equal(t, "Kore", cfg.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

	assert.Nil(t, speechConfig(ai.SpeechRequest{Language: "pt-BR"}).SpeechConfig.VoiceConfig)
}
