package ai

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"carf-backend/apierr"
)

const SenderAssistant = "assistant"

// Audio is the best-effort speech attached to an answer. The zero value
// means no audio.
type Audio struct {
	Base64 string
	MIME   string
}

func (a Audio) Present() bool { return a.Base64 != "" }

func encodeAudio(sp Speech) Audio {
	return Audio{Base64: base64.StdEncoding.EncodeToString(sp.Audio), MIME: sp.MIME}
}

// ErrorDescriptor is the error part of an envelope.
type ErrorDescriptor struct {
	Code    apierr.Code `json:"code"`
	Error   string      `json:"error"`
	Details string      `json:"details"`
	Raw     string      `json:"raw,omitempty"`
}

// Describe turns any error from the pipeline into a descriptor. Errors
// without a code are reported as provider failures.
func Describe(err error) ErrorDescriptor {
	code := apierr.CodeOf(err)
	if code == "" {
		code = apierr.ProviderCallFailure
	}
	d := ErrorDescriptor{Code: code, Details: err.Error(), Raw: apierr.RawOf(err)}
	switch code {
	case apierr.MissingCredential:
		d.Error = err.Error()
		d.Details = "Configuração de API Key ausente."
	case apierr.ProviderCallFailure:
		d.Error = "Erro ao processar a solicitação com o modelo generativo"
	case apierr.MalformedModelOutput:
		d.Error = "Erro ao gerar sugestão de curso"
	default:
		d.Error = string(code)
	}
	return d
}

// ChatEnvelope is the answer to one chat call: either text (plus optional
// audio) or an error, never both and never neither.
type ChatEnvelope struct {
	Sender string
	Text   string
	Audio  Audio
	Err    *ErrorDescriptor
}

// Compose merges the generation outcome and the optional audio.
func Compose(text string, audio Audio, err error) ChatEnvelope {
	if err == nil && strings.TrimSpace(text) == "" {
		err = apierr.New(apierr.ProviderCallFailure, "o modelo generativo retornou uma resposta vazia", nil)
	}
	if err != nil {
		d := Describe(err)
		return ChatEnvelope{Err: &d}
	}
	return ChatEnvelope{Sender: SenderAssistant, Text: text, Audio: audio}
}

func (e ChatEnvelope) Failed() bool { return e.Err != nil }

func (e ChatEnvelope) MarshalJSON() ([]byte, error) {
	if e.Err != nil {
		return json.Marshal(e.Err)
	}
	out := struct {
		Remetente   string  `json:"remetente"`
		Texto       string  `json:"texto"`
		AudioBase64 *string `json:"audio_base64"`
		AudioMIME   string  `json:"audio_mime,omitempty"`
	}{Remetente: e.Sender, Texto: e.Text}
	if e.Audio.Present() {
		b64 := e.Audio.Base64
		out.AudioBase64 = &b64
		out.AudioMIME = e.Audio.MIME
	}
	return json.Marshal(out)
}
