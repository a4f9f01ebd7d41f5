package chat

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carf-backend/ai"
	"carf-backend/apierr"
)

type fakeAssistant struct {
	env  ai.ChatEnvelope
	reqs []ai.ChatRequest
}

func (f *fakeAssistant) Chat(_ context.Context, req ai.ChatRequest) ai.ChatEnvelope {
	f.reqs = append(f.reqs, req)
	return f.env
}

func setupRouter(t *testing.T, a Assistant) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	r := gin.New()
	NewHandler(a, dir, 1, nil).RegisterRoutes(r.Group("/api"))
	return r, dir
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat_institucional", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, r *gin.Engine, fields map[string]string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat_institucional", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

func okEnvelope() ai.ChatEnvelope {
	return ai.Compose("Priorize pelo tempo de estoque.", ai.Audio{}, nil)
}

func TestMessageJSONWithoutAudio(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	w := postJSON(r, `{"pergunta":"Como priorizar processos antigos?","gerar_audio":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"remetente":"assistant","texto":"Priorize pelo tempo de estoque.","audio_base64":null}`, w.Body.String())

	require.Len(t, a.reqs, 1)
	assert.Equal(t, ai.ChatRequest{Question: "Como priorizar processos antigos?"}, a.reqs[0])
}

func TestMessageJSONAudioFlag(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	postJSON(r, `{"pergunta":"Oi","gerar_audio":true}`)
	require.Len(t, a.reqs, 1)
	assert.True(t, a.reqs[0].Audio)
}

func TestMessageErrorEnvelopeIs500(t *testing.T) {
	_, cerr := ai.Credential(func(string) string { return "" }, "GEMINI_API_KEY")
	a := &fakeAssistant{env: ai.Compose("", ai.Audio{}, cerr)}
	r, _ := setupRouter(t, a)

	w := postJSON(r, `{"pergunta":"Oi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Configuração de API Key ausente.", body["detail"])
	assert.Equal(t, string(apierr.MissingCredential), body["code"])
}

func TestMessageBlankQuestion(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	assert.Equal(t, http.StatusBadRequest, postJSON(r, `{"pergunta":"   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, `{`).Code)
	assert.Empty(t, a.reqs)
}

func TestMessageMultipartCSVAttachment(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, dir := setupRouter(t, a)

	var csvBuf bytes.Buffer
	cw := csv.NewWriter(&csvBuf)
	require.NoError(t, cw.WriteAll([][]string{{"processo", "dias"}, {"A-1", "400"}, {"A-2", "35"}}))

	w := postForm(t, r, map[string]string{"pergunta": "Resuma a planilha", "gerar_audio": "true"}, "estoque.csv", csvBuf.Bytes())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, a.reqs, 1)
	assert.Equal(t, "Resuma a planilha", a.reqs[0].Question)
	assert.True(t, a.reqs[0].Audio)
	assert.Contains(t, a.reqs[0].Attachment, "Dados estruturados (primeiras 5 linhas):")
	assert.Contains(t, a.reqs[0].Attachment, "A-1")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "upload must be removed")
}

func TestMessageMultipartUnsupportedAttachment(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	w := postForm(t, r, map[string]string{"pergunta": "Leia"}, "notas.txt", []byte("texto"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, a.reqs, 1)
	assert.Equal(t, "Tipo de arquivo '.txt' não suportado pelo Agente de Produtividade.", a.reqs[0].Attachment)
}

func TestMessageMultipartWithoutFile(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	w := postForm(t, r, map[string]string{"pergunta": "Oi"}, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, a.reqs, 1)
	assert.Empty(t, a.reqs[0].Attachment)
	assert.False(t, a.reqs[0].Audio)
}

func TestMessageMultipartBadAudioFlag(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	w := postForm(t, r, map[string]string{"pergunta": "Oi", "gerar_audio": "talvez"}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, a.reqs)
}

func TestMessageUploadTooLarge(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, _ := setupRouter(t, a)

	big := bytes.Repeat([]byte("a,b\n"), (1<<20)/4+10)
	w := postForm(t, r, map[string]string{"pergunta": "Oi"}, "grande.csv", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Empty(t, a.reqs)
}

func TestMessageMultipartDotDotFilename(t *testing.T) {
	a := &fakeAssistant{env: okEnvelope()}
	r, dir := setupRouter(t, a)

	w := postForm(t, r, map[string]string{"pergunta": "Leia"}, "..", []byte("conteúdo"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, a.reqs, 1)
	assert.Equal(t, "Tipo de arquivo '' não suportado pelo Agente de Produtividade.", a.reqs[0].Attachment)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
