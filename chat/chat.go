package chat

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"carf-backend/ai"
	"carf-backend/files"
	"carf-backend/logger"
	"carf-backend/response"
)

// Assistant answers one stateless chat request.
type Assistant interface {
	Chat(ctx context.Context, req ai.ChatRequest) ai.ChatEnvelope
}

// Extractor turns an uploaded file into a bounded excerpt.
type Extractor func(path, mimeType string) files.Excerpt

type Handler struct {
	AI        Assistant
	Extract   Extractor
	UploadDir string
	MaxUpload int64
	log       *logger.Logger
}

func NewHandler(assistant Assistant, uploadDir string, maxUploadMB int, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		AI:        assistant,
		Extract:   files.Extract,
		UploadDir: uploadDir,
		MaxUpload: int64(maxUploadMB) << 20,
		log:       log,
	}
}

// RegisterRoutes mounts the endpoint behind mw (rate limiting).
func (h *Handler) RegisterRoutes(r gin.IRoutes, mw ...gin.HandlerFunc) {
	r.POST("/chat_institucional", append(mw, h.Message)...)
}

type messageInput struct {
	Pergunta   string `json:"pergunta" form:"pergunta"`
	GerarAudio bool   `json:"gerar_audio" form:"gerar_audio"`
}

// Message accepts JSON {pergunta, gerar_audio} or a multipart form with the
// same fields plus an optional "file".
func (h *Handler) Message(c *gin.Context) {
	var (
		in         messageInput
		attachment string
	)
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if h.MaxUpload > 0 {
			// room for the other form fields
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUpload+1<<20)
		}
		in.Pergunta = c.PostForm("pergunta")
		if v := strings.TrimSpace(c.PostForm("gerar_audio")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				response.BadRequest(c, "gerar_audio inválido: "+v)
				return
			}
			in.GerarAudio = b
		}
		text, ok := h.attachment(c)
		if !ok {
			return
		}
		attachment = text
	} else if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "corpo inválido: "+err.Error())
		return
	}

	if strings.TrimSpace(in.Pergunta) == "" && attachment == "" {
		response.BadRequest(c, "pergunta vazia")
		return
	}

	env := h.AI.Chat(c.Request.Context(), ai.ChatRequest{
		Question:   in.Pergunta,
		Attachment: attachment,
		Audio:      in.GerarAudio,
	})
	if env.Failed() {
		h.log.Error("chat failed", "code", env.Err.Code, "details", env.Err.Details, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, response.ErrorBody{
			Detail: env.Err.Details,
			Code:   env.Err.Code,
			Raw:    env.Err.Raw,
		})
		return
	}
	c.JSON(http.StatusOK, env)
}

// attachment saves the optional upload, extracts it and removes it. The
// second result is false when a response has already been written.
func (h *Handler) attachment(c *gin.Context) (string, bool) {
	up, err := c.FormFile("file")
	if err == http.ErrMissingFile {
		return "", true
	}
	if err != nil {
		response.BadRequest(c, "falha ao ler o arquivo enviado: "+err.Error())
		return "", false
	}
	if up.Size <= 0 {
		response.BadRequest(c, "arquivo vazio")
		return "", false
	}
	if h.MaxUpload > 0 && up.Size > h.MaxUpload {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, response.ErrorBody{
			Detail: fmt.Sprintf("arquivo excede o limite de %d MB", h.MaxUpload>>20),
		})
		return "", false
	}

	dir := filepath.Join(h.UploadDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.log.Error("create upload dir", "error", err)
		response.Error(c, err)
		return "", false
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			h.log.Warn("remove upload", "dir", dir, "error", err)
		}
	}()

	name := filepath.Base(up.Filename)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		name = "anexo"
	}
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(up, path); err != nil {
		h.log.Error("save upload", "error", err)
		response.Error(c, err)
		return "", false
	}

	ex := h.Extract(path, up.Header.Get("Content-Type"))
	if !ex.Usable() {
		h.log.Warn("attachment degraded", "file", name, "status", ex.Status.String(), "code", ex.Code(), "error", ex.Err, "request_id", c.GetString("request_id"))
	}
	return ex.Text, true
}
