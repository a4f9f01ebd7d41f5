package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carf-backend/logger"
	"carf-backend/response"
	"carf-backend/store"
)

// Handler lists the course catalog suggestions are drawn from.
type Handler struct {
	src store.Source
	log *logger.Logger
}

func NewHandler(src store.Source, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{src: src, log: log}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/catalogo_cursos", h.list)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.src.Catalog(c.Request.Context())
	if err != nil {
		h.log.Error("load catalog", "error", err)
		response.Error(c, err)
		return
	}
	if items == nil {
		items = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"cursos": items})
}
