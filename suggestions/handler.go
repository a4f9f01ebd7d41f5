package suggestions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"carf-backend/ai"
	"carf-backend/logger"
	"carf-backend/response"
	"carf-backend/store"
)

// Planner produces a course plan for a worker.
type Planner interface {
	SuggestCourses(ctx context.Context, w store.Worker, catalog []string) (*ai.SuggestionPlan, error)
}

// Request selects the worker. A non-empty Gaps replaces the stored gaps.
type Request struct {
	ID   *int        `json:"id" binding:"required"`
	Gaps []store.Gap `json:"gaps" binding:"omitempty,dive"`
}

type Handler struct {
	src     store.Source
	planner Planner
	log     *logger.Logger
}

func NewHandler(src store.Source, planner Planner, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{src: src, planner: planner, log: log}
}

// RegisterRoutes mounts the endpoint behind mw (rate limiting).
func (h *Handler) RegisterRoutes(r gin.IRoutes, mw ...gin.HandlerFunc) {
	r.POST("/sugerir_trilha", append(mw, h.suggest)...)
}

func (h *Handler) suggest(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "corpo inválido: "+err.Error())
		return
	}
	ctx := c.Request.Context()

	workers, err := h.src.Workers(ctx)
	if err != nil {
		h.log.Error("load workers", "error", err)
		response.Error(c, err)
		return
	}
	catalog, err := h.src.Catalog(ctx)
	if err != nil {
		h.log.Error("load catalog", "error", err)
		response.Error(c, err)
		return
	}
	w, ok := store.FindWorker(workers, *req.ID)
	if !ok {
		response.NotFound(c, fmt.Sprintf("Servidor com ID %d não encontrado.", *req.ID))
		return
	}
	if len(req.Gaps) > 0 {
		w.LacunasIdentificadas = req.Gaps
	}

	plan, err := h.planner.SuggestCourses(ctx, w, catalog)
	if err != nil {
		h.log.Error("course suggestion failed", "servidor_id", w.ID, "error", err, "request_id", c.GetString("request_id"))
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
