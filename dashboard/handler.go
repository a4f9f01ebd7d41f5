package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"carf-backend/logger"
	"carf-backend/response"
	"carf-backend/store"
)

type Profile struct {
	Nome                             string          `json:"nome"`
	Funcao                           string          `json:"funcao"`
	Vinculo                          string          `json:"vinculo"`
	CompetenciasConcluidasPercentual float64         `json:"competencias_concluidas_percentual"`
	CompetenciasPrincipais           json.RawMessage `json:"competencias_principais"`
}

// Data is the payload of the dashboard screen, built from the first worker.
type Data struct {
	MetricasGerais json.RawMessage `json:"metricas_gerais"`
	Perfil         Profile         `json:"perfil"`
	Lacunas        []store.Gap     `json:"lacunas"`
	Trilhas        json.RawMessage `json:"trilhas"`
	Engajamento    json.RawMessage `json:"engajamento"`
}

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
	r.GET("/dashboard_data", h.get)
}

func (h *Handler) get(c *gin.Context) {
	workers, err := h.src.Workers(c.Request.Context())
	if err != nil {
		h.log.Error("load workers", "error", err)
		response.Error(c, err)
		return
	}
	if len(workers) == 0 {
		response.NotFound(c, "Nenhum servidor encontrado nos dados mock.")
		return
	}
	c.JSON(http.StatusOK, Build(workers[0]))
}

// Build projects w onto the dashboard payload. Absent raw fields are sent
// as null.
func Build(w store.Worker) Data {
	lacunas := w.LacunasIdentificadas
	if lacunas == nil {
		lacunas = []store.Gap{}
	}
	return Data{
		MetricasGerais: orNull(w.MetricasGerais),
		Perfil: Profile{
			Nome:                             w.Nome,
			Funcao:                           w.Funcao,
			Vinculo:                          w.Vinculo,
			CompetenciasConcluidasPercentual: w.CompetenciasConcluidasPercentual,
			CompetenciasPrincipais:           orNull(w.CompetenciasPrincipais),
		},
		Lacunas:     lacunas,
		Trilhas:     orNull(w.TrilhasEmAndamento),
		Engajamento: orNull(w.EngajamentoMensal),
	}
}

func orNull(m json.RawMessage) json.RawMessage {
	if len(m) == 0 {
		return json.RawMessage("null")
	}
	return m
}
