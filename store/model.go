package store

import "encoding/json"

// Gap is a competency deficit of a worker.
type Gap struct {
	Competencia      string  `json:"competencia" binding:"required"`
	LacunaPercentual float64 `json:"lacuna_percentual"`
}

// Worker is a read-only worker profile. Fields the assistant never
// interprets are kept as raw JSON and passed through to the dashboard.
type Worker struct {
	ID                               int             `json:"id"`
	Nome                             string          `json:"nome"`
	Funcao                           string          `json:"funcao"`
	Vinculo                          string          `json:"vinculo,omitempty"`
	CompetenciasConcluidasPercentual float64         `json:"competencias_concluidas_percentual"`
	CompetenciasPrincipais           json.RawMessage `json:"competencias_principais,omitempty"`
	LacunasIdentificadas             []Gap           `json:"lacunas_identificadas"`
	TrilhasEmAndamento               json.RawMessage `json:"trilhas_em_andamento,omitempty"`
	EngajamentoMensal                json.RawMessage `json:"engajamento_mensal,omitempty"`
	MetricasGerais                   json.RawMessage `json:"metricas_gerais,omitempty"`
}

// FindWorker returns the worker with the given id.
func FindWorker(workers []Worker, id int) (Worker, bool) {
	for _, w := range workers {
		if w.ID == id {
			return w, true
		}
	}
	return Worker{}, false
}
