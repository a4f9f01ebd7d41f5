package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// MySQL reads worker profiles and the course catalog from the tables
// `servidores`, `servidor_lacunas` and `catalogo_cursos`. It never writes.
type MySQL struct {
	db *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

func (s *MySQL) Workers(ctx context.Context) ([]Worker, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nome, funcao, vinculo, competencias_concluidas_percentual,
		competencias_principais, trilhas_em_andamento, engajamento_mensal, metricas_gerais
		FROM servidores ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Worker
	for rows.Next() {
		var (
			w                                 Worker
			vinculo                           sql.NullString
			principais, trilhas, eng, metrics sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.Nome, &w.Funcao, &vinculo, &w.CompetenciasConcluidasPercentual,
			&principais, &trilhas, &eng, &metrics); err != nil {
			return nil, err
		}
		w.Vinculo = vinculo.String
		w.CompetenciasPrincipais = rawJSON(principais)
		w.TrilhasEmAndamento = rawJSON(trilhas)
		w.EngajamentoMensal = rawJSON(eng)
		w.MetricasGerais = rawJSON(metrics)
		list = append(list, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range list {
		gaps, err := s.gaps(ctx, list[i].ID)
		if err != nil {
			return nil, fmt.Errorf("lacunas do servidor %d: %w", list[i].ID, err)
		}
		list[i].LacunasIdentificadas = gaps
	}
	return list, nil
}

// gaps keeps insertion order through the ordem column.
func (s *MySQL) gaps(ctx context.Context, workerID int) ([]Gap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT competencia, lacuna_percentual FROM servidor_lacunas
		WHERE servidor_id = ? ORDER BY ordem ASC`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Gap, 0)
	for rows.Next() {
		var g Gap
		if err := rows.Scan(&g.Competencia, &g.LacunaPercentual); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *MySQL) Catalog(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT nome FROM catalogo_cursos ORDER BY ordem ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func rawJSON(v sql.NullString) json.RawMessage {
	if !v.Valid || v.String == "" || !json.Valid([]byte(v.String)) {
		return nil
	}
	return json.RawMessage(v.String)
}
