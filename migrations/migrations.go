package migrations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"carf-backend/store"
)

// schema creates the tables store.MySQL reads from.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS servidores (
		id INT PRIMARY KEY,
		nome VARCHAR(191) NOT NULL,
		funcao VARCHAR(191) NOT NULL,
		vinculo VARCHAR(191) NULL,
		competencias_concluidas_percentual DECIMAL(5,2) NOT NULL DEFAULT 0,
		competencias_principais JSON NULL,
		trilhas_em_andamento JSON NULL,
		engajamento_mensal JSON NULL,
		metricas_gerais JSON NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	`CREATE TABLE IF NOT EXISTS servidor_lacunas (
		id INT AUTO_INCREMENT PRIMARY KEY,
		servidor_id INT NOT NULL,
		ordem INT NOT NULL,
		competencia VARCHAR(191) NOT NULL,
		lacuna_percentual DECIMAL(5,2) NOT NULL DEFAULT 0,
		UNIQUE KEY uq_servidor_ordem (servidor_id, ordem),
		CONSTRAINT fk_lacuna_servidor FOREIGN KEY (servidor_id) REFERENCES servidores(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
	`CREATE TABLE IF NOT EXISTS catalogo_cursos (
		id INT AUTO_INCREMENT PRIMARY KEY,
		ordem INT NOT NULL,
		nome VARCHAR(191) NOT NULL UNIQUE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

// Migrate creates required tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is not initialized")
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed replaces the content of the three tables with workers and catalog in
// one transaction. It is an operator tool; the API never writes.
func Seed(ctx context.Context, db *sql.DB, workers []store.Worker, catalog []string) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM servidor_lacunas", "DELETE FROM servidores", "DELETE FROM catalogo_cursos"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, w := range workers {
		if _, err = tx.ExecContext(ctx, `INSERT INTO servidores (id, nome, funcao, vinculo, competencias_concluidas_percentual,
			competencias_principais, trilhas_em_andamento, engajamento_mensal, metricas_gerais)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			w.ID, w.Nome, w.Funcao, nullString(w.Vinculo), w.CompetenciasConcluidasPercentual,
			jsonValue(w.CompetenciasPrincipais), jsonValue(w.TrilhasEmAndamento),
			jsonValue(w.EngajamentoMensal), jsonValue(w.MetricasGerais)); err != nil {
			return fmt.Errorf("servidor %d: %w", w.ID, err)
		}
		for i, g := range w.LacunasIdentificadas {
			if _, err = tx.ExecContext(ctx, `INSERT INTO servidor_lacunas (servidor_id, ordem, competencia, lacuna_percentual)
				VALUES (?, ?, ?, ?)`, w.ID, i, g.Competencia, g.LacunaPercentual); err != nil {
				return fmt.Errorf("lacuna %q do servidor %d: %w", g.Competencia, w.ID, err)
			}
		}
	}
	for i, name := range catalog {
		if _, err = tx.ExecContext(ctx, `INSERT INTO catalogo_cursos (ordem, nome) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("curso %q: %w", name, err)
		}
	}
	return tx.Commit()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func jsonValue(m json.RawMessage) sql.NullString {
	if len(m) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(m), Valid: true}
}
