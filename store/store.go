package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Source provides the two read-only collections the assistant works on.
type Source interface {
	Workers(ctx context.Context) ([]Worker, error)
	Catalog(ctx context.Context) ([]string, error)
}

const (
	workersFile = "servidores.json"
	catalogFile = "catalogo_cursos.json"
)

// JSONFiles reads the mock collections from a data directory on every call.
type JSONFiles struct {
	Dir string
}

func NewJSONFiles(dir string) *JSONFiles { return &JSONFiles{Dir: dir} }

func (s *JSONFiles) Workers(ctx context.Context) ([]Worker, error) {
	var out []Worker
	if err := loadJSON(filepath.Join(s.Dir, workersFile), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *JSONFiles) Catalog(ctx context.Context) ([]string, error) {
	var out []string
	if err := loadJSON(filepath.Join(s.Dir, catalogFile), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func loadJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("arquivo de dados não encontrado: %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("erro ao decodificar JSON do arquivo: %s: %w", path, err)
	}
	return nil
}
