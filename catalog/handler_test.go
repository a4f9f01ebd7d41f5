package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carf-backend/store"
)

type failingSource struct{}

func (failingSource) Workers(context.Context) ([]store.Worker, error) { return nil, nil }
func (failingSource) Catalog(context.Context) ([]string, error) {
	return nil, errors.New("arquivo de dados não encontrado")
}

func get(src store.Source) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(src, nil).RegisterRoutes(r.Group("/api"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/catalogo_cursos", nil))
	return w
}

func TestListCatalog(t *testing.T) {
	w := get(store.NewJSONFiles("../data"))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cursos []string `json:"cursos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Cursos, "Gestão de Processos")
}

func TestListCatalogError(t *testing.T) {
	w := get(failingSource{})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "arquivo de dados")
}
