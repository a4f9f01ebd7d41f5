package migrations

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carf-backend/config"
	"carf-backend/conn"
	"carf-backend/store"
)

func TestSchemaIsIdempotent(t *testing.T) {
	require.Len(t, schema, 3)
	for _, stmt := range schema {
		assert.Contains(t, stmt, "CREATE TABLE IF NOT EXISTS")
	}
}

func TestJSONValue(t *testing.T) {
	assert.False(t, jsonValue(nil).Valid)
	v := jsonValue(json.RawMessage(`{"a":1}`))
	assert.True(t, v.Valid)
	assert.Equal(t, `{"a":1}`, v.String)
	assert.False(t, nullString("").Valid)
}

// TestMigrateAndSeed_RealDB runs against the database in CARF_TEST_DB_HOST.
func TestMigrateAndSeed_RealDB(t *testing.T) {
	host := os.Getenv("CARF_TEST_DB_HOST")
	if host == "" {
		t.Skip("CARF_TEST_DB_HOST not set")
	}
	ctx := context.Background()
	db, err := conn.NewMySQL(ctx, config.DBConfig{
		Host:     host,
		Port:     envOr("CARF_TEST_DB_PORT", "3306"),
		User:     os.Getenv("CARF_TEST_DB_USER"),
		Password: os.Getenv("CARF_TEST_DB_PASSWORD"),
		Name:     os.Getenv("CARF_TEST_DB_NAME"),
	})
	require.NoError(t, err)
	defer db.Close()

	src := store.NewJSONFiles("../data")
	workers, err := src.Workers(ctx)
	require.NoError(t, err)
	catalog, err := src.Catalog(ctx)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Seed(ctx, db, workers, catalog))

	got, err := store.NewMySQL(db).Workers(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(workers))
	assert.Equal(t, workers[0].LacunasIdentificadas, got[0].LacunasIdentificadas)

	gotCatalog, err := store.NewMySQL(db).Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog, gotCatalog)
}

func envOr(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
