package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"kidspace/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "instance", "app.db"))
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, initDB(&stdout, &stderr), stderr.String())
		assert.Equal(t, "Initialized the database: 9 planets seeded, admin user \"Admin\" ready.\n", stdout.String())
	}
}

func TestInitDB_Failure(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, initDB(&stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.NotEmpty(t, stderr.String())
}

func TestInitDB_InvalidatesPlanetCache(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set(cache.PlanetsCacheKey, `[{"name":"Vulcan"}]`))

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, initDB(&stdout, &stderr), stderr.String())
	assert.False(t, mr.Exists(cache.PlanetsCacheKey))
}
