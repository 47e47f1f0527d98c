package database

import (
	"path/filepath"
	"testing"

	"kidspace/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "instance/app.db?_pragma=foreign_keys(1)", SQLiteDSN("instance/app.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", SQLiteDSN("file:x?mode=memory"))
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{DriverPostgres, DriverMySQL} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Host: "db", User: "u", Name: "n"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_CreatesSQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "app.db")

	db, err := Open(config.DatabaseConfig{Driver: DriverSQLite, Path: path}, nil)
	require.NoError(t, err)
	defer Close(db)

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.FileExists(t, path)
}
