// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"kidspace/config"
	"kidspace/database"

	"gorm.io/gorm"
)

var counter atomic.Int64

// Open returns an empty, migrated in-memory SQLite store private to t
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, counter.Add(1))

	db, err := database.Open(config.DatabaseConfig{Driver: database.DriverSQLite, DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Populated is Open followed by database.Populate
func Populated(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	if _, err := database.Populate(context.Background(), db); err != nil {
		t.Fatalf("populate test database: %v", err)
	}
	return db
}
