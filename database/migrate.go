package database

import (
	"context"
	"fmt"
	"time"

	"kidspace/metrics"

	"gorm.io/gorm"
)

// Migrate creates or updates the four tables from the row definitions
func Migrate(ctx context.Context, db *gorm.DB) error {
	start := time.Now()
	defer metrics.RecordDBOperation("migrate", "all", start)

	if err := db.WithContext(ctx).AutoMigrate(AllTables()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Reset drops every table and recreates the schema. All data is lost.
func Reset(ctx context.Context, db *gorm.DB) error {
	start := time.Now()
	defer metrics.RecordDBOperation("reset", "all", start)

	// the migrator drops children before parents
	if err := db.WithContext(ctx).Migrator().DropTable(AllTables()...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return Migrate(ctx, db)
}
