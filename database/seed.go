package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kidspace/metrics"
	"kidspace/models"

	"gorm.io/gorm"
)

// BootstrapReport summarizes what Populate and Bootstrap did
type BootstrapReport struct {
	PlanetsSeeded int
	Admin         models.User
	AdminCreated  bool
}

// String is the confirmation printed by the init-db command
func (r BootstrapReport) String() string {
	return fmt.Sprintf("Initialized the database: %d planets seeded, admin user %q ready.", r.PlanetsSeeded, r.Admin.Nickname)
}

// SeedPlanets inserts SolarSystem in one transaction if, and only if, the
// planets table is empty. It returns the number of rows inserted.
func SeedPlanets(ctx context.Context, db *gorm.DB) (int, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("seed", "planets", start)

	inserted := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PlanetRow{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count planets: %w", err)
		}
		if count > 0 {
			return nil
		}

		rows := make([]PlanetRow, 0, len(SolarSystem))
		for _, p := range SolarSystem {
			rows = append(rows, PlanetRowFromModel(p))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert planets: %w", err)
		}
		inserted = len(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed planets: %w", err)
	}

	metrics.PlanetsSeeded.Add(float64(inserted))
	return inserted, nil
}

// EnsureAdmin makes sure the user "Admin" exists with is_admin set,
// creating or promoting it as needed.
func EnsureAdmin(ctx context.Context, db *gorm.DB) (models.User, bool, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("ensure_admin", "users", start)

	var row UserRow
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("nickname = ?", models.AdminNickname).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = UserRow{Nickname: models.AdminNickname, IsAdmin: true}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("find admin: %w", err)
		case !row.IsAdmin:
			if err := tx.Model(&row).Update("is_admin", true).Error; err != nil {
				return fmt.Errorf("promote admin: %w", err)
			}
			row.IsAdmin = true
		}
		return nil
	})
	if err != nil {
		return models.User{}, false, fmt.Errorf("ensure admin: %w", err)
	}
	return row.ToModel(), created, nil
}

// Populate runs the non destructive steps: seed planets, ensure the admin
func Populate(ctx context.Context, db *gorm.DB) (BootstrapReport, error) {
	var report BootstrapReport

	seeded, err := SeedPlanets(ctx, db)
	if err != nil {
		return report, err
	}
	report.PlanetsSeeded = seeded

	admin, created, err := EnsureAdmin(ctx, db)
	if err != nil {
		return report, err
	}
	report.Admin = admin
	report.AdminCreated = created

	return report, nil
}

// Bootstrap wipes the store, recreates the schema and populates it.
// Meant for fresh or development databases only; never run it concurrently.
func Bootstrap(ctx context.Context, db *gorm.DB) (BootstrapReport, error) {
	if err := Reset(ctx, db); err != nil {
		return BootstrapReport{}, err
	}
	return Populate(ctx, db)
}
