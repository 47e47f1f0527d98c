package services

import (
	"context"
	"strings"
	"time"

	"kidspace/cache"
	"kidspace/database"
	"kidspace/metrics"
	"kidspace/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PlanetService struct {
	DB    *gorm.DB
	Cache cache.PlanetCache
	Log   logrus.FieldLogger
}

func NewPlanetService(db *gorm.DB, c cache.PlanetCache, log logrus.FieldLogger) *PlanetService {
	return &PlanetService{DB: db, Cache: c, Log: log}
}

// List returns every planet in seeding order. Cache failures fall back to the store.
func (s *PlanetService) List(ctx context.Context) ([]models.Planet, error) {
	if s.Cache != nil {
		planets, ok, err := s.Cache.GetPlanets(ctx)
		if err != nil {
			s.warn(err, "planet cache read failed")
		} else if ok {
			return planets, nil
		}
	}

	start := time.Now()
	var rows []database.PlanetRow
	err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error
	metrics.RecordDBOperation("list", "planets", start)
	if err != nil {
		return nil, err
	}
	planets := database.PlanetsToModels(rows)

	if s.Cache != nil && len(planets) > 0 {
		if err := s.Cache.SetPlanets(ctx, planets); err != nil {
			s.warn(err, "planet cache write failed")
		}
	}
	return planets, nil
}

// GetByName looks a planet up, ignoring case
func (s *PlanetService) GetByName(ctx context.Context, name string) (models.Planet, error) {
	planets, err := s.List(ctx)
	if err != nil {
		return models.Planet{}, err
	}
	name = strings.TrimSpace(name)
	for _, p := range planets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return models.Planet{}, ErrNotFound
}

// InvalidateCache drops the cached list, needed after a bootstrap
func (s *PlanetService) InvalidateCache(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Invalidate(ctx)
}

func (s *PlanetService) warn(err error, msg string) {
	if s.Log != nil {
		s.Log.WithError(err).Warn(msg)
	}
}
