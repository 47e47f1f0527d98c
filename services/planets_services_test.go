package services

import (
	"context"
	"errors"
	"testing"

	"kidspace/database/dbtest"
	"kidspace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPlanetCache struct {
	planets []models.Planet
	getErr  error
	sets    int
}

func (m *memoryPlanetCache) GetPlanets(ctx context.Context) ([]models.Planet, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	return m.planets, m.planets != nil, nil
}

func (m *memoryPlanetCache) SetPlanets(ctx context.Context, planets []models.Planet) error {
	m.planets = planets
	m.sets++
	return nil
}

func (m *memoryPlanetCache) Invalidate(ctx context.Context) error {
	m.planets = nil
	return nil
}

func TestPlanetService_ListAndGet(t *testing.T) {
	svc := NewPlanetService(dbtest.Populated(t), nil, nil)

	planets, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, planets, 9)
	assert.Equal(t, "Mercury", planets[0].Name)

	earth, err := svc.GetByName(ctx, "earth")
	require.NoError(t, err)
	assert.Contains(t, earth.Description, "home planet")
	assert.NotNil(t, earth.FunFact)

	_, err = svc.GetByName(ctx, "Vulcan")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanetService_UsesCache(t *testing.T) {
	c := &memoryPlanetCache{}
	svc := NewPlanetService(dbtest.Populated(t), c, nil)

	_, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)
	require.Len(t, c.planets, 9)

	c.planets = []models.Planet{{ID: 1, Name: "Cached"}}
	planets, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cached", planets[0].Name)

	require.NoError(t, svc.InvalidateCache(ctx))
	planets, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, planets, 9)
}

func TestPlanetService_CacheErrorFallsBackToStore(t *testing.T) {
	c := &memoryPlanetCache{getErr: errors.New("redis down")}
	svc := NewPlanetService(dbtest.Populated(t), c, nil)

	planets, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, planets, 9)
}
