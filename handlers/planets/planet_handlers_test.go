package planets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kidspace/database/dbtest"
	"kidspace/models"
	"kidspace/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(services.NewPlanetService(dbtest.Populated(t), nil, nil))
	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

func TestGetPlanets(t *testing.T) {
	r := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/planets", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var planets []models.Planet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &planets))
	require.Len(t, planets, 9)
	assert.Equal(t, "Pluto", planets[8].Name)
}

func TestGetPlanet(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/planets/EARTH", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var earth models.Planet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &earth))
	assert.Equal(t, "Earth", earth.Name)
	assert.NotNil(t, earth.FunFact)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/planets/Vulcan", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Planet not found"}`, w.Body.String())
}
