package planets

import (
	"errors"
	"net/http"

	"kidspace/services"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
)

// GetPlanets lists the seeded planets
// @Summary List planets
// @Description Get every planet of the solar system, Pluto included, in seeding order
// @Tags Planets
// @Produce json
// @Success 200 {array} models.Planet
// @Failure 500 {object} map[string]string
// @Router /planets [get]
func (h *Handler) GetPlanets(c *gin.Context) {
	planets, err := h.Planets.List(c.Request.Context())
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToGetPlanets)
		return
	}
	c.JSON(http.StatusOK, planets)
}

// GetPlanet returns one planet by name
// @Summary Get a planet
// @Description Get a planet by its name, ignoring case
// @Tags Planets
// @Produce json
// @Param name path string true "Planet name"
// @Success 200 {object} models.Planet
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /planets/{name} [get]
func (h *Handler) GetPlanet(c *gin.Context) {
	planet, err := h.Planets.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.Error(c, http.StatusNotFound, ErrPlanetNotFound)
			return
		}
		response.FromServiceError(c, err, ErrFailedToGetPlanets)
		return
	}
	c.JSON(http.StatusOK, planet)
}
