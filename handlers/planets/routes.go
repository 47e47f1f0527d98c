package planets

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to planets
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	planets := r.Group("/planets")
	{
		planets.GET("", h.GetPlanets)
		planets.GET("/:name", h.GetPlanet)
	}
}
