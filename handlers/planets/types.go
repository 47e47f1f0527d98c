package planets

import "kidspace/services"

// Error messages constants
const (
	ErrPlanetNotFound     = "Planet not found"
	ErrFailedToGetPlanets = "Failed to get planets"
)

// Handler serves the read-only solar system catalogue
type Handler struct {
	Planets *services.PlanetService
}

func NewHandler(planets *services.PlanetService) *Handler {
	return &Handler{Planets: planets}
}
