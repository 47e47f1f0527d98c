package v1

import (
	"kidspace/handlers/admin"
	"kidspace/handlers/approvals"
	"kidspace/handlers/auth"
	"kidspace/handlers/challenges"
	"kidspace/handlers/planets"
	"kidspace/middleware"
	"kidspace/realtime"
	"kidspace/services"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the v1 handlers need
type Deps struct {
	Users         *services.UserService
	Challenges    *services.ChallengeService
	Solutions     *services.SolutionService
	Planets       *services.PlanetService
	Auth          *middleware.Authenticator
	Hub           *realtime.Hub
	SecureCookies bool
}

// Register the endpoints for the v1 API
func Register(r *gin.Engine, deps Deps) {
	v1 := r.Group("/api/v1")

	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(6000, 600) // 100 requests per second, 600 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	auth.RegisterRoutes(v1, auth.NewHandler(deps.Users, deps.Auth, deps.SecureCookies))
	planets.RegisterRoutes(v1, planets.NewHandler(deps.Planets))
	challenges.RegisterRoutes(v1, challenges.NewHandler(deps.Challenges, deps.Solutions, deps.Auth))
	admin.RegisterRoutes(v1, admin.NewHandler(deps.Users, deps.Challenges, deps.Solutions), deps.Auth)
	if deps.Hub != nil {
		approvals.RegisterRoutes(v1, deps.Hub)
	}

	RegisterMetricsRoutes(v1)
}
