package challenges

import (
	"kidspace/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to challenges and their solutions
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	// 10 submissions per minute per IP on top of the per user limit
	submissionRateLimiter := middleware.NewRateLimiter(10, 10)

	challenges := r.Group("/challenges")
	{
		challenges.GET("", h.GetChallenges)
		challenges.GET("/:id", h.Auth.OptionalAuth(), h.GetChallenge)
		challenges.POST("", h.Auth.AuthMiddleware(), middleware.RateLimiterMiddleware(submissionRateLimiter), h.CreateChallenge)

		challenges.GET("/:id/solutions", h.GetSolutions)
		challenges.POST("/:id/solutions", h.Auth.AuthMiddleware(), middleware.RateLimiterMiddleware(submissionRateLimiter), h.CreateSolution)
	}
}
