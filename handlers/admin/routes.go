package admin

import (
	"kidspace/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the moderation routes. Every route requires an admin token.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth *middleware.Authenticator) {
	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/pending", h.GetPending)
		admin.PUT("/challenges/:id/approve", h.ApproveChallenge)
		admin.PUT("/solutions/:id/approve", h.ApproveSolution)
		admin.GET("/export", h.Export)
	}
}
