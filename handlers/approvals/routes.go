package approvals

import (
	"kidspace/realtime"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the live approval feed
func RegisterRoutes(r *gin.RouterGroup, hub *realtime.Hub) {
	r.GET("/ws/approvals", ApprovalsWebSocket(hub))
}
