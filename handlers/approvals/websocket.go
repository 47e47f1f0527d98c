package approvals

import (
	"net/http"

	"kidspace/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ApprovalsWebSocket streams an ApprovalEvent every time an admin approves something
// @Summary Live approval feed
// @Tags Realtime
// @Success 101 {object} realtime.ApprovalEvent
// @Router /ws/approvals [get]
func ApprovalsWebSocket(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logrus.WithError(err).Warn("websocket upgrade error")
			return
		}

		hub.RegisterClient(conn)
		defer func() {
			hub.UnregisterClient(conn)
			conn.Close()
		}()

		// clients only listen; reading detects the close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
