package handler

import (
	"net/http"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardSocket upgrades the connection to a WebSocket event stream for
// staff dashboards. The client is scoped to its actor's department; admins
// may pass ?department= (or leave it empty) to watch everything.
// GET /ws
func (h *Handler) DashboardSocket(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role == models.RoleCustomer {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff only"})
		return
	}

	scope := actor.Department
	if actor.Role == models.RoleAdmin {
		scope = c.Query("department") // empty means all departments
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &notify.WebSocketClient{
		ID:         uuid.New().String(),
		Department: scope,
		Conn:       conn,
		Hub:        h.Hub,
		Send:       make(chan models.WorkflowEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
