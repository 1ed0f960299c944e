package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardinghouse/internal/pkg/jwt"
)

// WSHandler upgrades HTTP connections to WebSocket for event delivery.
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
	loggerf    func(format string, args ...interface{})
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, loggerf func(format string, args ...interface{})) *WSHandler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
		loggerf:    loggerf,
	}
}

func (h *WSHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/events", h.HandleWebSocket)
}

// HandleWebSocket authenticates via ?token= (WebSocket clients cannot set
// an Authorization header from browsers) and hands the connection to the hub.
//
// Endpoint: GET /ws/events?token=JWT_TOKEN
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Token is required. Use ?token=YOUR_JWT_TOKEN",
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.loggerf("websocket upgrade failed: %v", err)
		return
	}

	h.loggerf("user %d connected via websocket", claims.UserID)
	h.hub.ServeWS(conn, claims.UserID) // blocks until disconnect
	h.loggerf("user %d disconnected from websocket", claims.UserID)
}
