package notify

import (
	"net/http"
	"strconv"
	"time"

	"cleanbook/internal/domain"
	jwtsvc "cleanbook/internal/pkg/jwt"
	"cleanbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// TODO: restrict origins once the operator dashboard has a fixed host.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler lets store operators subscribe to live booking events.
//
// Endpoint: GET /ws/stores/:id?token=JWT_TOKEN
//
// The token travels as a query parameter because browser websocket clients
// cannot set an Authorization header.
type WSHandler struct {
	hub *Hub
	jwt *jwtsvc.Service
	log zerolog.Logger
}

func NewWSHandler(hub *Hub, jwt *jwtsvc.Service, log zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt, log: log}
}

func (h *WSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/stores/:id", h.HandleWebSocket)
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid store id")
		return
	}

	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}
	if claims.Role != string(domain.RoleOwner) && claims.Role != string(domain.RoleStaff) && claims.Role != string(domain.RoleAdmin) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Operators only")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	h.hub.Register(storeID, conn)
	h.log.Info().Int64("store_id", storeID).Int64("user_id", claims.UserID).Msg("operator connected")

	defer func() {
		h.hub.Unregister(storeID, conn)
		h.log.Info().Int64("store_id", storeID).Int64("user_id", claims.UserID).Msg("operator disconnected")
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go h.pingLoop(conn)

	// Operators only listen; the read loop exists to notice the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WSHandler) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			return
		}
	}
}
