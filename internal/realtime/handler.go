package realtime

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"anilink/internal/pkg/jwt"
	"anilink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Handler upgrades authenticated clients to a realtime socket.
type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
	upgrader   websocket.Upgrader
}

// NewHandler accepts browser origins listed in allowedOrigins plus the
// request's own host. Non-browser clients without an Origin are accepted.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			allowed[o] = true
		}
	}
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws", h.ServeWS)
}

// ServeWS
// @Summary		Realtime cache events
// @Description	Browsers cannot set headers on a WebSocket, so the access token travels as ?token=.
// @Tags		Realtime
// @Param		token	query	string	true	"Access token"
// @Router		/ws [GET]
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			response.CustomError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token has expired")
			return
		}
		response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or malformed token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime_upgrade_failed user_id=%s error=%v", claims.UserID(), err)
		return
	}

	userID := claims.UserID()
	log.Printf("realtime_connected user_id=%s", userID)
	h.hub.ServeConn(conn, userID)
	log.Printf("realtime_disconnected user_id=%s", userID)
}
