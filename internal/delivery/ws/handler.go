package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ishqrisk/ishqrisk-backend/internal/logger"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/chat"
	sessionuc "github.com/ishqrisk/ishqrisk-backend/internal/usecase/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Auth is token-based, not cookie-based, so cross-origin upgrades
		// carry no ambient credentials.
		return true
	},
}

// Handler upgrades authorized participants onto a live session feed.
type Handler struct {
	sessionUseCase *sessionuc.UseCase
	chatUseCase    *chat.UseCase
	broker         realtime.Broker
}

func NewHandler(sessionUseCase *sessionuc.UseCase, chatUseCase *chat.UseCase, broker realtime.Broker) *Handler {
	return &Handler{
		sessionUseCase: sessionUseCase,
		chatUseCase:    chatUseCase,
		broker:         broker,
	}
}

// Serve handles GET /ws/sessions/:id. The auth middleware has already
// resolved the user; here we only check session membership before upgrading.
func (h *Handler) Serve(c *gin.Context) {
	userID, exists := c.Get("user_id")
	uid, ok := userID.(string)
	if !exists || !ok || uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID := c.Param("id")
	if _, err := h.sessionUseCase.LoadForParticipant(c.Request.Context(), sessionID, uid); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	events, cancel, err := h.broker.Subscribe(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscription failed"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		logger.L().Warn("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	client := newClient(conn, sessionID, uid, h.chatUseCase)

	go func() {
		defer close(client.send)
		defer cancel()
		for event := range events {
			select {
			case client.send <- event:
			default:
				// slow consumer, drop rather than block the feed
			}
		}
	}()

	go client.writePump()
	client.readPump(c.Request.Context())
	cancel()
}
