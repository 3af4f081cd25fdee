package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// ListMessages handles GET /sessions/:id/messages
// @Summary List session messages in chronological order
// @Tags chat
// @Security BearerAuth
// @Produce json
// @Param id path string true "session id"
// @Success 200 {array} domain.Message
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/messages [get]
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	messages, err := h.chatUseCase.ListMessages(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /sessions/:id/messages
// @Summary Send a message into a session
// @Tags chat
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body sendMessageRequest true "message text"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
