package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	sessionuc "github.com/ishqrisk/ishqrisk-backend/internal/usecase/session"
)

type SessionHandler struct {
	sessionUseCase *sessionuc.UseCase
}

func NewSessionHandler(sessionUseCase *sessionuc.UseCase) *SessionHandler {
	return &SessionHandler{sessionUseCase: sessionUseCase}
}

type revealRequest struct {
	Reveal *bool `json:"reveal" binding:"required"`
}

type sharePhoneRequest struct {
	Share *bool `json:"share" binding:"required"`
}

// GetCurrent handles GET /sessions/me
// @Summary Get the caller's latest session
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/me [get]
func (h *SessionHandler) GetCurrent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	view, err := h.sessionUseCase.GetCurrentView(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Get handles GET /sessions/:id
// @Summary Get a session by id
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} session.View
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	view, err := h.sessionUseCase.GetView(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Reveal handles POST /sessions/:id/reveal
// @Summary Set the caller's reveal consent
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body revealRequest true "desired reveal consent"
// @Success 200 {object} session.View
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/reveal [post]
func (h *SessionHandler) Reveal(c *gin.Context) {
	var req revealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.setFlag(c, *req.Reveal, h.sessionUseCase.SetReveal)
}

// SharePhone handles POST /sessions/:id/share-phone
// @Summary Set the caller's phone-sharing consent
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "session id"
// @Param request body sharePhoneRequest true "desired phone-sharing consent"
// @Success 200 {object} session.View
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/share-phone [post]
func (h *SessionHandler) SharePhone(c *gin.Context) {
	var req sharePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.setFlag(c, *req.Share, h.sessionUseCase.SetSharePhone)
}

func (h *SessionHandler) setFlag(c *gin.Context, value bool, set func(ctx context.Context, sessionID, userID string, value bool) (*sessionuc.View, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	view, err := set(c.Request.Context(), c.Param("id"), userID, value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Close handles POST /sessions/:id/close
// @Summary Close a session
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "session id"
// @Success 200 {object} session.View
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/close [post]
func (h *SessionHandler) Close(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	view, err := h.sessionUseCase.Close(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
