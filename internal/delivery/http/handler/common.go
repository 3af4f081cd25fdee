package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/ishqrisk/ishqrisk-backend/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses in one place so handlers
// stay thin.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionClosed), errors.Is(err, domain.ErrMatchingRunInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// bindError turns gin/validator binding failures into a client-friendly 400.
func bindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid field: " + verr[0].Field(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
