package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/matchmaking"
)

type MatchHandler struct {
	matchUseCase *matchmaking.UseCase
}

func NewMatchHandler(matchUseCase *matchmaking.UseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// RunMatching handles POST /match/run
// @Summary Run a matching pass
// @Description Pairs waiting users and creates their chat sessions
// @Tags match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} matchmaking.RunReport
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match/run [post]
func (h *MatchHandler) RunMatching(c *gin.Context) {
	report, err := h.matchUseCase.RunMatchingPass(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
