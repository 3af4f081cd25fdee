package http

import (
	"github.com/gin-gonic/gin"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/http/handler"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/http/middleware"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/ws"
)

type Router struct {
	matchHandler   *handler.MatchHandler
	sessionHandler *handler.SessionHandler
	chatHandler    *handler.ChatHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	sessionHandler *handler.SessionHandler,
	chatHandler *handler.ChatHandler,
	wsHandler *ws.Handler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		matchHandler:   matchHandler,
		sessionHandler: sessionHandler,
		chatHandler:    chatHandler,
		wsHandler:      wsHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Match routes
			match := protected.Group("/match")
			{
				match.POST("/run", r.matchHandler.RunMatching)
			}

			// Session routes
			sessions := protected.Group("/sessions")
			{
				sessions.GET("/me", r.sessionHandler.GetCurrent)
				sessions.GET("/:id", r.sessionHandler.Get)
				sessions.POST("/:id/reveal", r.sessionHandler.Reveal)
				sessions.POST("/:id/share-phone", r.sessionHandler.SharePhone)
				sessions.POST("/:id/close", r.sessionHandler.Close)

				// Chat routes
				sessions.GET("/:id/messages", r.chatHandler.ListMessages)
				sessions.POST("/:id/messages", r.chatHandler.SendMessage)
			}
		}
	}

	// Realtime feed (token comes via query parameter on upgrade)
	router.GET("/ws/sessions/:id", r.authMiddleware.RequireAuth(), r.wsHandler.Serve)

	return router
}
