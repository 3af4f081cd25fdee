package container

import (
	"fmt"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	httpdelivery "github.com/ishqrisk/ishqrisk-backend/internal/delivery/http"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/http/handler"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/http/middleware"
	"github.com/ishqrisk/ishqrisk-backend/internal/delivery/ws"
	"github.com/ishqrisk/ishqrisk-backend/internal/infrastructure/database"
	"github.com/ishqrisk/ishqrisk-backend/internal/infrastructure/gemini"
	"github.com/ishqrisk/ishqrisk-backend/internal/infrastructure/server"
	"github.com/ishqrisk/ishqrisk-backend/internal/logger"
	"github.com/ishqrisk/ishqrisk-backend/internal/realtime"
	"github.com/ishqrisk/ishqrisk-backend/internal/repository/postgres"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/chat"
	"github.com/ishqrisk/ishqrisk-backend/internal/usecase/matchmaking"
	sessionuc "github.com/ishqrisk/ishqrisk-backend/internal/usecase/session"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	DB      *sqlx.DB
	Redis   *redis.Client
	Server  *server.Server
	Gemini  *gemini.GeminiClient
	Session *sessionuc.UseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client; sessions just go without icebreakers if it is
	// unavailable.
	var icebreaker matchmaking.IcebreakerGenerator
	geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		logger.L().Warn("gemini client unavailable, icebreakers disabled", "error", err)
	} else {
		icebreaker = geminiClient
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	messageRepo := postgres.NewMessageRepository(db)

	// Initialize realtime broker
	broker := realtime.NewRedisBroker(redisClient, logger.L())

	// Initialize use cases
	matchUseCase := matchmaking.NewUseCase(
		userRepo,
		sessionRepo,
		matchmaking.NewRedisRunLock(redisClient, cfg.Matching.RunLockTTL),
		cfg.Matching,
		icebreaker,
		logger.L(),
	)

	sessionUseCase := sessionuc.NewUseCase(
		sessionRepo,
		userRepo,
		broker,
		cfg.Matching,
		logger.L(),
	)

	chatUseCase := chat.NewUseCase(
		sessionUseCase,
		sessionRepo,
		messageRepo,
		broker,
		logger.L(),
	)

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(matchUseCase)
	sessionHandler := handler.NewSessionHandler(sessionUseCase)
	chatHandler := handler.NewChatHandler(chatUseCase)
	wsHandler := ws.NewHandler(sessionUseCase, chatUseCase, broker)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := httpdelivery.NewRouter(
		matchHandler,
		sessionHandler,
		chatHandler,
		wsHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config:  cfg,
		DB:      db,
		Redis:   redisClient,
		Server:  srv,
		Gemini:  geminiClient,
		Session: sessionUseCase,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.L().Warn("failed to close redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
