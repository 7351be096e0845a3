package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	// Internal packages
	"github.com/haven-wellness/concierge/internal/adapter/ai/openai"
	"github.com/haven-wellness/concierge/internal/adapter/cache"
	"github.com/haven-wellness/concierge/internal/adapter/events"
	"github.com/haven-wellness/concierge/internal/adapter/http/fiber/handlers"
	"github.com/haven-wellness/concierge/internal/adapter/http/fiber/middleware"
	"github.com/haven-wellness/concierge/internal/adapter/knowledge/elastic"
	"github.com/haven-wellness/concierge/internal/adapter/queue"
	"github.com/haven-wellness/concierge/internal/adapter/storage/postgres"
	"github.com/haven-wellness/concierge/internal/adapter/vault"
	wsAdapter "github.com/haven-wellness/concierge/internal/adapter/websocket"
	"github.com/haven-wellness/concierge/internal/observability/telemetry"
	"github.com/haven-wellness/concierge/internal/postprocess"
	"github.com/haven-wellness/concierge/internal/router"
	"github.com/haven-wellness/concierge/internal/safety"
	"github.com/haven-wellness/concierge/internal/service/auth"
	"github.com/haven-wellness/concierge/internal/service/catalog"
	"github.com/haven-wellness/concierge/internal/service/chat"
	"github.com/haven-wellness/concierge/pkg/config"
)

const (
	serviceName    = "haven-concierge"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Haven Concierge",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Resolve secrets from Vault when enabled
	if cfg.Vault.Enabled {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dsn, err := secrets.GetDatabaseCredentials(); err == nil {
			cfg.Database.URL = dsn
		}
		if key, err := secrets.GetOpenAIAPIKey(); err == nil {
			cfg.OpenAI.APIKey = key
		}
		if secret, err := secrets.GetJWTSecret(); err == nil {
			cfg.JWT.Secret = secret
		}
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 5. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	// Run migrations
	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// 6. Initialize Cache (Redis with in-memory fallback)
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to local cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue (NATS)
	messageQueue, err := queue.NewNATSQueue(cfg.NATS.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer messageQueue.Close()

	// 8. Initialize Repositories
	programRepo := postgres.NewProgramRepository(db, logger)
	conversationRepo := postgres.NewConversationRepository(db, logger)
	adminRepo := postgres.NewAdminRepository(db, logger)

	// 9. Audit stream: publisher on the request path, persister off it
	sink := queue.NewNATSSink(messageQueue, logger)
	persister := queue.NewPersister(messageQueue, conversationRepo, logger)
	if err := persister.Start(context.Background()); err != nil {
		logger.Fatal("Failed to start audit persister", zap.Error(err))
	}

	// 10. Initialize External Adapters
	eventService := events.NewClient(cfg.Events.BaseURL, cfg.Events.APIKey, logger)

	knowledgeSearcher, err := elastic.NewSearcher(
		cfg.Knowledge.Addresses, cfg.Knowledge.Username, cfg.Knowledge.Password,
		cfg.Knowledge.Index, logger)
	if err != nil {
		logger.Fatal("Failed to initialize knowledge searcher", zap.Error(err))
	}

	chatModel := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	if !chatModel.Configured() {
		logger.Warn("OpenAI API key missing; model-backed answers are disabled")
	}

	// 11. Initialize Core Services (Business Logic Layer)
	catalogService := catalog.NewService(programRepo, eventService, appCache, cfg.Router.RefreshInterval, logger)
	go catalogService.Run(context.Background())

	guardrail := safety.NewGuardrail(logger)

	classifier := router.NewClassifier(catalogService, router.Thresholds{
		High:     cfg.Router.HighConfidence,
		Medium:   cfg.Router.MediumConfidence,
		Low:      cfg.Router.LowConfidence,
		MinMatch: cfg.Router.MinMatchScore,
	}, logger)

	chain := postprocess.NewChain(guardrail, catalogService, eventService, cfg.Events.CalendarID, logger)

	chatService := chat.NewService(
		classifier, knowledgeSearcher, eventService, chatModel,
		chain, guardrail, catalogService, sink, logger)

	authService := auth.NewService(adminRepo, cfg.JWT.Secret, logger)

	// 12. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.HTTP.AllowedOrigins))
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.RateLimit(cfg.RateLimiting.MaxRequests, cfg.RateLimiting.Window))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(503).SendString("Database not ready")
		}
		if err := appCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Public chat API
	chatHandler := handlers.NewChatHandler(chatService, logger)
	app.Post("/api/chat", chatHandler.Chat)

	// Streaming chat over WebSocket
	streamHandler := wsAdapter.NewStreamHandler(chatService, logger)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(func(c *websocket.Conn) {
		streamHandler.Handle(c)
	}))

	// Admin API
	v1 := app.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", authHandler.Me)

	programHandler := handlers.NewProgramHandler(programRepo, catalogService, logger)
	protected.Get("/programs", programHandler.List)
	protected.Get("/programs/:id", programHandler.Get)
	protected.Post("/programs", programHandler.Upsert)
	protected.Delete("/programs/:id", programHandler.Delete)
	protected.Post("/catalog/refresh", programHandler.RefreshCatalog)

	// 13. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
