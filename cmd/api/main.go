package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/internal/adapter/handler"
	"github.com/johnquangdev/meeting-recovery/internal/adapter/repository"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-recovery/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/meeting-recovery/internal/infrastructure/http/middleware"
	aiuse "github.com/johnquangdev/meeting-recovery/internal/usecase/ai"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/auth"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/credit"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/memorybank"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/mentor"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/user"
	pkgai "github.com/johnquangdev/meeting-recovery/pkg/ai"
	"github.com/johnquangdev/meeting-recovery/pkg/config"
	"github.com/johnquangdev/meeting-recovery/pkg/jwt"
	pkglogger "github.com/johnquangdev/meeting-recovery/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-recovery/pkg/validator"
)

const reconcileTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db, logger)

	// Run migrations only when explicitly enabled in config.
	// Production deployments apply schema with cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			logger.Fatal("DB_AUTO_MIGRATE is enabled in production; run cmd/migrate instead")
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	} else if pending, err := database.PendingMigrations(db); err == nil && len(pending) > 0 {
		logger.Warn("database has pending migrations", zap.Strings("migrations", pending))
	}

	// Redis is optional; it backs the rate limiter when enabled
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	memoryBankRepo := repository.NewMemoryBankRepository(db)
	mentorRepo := repository.NewMentorRepository(db)

	// Initialize usecases
	creditService := credit.NewService(ledgerRepo, &cfg.Credits, logger)
	if cfg.LLM.APIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set; analyze requests will fail and be refunded")
	}
	gateway := aiuse.NewGateway(pkgai.NewClient(&cfg.LLM), logger)
	analysisService := analysis.NewService(gateway, creditService, analysis.Options{
		MaxTranscriptChars: cfg.Analyze.MaxTranscriptChars,
		CallTimeout:        cfg.AnalysisCallTimeout(),
	}, logger)
	userService := user.NewService(userRepo, cfg.Credits.LowThreshold)
	memoryBankService := memorybank.NewService(memoryBankRepo)
	mentorService := mentor.NewService(mentorRepo, userRepo)

	verifier := jwt.NewVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Leeway)
	authService := auth.NewService(verifier, userRepo, cfg.Credits.Initial, logger)
	defer authService.Close()

	// Refund charges orphaned by a previous crash before taking traffic
	reconcileCtx, cancelReconcile := context.WithTimeout(context.Background(), reconcileTimeout)
	if n, err := creditService.ReconcileStale(reconcileCtx, 0); err != nil {
		logger.Error("stale charge reconciliation failed", zap.Error(err))
	} else if n > 0 {
		logger.Warn("refunded stale charges", zap.Int("count", n))
	}
	cancelReconcile()

	analyzeLimiter, err := httpmw.NewUserRateLimiter(cfg.RateLimit.Analyze, redisClient, logger)
	if err != nil {
		logger.Fatal("invalid RATE_LIMIT_ANALYZE", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.Server.ReadHeaderTimeout = 10 * time.Second

	e.Use(middleware.RequestID())
	e.Use(httpmw.Prometheus())
	e.Use(httpmw.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", echo.HeaderXRequestID},
		AllowCredentials: true,
	}))

	router := handler.NewRouter(cfg, db, redisClient, handler.Handlers{
		Analysis:   handler.NewAnalysisHandler(analysisService, cfg.Credits.PaymentURL, logger),
		User:       handler.NewUserHandler(userService, creditService, logger),
		MemoryBank: handler.NewMemoryBankHandler(memoryBankService, logger),
		Mentor:     handler.NewMentorHandler(mentorService, logger),
	}, httpmw.EchoAuth(authService), analyzeLimiter)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("model", cfg.LLM.Model),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped gracefully")
}
