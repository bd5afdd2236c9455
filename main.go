package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"library-service/internal/audit"
	"library-service/internal/auth"
	"library-service/internal/config"
	"library-service/internal/http"
	"library-service/internal/http/middleware"
	"library-service/internal/observability"
	"library-service/internal/rbac"
	"library-service/internal/rbac/presets"
	"library-service/internal/repository/postgres"

	"github.com/joho/godotenv"
)

const (
	envFilePath      = ".env"
	serverAddrPrefix = ":"
	signalBufferSize = 1
	metricsNamespace = "library"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

func main() {
	if err := godotenv.Load(envFilePath); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: observability.OutputStderr,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := postgres.New(ctx, &cfg.Database)
	if err != nil {
		logger.Error("database connection failed", observability.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("database connection established")

	checker := rbac.MustNew(presets.Library())
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpiryDuration, checker)

	gate := auth.NewGate(jwtService, checker, cfg.Auth.PublicRoutes)
	metrics := auth.NewMetrics(metricsNamespace)
	metrics.Init()
	authMiddleware := auth.NewMiddleware(gate, cfg.Auth.CookieName, logger, metrics)

	server := http.NewServer(&http.ServerDependencies{
		Config:         cfg,
		Logger:         logger,
		DB:             db,
		UserRepo:       postgres.NewUserRepository(db),
		JWTService:     jwtService,
		AuthMiddleware: authMiddleware,
		AuditLogger:    audit.NewLogger(db.Pool, logger),
		MetricsHandler: http.DefaultMetricsHandler(),
		HTTPMetrics:    middleware.NewHTTPMetrics(metricsNamespace, nil),
	})

	go func() {
		logger.Info("starting http server", observability.String("port", cfg.Server.Port))
		if err := server.Start(serverAddrPrefix + cfg.Server.Port); err != nil {
			logger.Info("http server stopped", observability.Error(err))
		}
	}()

	quit := make(chan os.Signal, signalBufferSize)
	signal.Notify(quit, shutdownSignals...)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", observability.Error(err))
		return
	}

	logger.Info("server exited gracefully")
}
