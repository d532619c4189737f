// cmd/web3-invoicing-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/web3-invoicing/internal/api/rest/v1"
	"github.com/MGTheTrain/web3-invoicing/internal/app"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/auth"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/connector"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/metrics"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/persistence"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/ratelimit"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 15 * time.Second
	nonceSweepInterval = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize application dependencies
	deps, err := initializeDependencies(ctx, restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	go purgeNoncesPeriodically(ctx, deps.nonceRepo, log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(ctx, restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db        *gorm.DB
	nonceRepo auth.NonceRepository
	services  *v1.Services
	limiter   ratelimit.Limiter
	metrics   *metrics.Metrics
}

func (d *appDependencies) close(log logger.Logger) {
	if err := d.limiter.Close(); err != nil {
		log.Warn("Failed to close rate limiter", "error", err)
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("Failed to close database", "error", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(ctx context.Context, cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, err
	}

	// Initialize connectors
	blobConnector, err := connector.NewBlobConnector(ctx, &cfg.BlobConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob connector: %w", err)
	}
	log.Info("Blob connector initialized", "provider", cfg.BlobConnector.CloudProvider)

	limiter, err := ratelimit.NewLimiter(&cfg.RateLimit, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	services, err := initializeApplicationServices(cfg, repos, blobConnector, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:        db,
		nonceRepo: repos.nonce,
		services:  services,
		limiter:   limiter,
		metrics:   m,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(ctx context.Context, cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	gin.SetMode(cfg.GinMode)

	// Setup router
	r := gin.New()
	if err := v1.TrustProxies(r, cfg.TrustedProxies); err != nil {
		return err
	}
	r.Use(gin.Recovery(), v1.RequestLogger(log), v1.RequestMetrics(deps.metrics))

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: !allowsAnyOrigin(cfg.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, deps.services, v1.RouterOptions{
		Limiter:   deps.limiter,
		RateLimit: cfg.RateLimit,
		Metrics:   deps.metrics,
		Ping: func(ctx context.Context) error {
			sqlDB, err := deps.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		log.Info("Received shutdown signal, initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// purgeNoncesPeriodically removes expired sign-in nonces until ctx is cancelled
func purgeNoncesPeriodically(ctx context.Context, repo auth.NonceRepository, log logger.Logger) {
	ticker := time.NewTicker(nonceSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := app.PurgeExpiredNonces(ctx, repo, now.UTC())
			if err != nil {
				log.Warn("Nonce purge failed", "error", err)
				continue
			}
			if removed > 0 {
				log.Info("Purged expired nonces", "count", removed)
			}
		}
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
