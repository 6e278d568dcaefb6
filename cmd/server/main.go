// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmaponte/trier-integration/internal/api"
	"github.com/farmaponte/trier-integration/internal/cache"
	"github.com/farmaponte/trier-integration/internal/config"
	"github.com/farmaponte/trier-integration/internal/repository/postgres"
	"github.com/farmaponte/trier-integration/internal/service"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/farmaponte/trier-integration/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.LogLevel)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Trier.BaseURL == "" || cfg.Trier.Token == "" {
		log.Fatal("TRIER_BASE_URL and TRIER_TOKEN must be configured")
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.EnsureSchema(schemaCtx); err != nil {
		cancelSchema()
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	cancelSchema()

	// Trier API client
	trierClient := trier.NewClient(
		cfg.Trier.BaseURL,
		cfg.Trier.Token,
		time.Duration(cfg.Trier.TimeoutSeconds)*time.Second,
	)

	// Optional Redis cache for the audit bootstrap payload
	auditCache, err := cache.NewAuditCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("audit cache unavailable, continuing without it")
		auditCache = cache.NewNoopAuditCache()
	}

	// Initialize services
	syncService := service.NewSyncService(
		trierClient,
		postgres.NewProdutoRepository(db),
		postgres.NewEstoqueRepository(db),
		postgres.NewVendaRepository(db),
		cfg.Trier.PageSize,
	)
	auditService := service.NewAuditService(trierClient, auditCache, cfg.Trier.PageSize)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		SyncService:  syncService,
		AuditService: auditService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
