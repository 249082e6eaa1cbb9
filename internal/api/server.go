// Package api wires the HTTP surface over the ingestion pipeline and store.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smsledger/sms-expense-backend/internal/api/handlers"
	"github.com/smsledger/sms-expense-backend/internal/api/middleware"
	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
	"github.com/smsledger/sms-expense-backend/internal/application/scan"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new API server over the given store and pipeline.
func NewServer(cfg Config, repo storage.Repository, pipeline *ingest.Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		config: cfg,
		router: router,
		logger: logger,
	}
	s.setupRoutes(repo, pipeline)
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(repo storage.Repository, pipeline *ingest.Pipeline) {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.GET("/health", healthHandler.Get)

	scanner := scan.NewScanner(pipeline, s.logger.With("system", "scan"))

	api := s.router.Group("/api")
	{
		ingestHandler := handlers.NewIngestHandler(pipeline, scanner)
		api.POST("/ingest", ingestHandler.Ingest)
		api.POST("/scan", ingestHandler.Scan)

		txHandler := handlers.NewTransactionsHandler(repo)
		api.GET("/transactions", txHandler.List)
		api.GET("/transactions/:id", txHandler.Get)

		accountsHandler := handlers.NewAccountsHandler(repo)
		api.GET("/accounts", accountsHandler.ListAccounts)
		api.GET("/categories", accountsHandler.ListCategories)

		statsHandler := handlers.NewStatsHandler(repo)
		api.GET("/stats", statsHandler.Get)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins serving; it blocks until the server stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("API server listening", "port", s.config.Port)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
