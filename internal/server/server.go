package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/smartcatalog/catalog-extractor/internal/entity"
	"github.com/smartcatalog/catalog-extractor/internal/extractor"
	"github.com/smartcatalog/catalog-extractor/internal/repository"
)

// Pipeline is the extraction entrypoint the upload endpoint drives.
// Satisfied by *extractor.Processor; stubbed in tests.
type Pipeline interface {
	ExtractProducts(ctx context.Context, pdfPath string) ([]entity.Product, extractor.Stats, error)
}

// Config holds server configuration.
type Config struct {
	// Addr is the listen address (default :8080)
	Addr string
	// AllowedOrigin is the origin the CORS middleware admits
	AllowedOrigin string
	// UploadDir is where uploads are staged; empty means the OS temp dir
	UploadDir string
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// Server is the catalog HTTP API: upload a PDF, get structured products back
// out via search/list endpoints.
type Server struct {
	httpServer *http.Server
	cfg        Config
	db         *sql.DB
	products   repository.ProductRepository
	pipeline   Pipeline
	logger     *slog.Logger
}

// New creates a Server wired to the given repository and pipeline.
func New(cfg Config, db *sql.DB, products repository.ProductRepository, pipeline Pipeline) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		db:       db,
		products: products,
		pipeline: pipeline,
		logger:   cfg.Logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withMiddleware(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start runs the server until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
