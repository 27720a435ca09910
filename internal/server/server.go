// Package server exposes the classifier, validator and hint sequencer over
// HTTP for the browser widget. It is stateless: the widget owns the attempt
// counter and reveal positions.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/calctutor/internal/metrics"
	"github.com/abhisek/calctutor/internal/technique"
)

const shutdownTimeout = 5 * time.Second

// Server wires the HTTP routes.
type Server struct {
	catalog *technique.Catalog
	metrics *metrics.Metrics
	logger  *slog.Logger
	engine  *gin.Engine
}

// New creates a server. A nil logger uses slog.Default(); a nil metrics
// value gets a fresh instance.
func New(catalog *technique.Catalog, m *metrics.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		catalog: catalog,
		metrics: m,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	v1 := s.engine.Group("/v1")
	{
		v1.GET("/techniques", s.listTechniques)
		v1.POST("/classify", s.classifyFunction)
		v1.POST("/validate", s.validateAnswer)
		v1.GET("/hints", s.reveal(revealHints))
		v1.GET("/steps", s.reveal(revealSteps))
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		s.metrics.ObserveRequest(route, c.Request.Method, status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", route,
			"status", status,
			"latency_ms", elapsed.Milliseconds(),
		)
	}
}
