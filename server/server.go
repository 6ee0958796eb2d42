package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/KenichiNogami/ricePriceSurvey/common"
	"github.com/KenichiNogami/ricePriceSurvey/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SurveyPath is the route of the survey endpoint
const SurveyPath = "/api/riceSurvey"

// Server owns the HTTP listener and routes survey requests to a Surveyor
type Server struct {
	addr            string
	allowedOrigins  []string
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	surveyor        Surveyor
}

// New creates a server from the server settings section
func New(settings common.Server, surveyor Surveyor) *Server {
	defaults := common.WithDefaultSettings().Server
	maxBodyBytes := settings.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaults.MaxBodyBytes
	}
	shutdownTimeout := settings.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaults.ShutdownTimeout
	}

	return &Server{
		addr:            settings.Addr,
		allowedOrigins:  settings.AllowedOrigins,
		maxBodyBytes:    maxBodyBytes,
		shutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
		surveyor:        surveyor,
	}
}

// Handler builds the router with all middleware and routes
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(accessLog)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(methodNotAllowedHandler)

	router.Get("/healthz", s.healthHandler())
	router.Post(SurveyPath, s.surveyHandler())

	return router
}

// Run serves until ctx is done or SIGINT/SIGTERM arrives, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Infof("HTTP server listening on %s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("HTTP server stopped unexpectedly: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error while shutting down HTTP server: %v", err)
		return err
	}

	logger.Info("HTTP server stopped")
	return nil
}
