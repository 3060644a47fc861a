package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Project-Sylos/Mimic/internal/api/handlers"
	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/go-chi/chi/v5"
)

// Server represents the HTTP API server
type Server struct {
	router *chi.Mux
	config *types.APIConfig
	http   *http.Server
}

// NewServer creates a new API server
func NewServer(svc handlers.Service, config *types.APIConfig) *Server {
	router := NewRouter(svc).SetupRoutes()

	return &Server{
		router: router,
		config: config,
		http: &http.Server{
			Addr:         Addr(config),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Addr returns host:port of the API configuration
func Addr(config *types.APIConfig) string {
	return fmt.Sprintf("%s:%d", config.Host, config.Port)
}

// Start serves until Stop is called. It never returns http.ErrServerClosed.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// GetRouter returns the configured router
func (s *Server) GetRouter() *chi.Mux {
	return s.router
}

// Stop gracefully shuts the HTTP server down
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
