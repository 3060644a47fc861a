package api

import (
	"time"

	"github.com/Project-Sylos/Mimic/internal/api/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router represents the HTTP API router
type Router struct {
	svc handlers.Service
}

// NewRouter creates a new API router
func NewRouter(svc handlers.Service) *Router {
	return &Router{svc: svc}
}

// SetupRoutes configures all API routes using modular handlers
func (r *Router) SetupRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Standard middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(60 * time.Second))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	runHandler := handlers.NewRunHandler(r.svc)
	fileHandler := handlers.NewFileHandler(r.svc)
	systemHandler := handlers.NewSystemHandler(r.svc)

	// Health check
	router.Get("/health", healthHandler.HealthCheck)

	// API routes
	router.Route("/api/v1", func(api chi.Router) {
		api.Get("/config", systemHandler.GetConfig)

		api.Route("/runs", func(runs chi.Router) {
			runs.Get("/", runHandler.ListRuns)

			runs.Route("/{runID}", func(run chi.Router) {
				run.Get("/", runHandler.GetRun)
				run.Delete("/", runHandler.DeleteRun)
				run.Get("/stats", runHandler.GetStats)
				run.Get("/copies/{index}/files", fileHandler.ListFiles)
				run.Get("/copies/{index}/files/*", fileHandler.GetFile)
			})
		})
	})

	return router
}
