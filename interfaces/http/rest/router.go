// Package rest wires the HTTP surface: routing, middleware, and the
// translation between transport and application services.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"journaline/infrastructure/di"
	"journaline/interfaces/http/rest/handlers"
	"journaline/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.journaline.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		// Event endpoints
		r.Route("/events", func(r chi.Router) {
			eventHandler := handlers.NewEventHandler(
				rt.container.EventService,
				rt.container.AssociationService,
				rt.logger,
			)
			r.Post("/", eventHandler.CreateEvent)
			r.Get("/", eventHandler.ListEvents)
			r.Get("/{eventID}", eventHandler.GetEvent)
			r.Put("/{eventID}", eventHandler.UpdateEvent)
			r.Delete("/{eventID}", eventHandler.DeleteEvent)

			// Timeline membership
			r.Put("/{eventID}/timelines", eventHandler.SetTimelines)
			r.Post("/{eventID}/timelines/{timelineID}", eventHandler.AddToTimeline)
			r.Delete("/{eventID}/timelines/{timelineID}", eventHandler.RemoveFromTimeline)
		})

		// Timeline endpoints
		r.Route("/timelines", func(r chi.Router) {
			timelineHandler := handlers.NewTimelineHandler(
				rt.container.TimelineService,
				rt.container.ForkService,
				rt.container.ViewService,
				rt.logger,
			)
			r.Post("/", timelineHandler.CreateTimeline)
			r.Get("/", timelineHandler.ListTimelines)
			r.Get("/{timelineID}", timelineHandler.GetTimeline)
			r.Put("/{timelineID}", timelineHandler.UpdateTimeline)
			r.Delete("/{timelineID}", timelineHandler.ArchiveTimeline)

			r.Post("/{timelineID}/fork", timelineHandler.ForkTimeline)
			r.Put("/{timelineID}/group-order", timelineHandler.ReorderGroups)
			r.Get("/{timelineID}/groups", timelineHandler.GetGroups)
		})

		// Legacy cache migration
		r.Post("/import/legacy", handlers.NewImportHandler(rt.container.ImportService, rt.logger).ImportLegacy)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
