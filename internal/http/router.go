package httpx

import (
	"net/http"

	"dareboard/internal/config"
	"dareboard/internal/http/handlers"
	middlewarex "dareboard/internal/http/middleware"
	"dareboard/internal/services/data"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config      config.Cfg
	DataService *data.Service
}

// NewRouter creates the feed server's HTTP router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check (public)
	r.Get("/health", handlers.Health())

	// API routes (bearer token when SERVER_TOKEN is set)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarex.BearerAuth(deps.Config.Server.Token))

		r.Get("/dares", handlers.ListDares(deps.DataService))
		r.Get("/dares/{id}", handlers.GetDare(deps.DataService))
		r.Get("/acts", handlers.ListActs(deps.DataService))
	})

	return r
}
