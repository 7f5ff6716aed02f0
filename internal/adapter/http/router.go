package http

import (
	"net/http"

	"github.com/YelzhanWeb/recipes/internal/adapter/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type routes interface {
	Routes(r chi.Router)
}

// NewRouter wires middleware, CORS and a liveness check around the handlers
func NewRouter(lgr logger.Logger, allowedOrigins []string, handlers ...routes) http.Handler {
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(lgr))
	r.Use(LoggingMiddleware(lgr))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, h := range handlers {
		h.Routes(r)
	}
	return r
}
