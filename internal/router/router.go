package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatrelay-backend/internal/handlers"
	"chatrelay-backend/internal/middleware"
	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/observability/metrics"
	"chatrelay-backend/pkg/logging"
)

func New(
	chatHandler *handlers.ChatHandler,
	weatherHandler *handlers.WeatherHandler,
	staticHandler *handlers.StaticHandler,
	m *metrics.RelayMetrics,
	logger *logging.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(observeRequests(m))
	r.Use(middleware.Recover(logger))

	r.Post("/api/chat", chatHandler.Relay)
	r.Get("/api/weather", weatherHandler.Current)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Every remaining GET resolves against the static asset tree.
	r.Get("/*", staticHandler.Serve)

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Method not allowed"})
	})

	return r
}

func observeRequests(m *metrics.RelayMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(route, ww.Status())
		})
	}
}
