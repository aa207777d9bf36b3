/*
server.go - HTTP server setup and routing

PURPOSE:
  Wires the chi router: middleware stack, CORS, and the route tree for
  resources, reservations, stats and push subscriptions.

ROUTES:
  GET    /health
  GET    /api/resources
  POST   /api/resources                        (admin)
  GET    /api/resources/{id}
  GET    /api/resources/{id}/blocks
  POST   /api/resources/{id}/blocks            (admin)
  GET    /api/resources/{id}/availability
  POST   /api/reservations
  GET    /api/reservations
  GET    /api/reservations/{id}
  POST   /api/reservations/{id}/approve        (admin)
  POST   /api/reservations/{id}/reject         (admin)
  POST   /api/reservations/{id}/cancel         (owner)
  POST   /api/reservations/{id}/complete       (admin)
  GET    /api/reservations/{id}/log
  GET    /api/stats
  POST   /api/subscriptions

SEE ALSO:
  - handlers.go: The handler implementations
  - mw.go:       Rate limiting and response caching
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	AllowedOrigins  []string
	RateLimitPerSec float64
	RateLimitBurst  int
	CacheTTL        time.Duration
}

// NewRouter builds the HTTP router around the handler.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor-ID", "X-Actor-Role"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.RateLimitPerSec > 0 {
		r.Use(NewIPRateLimiter(cfg.RateLimitPerSec, cfg.RateLimitBurst).Middleware)
	}
	if cfg.CacheTTL > 0 {
		r.Use(NewResponseCache(cfg.CacheTTL).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", h.ListResources)
			r.Post("/", h.CreateResource)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetResource)
				r.Get("/blocks", h.ListBlocks)
				r.Post("/blocks", h.CreateBlock)
				r.Get("/availability", h.CheckAvailability)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.ListReservations)
			r.Post("/", h.CreateReservation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetReservation)
				r.Post("/approve", h.ApproveReservation)
				r.Post("/reject", h.RejectReservation)
				r.Post("/cancel", h.CancelReservation)
				r.Post("/complete", h.CompleteReservation)
				r.Get("/log", h.ReservationLog)
			})
		})

		r.Get("/stats", h.GetStats)
		r.Post("/subscriptions", h.Subscribe)
	})

	return r
}
