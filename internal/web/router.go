package web

import (
	"net/http"
	"time"

	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Registry   *session.Registry
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Limiter    *middleware.RateLimiter
	SessionTTL time.Duration
	AssetsDir  string
}

// NewRouter wires the storefront page, its actions and the ops endpoints.
func NewRouter(deps Deps) http.Handler {
	h := NewHandler(deps.Metrics)
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	if deps.AssetsDir != "" {
		r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(deps.AssetsDir))))
	}

	r.Group(func(r chi.Router) {
		// limit before a session is looked up or created
		if deps.Limiter != nil {
			r.Use(deps.Limiter.Middleware)
		}
		r.Use(middleware.Sessions(deps.Registry, deps.SessionTTL))

		r.Get("/", h.Home)
		r.Get("/api/state", h.State)
		r.Get("/live", h.Live)

		r.Post("/variants/{index}", h.SelectVariant)
		r.Post("/cart", h.AddToCart)
		r.Post("/cart/drop", h.Drop)
		r.Post("/tabs", h.SelectTab)
		r.Post("/reviews", h.SubmitReview)
		r.Post("/reviews/filter", h.FilterReviews)
	})

	return r
}
