// Package router wires the catalog routes and their middleware.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/catalog-api/docs"
	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"github.com/rogerio-castellano/catalog-api/internal/auth"
	"github.com/rogerio-castellano/catalog-api/internal/http/ban"
	"github.com/rogerio-castellano/catalog-api/internal/http/handlers"
	mw "github.com/rogerio-castellano/catalog-api/internal/http/middleware"
	rl "github.com/rogerio-castellano/catalog-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/catalog-api/internal/http/validation"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Options configures NewRouter. A nil Limiter disables rate limiting and a
// nil Metrics disables /metrics.
type Options struct {
	Issuer         *auth.Issuer
	Limiter        *rl.Limiter
	Bans           *ban.Tracker
	Metrics        *mw.Metrics
	AllowedOrigins []string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(corsHandler(opts.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, apperr.NotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apperr.Write(w, apperr.New(http.StatusMethodNotAllowed, "method not allowed", nil))
	})

	r.Get("/healthz", handlers.Handle(handlers.HealthHandler))
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil && opts.Bans != nil {
			r.Use(mw.RateLimit(opts.Limiter, opts.Bans, opts.Metrics))
		}

		private := mw.Auth(opts.Issuer)

		r.With(
			validation.Check(handlers.LoginRule()),
			validation.Middleware,
		).Post("/login", handlers.Handle(handlers.LoginHandler))

		r.Get("/products", handlers.Handle(handlers.GetProductsHandler))
		r.With(
			private,
			validation.Check(handlers.CreateProductRule()),
			validation.Middleware,
		).Post("/products", handlers.Handle(handlers.CreateProductHandler))

		r.With(
			validation.Check(handlers.ProductIDRule()),
			validation.Middleware,
		).Get("/products/{id}", handlers.Handle(handlers.GetProductByIDHandler))
		r.With(
			private,
			validation.Check(handlers.ProductIDRule(), handlers.UpdateProductRule()),
			validation.Middleware,
		).Put("/products/{id}", handlers.Handle(handlers.UpdateProductHandler))
		r.With(
			private,
			validation.Check(handlers.ProductIDRule()),
			validation.Middleware,
		).Delete("/products/{id}", handlers.Handle(handlers.DeleteProductHandler))
	})

	return r
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders: []string{mw.RequestIDHeader},
	}).Handler
}
