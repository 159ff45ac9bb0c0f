package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BorisDmv/portfolio-api/internal/config"
	"github.com/BorisDmv/portfolio-api/internal/importer"
	"github.com/BorisDmv/portfolio-api/internal/models"
	"github.com/BorisDmv/portfolio-api/internal/repository"
	appmiddleware "github.com/BorisDmv/portfolio-api/internal/middleware"
)

// Deps are the collaborators of the endpoint layer.
type Deps struct {
	Config   *config.Config
	Repos    repository.Set
	Schema   repository.SchemaManager
	Validate *validator.Validate
	// LoginLimiter throttles login attempts. A nil limiter is built from Config.
	LoginLimiter *appmiddleware.RateLimiter
}

// NewRouter wires every endpoint.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	if deps.Validate == nil {
		deps.Validate = models.NewValidator()
	}
	if deps.LoginLimiter == nil {
		deps.LoginLimiter = appmiddleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	}

	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		methodNotAllowed(w, "")
	})
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:     cfg.CorsAllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	}).Handler)
	r.Use(appmiddleware.Preflight)

	r.Get("/health", Health)
	r.Handle("/metrics", promhttp.Handler())

	imp := NewImportHandler(
		importer.New(deps.Repos, deps.Validate), cfg.MaxBodyBytes, cfg.Debug,
	)

	r.Route("/api", func(r chi.Router) {
		r.With(deps.LoginLimiter.Limit).Post("/login", Login(cfg))
		r.Get("/init-db", InitDB(deps.Schema, cfg.Debug))

		r.Group(func(r chi.Router) {
			var jwtSecret []byte
			if cfg.LoginEnabled() {
				jwtSecret = []byte(cfg.JWTSecret)
			}
			r.Use(appmiddleware.RequireAdmin(cfg.AuthToken, jwtSecret))

			r.Handle("/projects", NewResource(models.KindProjects, deps.Repos.Projects, deps.Validate, cfg.MaxBodyBytes, cfg.Debug))
			r.Handle("/blogs", NewResource(models.KindBlogs, deps.Repos.Blogs, deps.Validate, cfg.MaxBodyBytes, cfg.Debug))
			r.Handle("/certifications", NewResource(models.KindCertifications, deps.Repos.Certifications, deps.Validate, cfg.MaxBodyBytes, cfg.Debug))
			r.Handle("/achievements", NewResource(models.KindAchievements, deps.Repos.Achievements, deps.Validate, cfg.MaxBodyBytes, cfg.Debug))
			r.Handle("/volunteering", NewResource(models.KindVolunteering, deps.Repos.Volunteering, deps.Validate, cfg.MaxBodyBytes, cfg.Debug))
			r.Handle("/import-data", imp)
			r.Handle("/import", imp)
		})
	})

	return r
}
