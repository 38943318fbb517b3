package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/sqadmin/internal/domain"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Routes struct {
	envConfig *models.EnvConfig
	reports   *domain.ReportService
	stats     *domain.StatsService
	db        Pinger
	log       zerolog.Logger
	jwtSecret []byte
}

func NewRouter(config *models.EnvConfig, reports *domain.ReportService, stats *domain.StatsService, db Pinger, log zerolog.Logger) chi.Router {
	routes := &Routes{
		envConfig: config,
		reports:   reports,
		stats:     stats,
		db:        db,
		log:       log,
		jwtSecret: []byte(config.JWTSecret),
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("request_id", middleware.GetReqID(r.Context())).
			Send()
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(config.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", routes.AppHandler(routes.GetHealth))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/reports", routes.ReportsRouter)
	r.Route("/admin", func(r chi.Router) {
		r.Use(routes.IdentityCtx)
		r.Use(routes.RequireRole(models.RoleAdmin))
		r.Get("/stats", routes.AppHandler(routes.GetStats))
	})
	return r
}

func (routes *Routes) GetHealth(w http.ResponseWriter, r *http.Request) AppError {
	if err := routes.db.Ping(r.Context()); err != nil {
		return &ErrInternal{Message: "database unreachable", Cause: err}
	}
	w.Write([]byte("ok"))
	return nil
}

func writeJSON(w http.ResponseWriter, v interface{}) AppError {
	body, err := json.Marshal(v)
	if err != nil {
		return &ErrInternal{Cause: err}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	return nil
}
