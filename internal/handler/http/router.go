package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/user"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// FilesDir is served under /files when set.
	FilesDir string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, salaryHandler SalaryHandler, settingsHandler SettingsHandler, healthHandler HealthHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	if opts.FilesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.FilesDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/salary", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryView))
					r.Get("/slips", salaryHandler.ListSlips)
					r.Get("/slips/{workerID}", salaryHandler.GetSlip)
					r.Get("/slips/{workerID}/pdf", salaryHandler.SlipPDF)
					r.Get("/attendance/{workerID}", salaryHandler.Attendance)
					r.Post("/preview", salaryHandler.Preview)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryPrepare))
					r.Post("/slips/{workerID}", salaryHandler.SaveSlip)
					r.Post("/exports", salaryHandler.ExportMonth)
					r.Post("/runs", salaryHandler.RunDrafts)
				})

				r.Route("/settings", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionSettingsView)).Get("/", settingsHandler.GetSettings)
					r.With(middleware.RequirePermission(user.PermissionSettingsView)).Get("/{category}", settingsHandler.GetCategory)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(user.PermissionSettingsManage))
						r.Put("/", settingsHandler.SaveSettings)
						r.Post("/reset", settingsHandler.ResetSettings)
						r.Patch("/{category}", settingsHandler.UpdateCategory)
					})
				})
			})
		})
	})
	return r
}
