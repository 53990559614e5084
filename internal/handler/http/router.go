package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/timesheet-hq/timesheet-backend-go/internal/domain/rule"
	"github.com/timesheet-hq/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	accessService rule.AccessService,
	entryHandler EntryHandler,
	overviewHandler OverviewHandler,
	configHandler ConfigHandler,
	settingsHandler SettingsHandler,
	holidayHandler HolidayHandler,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", entryHandler.List)
				r.Post("/", entryHandler.Create)
				r.Put("/comment", entryHandler.UpsertComment)
				r.Put("/{id}", entryHandler.Update)
				r.Delete("/{id}", entryHandler.Delete)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Get("/summary", overviewHandler.Summary)
			})

			r.Route("/rules", func(r chi.Router) {
				r.Get("/effective", settingsHandler.EffectiveRules)
				r.Get("/effective/{userID}", settingsHandler.EffectiveRules)
			})

			r.Get("/holidays", holidayHandler.List)

			// HR reviewers only
			r.Route("/hr", func(r chi.Router) {
				r.Use(middleware.HROnly(accessService))

				r.Get("/users", overviewHandler.HRUsers)
				r.Get("/userlist", overviewHandler.HRUserList)

				r.Route("/config/{userID}", func(r chi.Router) {
					r.Get("/", configHandler.Get)
					r.Put("/", configHandler.Update)
				})

				r.Route("/notifications", func(r chi.Router) {
					r.Get("/", configHandler.GetOwn)
					r.Put("/", configHandler.UpdateOwn)
				})

				r.Route("/warnings", func(r chi.Router) {
					r.Get("/", configHandler.GetOwn)
					r.Put("/", configHandler.UpdateOwn)
				})
			})

			// Admin only
			r.Route("/settings", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/hr-access-rules", settingsHandler.ListRules)
				r.Post("/hr-access-rules", settingsHandler.SaveRules)
				r.Get("/special-days", settingsHandler.GetSpecialDays)
				r.Post("/special-days", settingsHandler.SetSpecialDays)
			})
		})
	})
	return r
}
