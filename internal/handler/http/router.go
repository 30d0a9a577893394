package http

import (
	"log/slog"
	"os"
	"strings"

	"github.com/cmlabs-hris/hris-policy-engine/internal/config"
	"github.com/cmlabs-hris/hris-policy-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(app config.AppConfig, logger *slog.Logger, JWTService jwt.Service, ruleHandler RuleHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/rules", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.With(chiMiddleware.AllowContentType("application/json")).Group(func(r chi.Router) {
			r.Post("/leave/validate", ruleHandler.ValidateLeave)
			r.Post("/salary/validate", ruleHandler.ValidateSalary)
			r.Post("/promotion/validate", ruleHandler.ValidatePromotion)
		})

		r.Route("/employees/{id}", func(r chi.Router) {
			r.Get("/attendance", ruleHandler.AnalyzeAttendance)
			r.Get("/review-status", ruleHandler.ReviewStatus)
			r.Get("/training-compliance", ruleHandler.TrainingCompliance)
			r.Get("/retirement-eligibility", ruleHandler.RetirementEligibility)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Post("/audits", ruleHandler.RunAudit)
			r.Post("/audits/export", ruleHandler.ExportAudit)
			r.Get("/audits/exports/{filename}", ruleHandler.DownloadExport)
			r.Delete("/audits/exports/{filename}", ruleHandler.DeleteExport)
			r.Get("/audit-log", ruleHandler.AuditLog)
		})
	})

	return r
}

// NewLogger builds the ECS-formatted JSON logger shared by the router and the rest of the process.
func NewLogger(app config.AppConfig, version string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(app.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-policy-engine"),
		slog.String("version", version),
		slog.String("env", app.Env),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
