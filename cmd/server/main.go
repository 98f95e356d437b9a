package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/database"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/handlers"
	"github.com/medimatch/medimatch-backend/internal/logging"
	"github.com/medimatch/medimatch-backend/internal/mail"
	"github.com/medimatch/medimatch-backend/internal/middleware"
	"github.com/medimatch/medimatch-backend/internal/oauth"
	"github.com/medimatch/medimatch-backend/internal/repository"
	"github.com/medimatch/medimatch-backend/internal/routes"
	"github.com/medimatch/medimatch-backend/internal/services"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err == nil {
		slog.Info(".env file loaded")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewTeeHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Collaborators, constructed once and injected
	mailer := mail.New(cfg)
	googleClient := oauth.NewGoogleClient(cfg)

	doctorRepo := repository.NewDoctorRepository(database.DB)
	patientRepo := repository.NewPatientRepository(database.DB)
	savedRepo := repository.NewSavedDoctorRepository(database.DB)

	doctorService := services.NewDoctorService(doctorRepo, mailer, cfg)
	patientService := services.NewPatientService(patientRepo, mailer, cfg)
	savedService := services.NewSavedDoctorService(patientRepo, doctorRepo, savedRepo)
	oauthService := services.NewOAuthService(doctorRepo, patientRepo, cfg)

	doctorHandler := handlers.NewDoctorHandler(doctorService, cfg)
	patientHandler := handlers.NewPatientHandler(patientService, savedService, cfg)
	oauthHandler := handlers.NewOAuthHandler(oauthService, googleClient, cfg)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: newErrorHandler(cfg),
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, doctorHandler, patientHandler, oauthHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

// newErrorHandler is the last-resort boundary for errors that escape the
// handlers; everything 5xx is logged and flattened to a generic response.
func newErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Something went wrong"
		if e, ok := err.(*fiber.Error); ok && e.Code < 500 {
			// Framework-level 4xx (unknown route, method not allowed)
			return c.Status(e.Code).JSON(dto.Response{
				Success: false,
				Message: e.Message,
			})
		}

		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		resp := dto.Response{
			Success: false,
			Message: message,
			Error:   "INTERNAL_SERVER_ERROR",
		}
		if cfg.IsDevelopment() {
			resp.Detail = err.Error()
		}
		return c.Status(code).JSON(resp)
	}
}
