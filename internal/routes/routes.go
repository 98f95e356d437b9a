package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/handlers"
	"github.com/medimatch/medimatch-backend/internal/middleware"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	doctorHandler *handlers.DoctorHandler,
	patientHandler *handlers.PatientHandler,
	oauthHandler *handlers.OAuthHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit: 10 req/min per IP
	authLimit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	jwtGuard := middleware.JWTProtected(cfg)

	// Doctor pipeline
	doctors := api.Group("/doctors")
	doctorOnboarding := doctors.Group("/onboarding")
	doctorOnboarding.Post("/auth", authLimit, doctorHandler.Register)
	doctorOnboarding.Post("/verify-otp", authLimit, doctorHandler.VerifyOTP)
	doctorOnboarding.Post("/personal-info", jwtGuard, middleware.RequireRole(onboarding.RoleDoctor), doctorHandler.PersonalInfo)
	doctorOnboarding.Post("/professional-info", jwtGuard, middleware.RequireRole(onboarding.RoleDoctor), doctorHandler.ProfessionalInfo)
	doctorOnboarding.Post("/availability", jwtGuard, middleware.RequireRole(onboarding.RoleDoctor), doctorHandler.Availability)
	doctors.Post("/login", authLimit, doctorHandler.Login)
	doctors.Get("/", doctorHandler.List)
	doctors.Get("/:id", doctorHandler.Get)
	doctors.Post("/:id/view", doctorHandler.View)

	// Patient pipeline
	patients := api.Group("/patients")
	patientOnboarding := patients.Group("/onboarding")
	patientOnboarding.Post("/auth", authLimit, patientHandler.Register)
	patientOnboarding.Post("/verify-otp", authLimit, patientHandler.VerifyOTP)
	patientOnboarding.Post("/personal-info", jwtGuard, middleware.RequireRole(onboarding.RolePatient), patientHandler.PersonalInfo)
	patients.Post("/login", authLimit, patientHandler.Login)
	patients.Get("/", patientHandler.List)
	patients.Post("/saved-doctors", patientHandler.SaveDoctor)
	patients.Delete("/saved-doctors", patientHandler.UnsaveDoctor)
	patients.Get("/:patientId/saved-doctors", patientHandler.ListSavedDoctors)
	patients.Get("/:id", patientHandler.Get)

	// Google sign-in; the static callback/verify routes are registered
	// before the :userType wildcard.
	google := api.Group("/auth/google", authLimit)
	google.Get("/callback", oauthHandler.Callback)
	google.Post("/verify", oauthHandler.Verify)
	google.Get("/:userType", oauthHandler.Initiate)
}
