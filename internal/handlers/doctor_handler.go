package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/middleware"
	"github.com/medimatch/medimatch-backend/internal/services"
)

type DoctorHandler struct {
	service *services.DoctorService
	cfg     *config.Config
}

func NewDoctorHandler(service *services.DoctorService, cfg *config.Config) *DoctorHandler {
	return &DoctorHandler{service: service, cfg: cfg}
}

func (h *DoctorHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	result, err := h.service.Register(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}

	data := fiber.Map{"doctor_id": result.AccountID}
	message := "Registration successful, verify the OTP sent to your email"
	if result.DevOTP != "" {
		// Mail transport was unavailable; the flow stays usable by
		// echoing the code, flagged through the message.
		data["otp"] = result.DevOTP
		message = "Registration successful, but the verification email could not be sent; use the included OTP"
	}
	return respond(c, fiber.StatusCreated, message, data)
}

func (h *DoctorHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	token, doctor, err := h.service.VerifyOTP(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Email verified", fiber.Map{
		"token":  token,
		"doctor": doctor,
	})
}

func (h *DoctorHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	token, doctor, err := h.service.Login(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token":  token,
		"doctor": doctor,
	})
}

func (h *DoctorHandler) PersonalInfo(c *fiber.Ctx) error {
	doctorID, err := middleware.AccountID(c)
	if err != nil {
		return respondErr(c, h.cfg, apperrors.ErrInvalidCredentials.WithMessage("Unauthorized"))
	}

	var req dto.DoctorPersonalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	doctor, err := h.service.SubmitPersonalInfo(doctorID, &req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Personal info saved", fiber.Map{"doctor": doctor})
}

func (h *DoctorHandler) ProfessionalInfo(c *fiber.Ctx) error {
	doctorID, err := middleware.AccountID(c)
	if err != nil {
		return respondErr(c, h.cfg, apperrors.ErrInvalidCredentials.WithMessage("Unauthorized"))
	}

	var req dto.DoctorProfessionalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	doctor, err := h.service.SubmitProfessionalInfo(doctorID, &req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Professional info saved", fiber.Map{"doctor": doctor})
}

func (h *DoctorHandler) Availability(c *fiber.Ctx) error {
	doctorID, err := middleware.AccountID(c)
	if err != nil {
		return respondErr(c, h.cfg, apperrors.ErrInvalidCredentials.WithMessage("Unauthorized"))
	}

	var req dto.DoctorAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	doctor, err := h.service.SubmitAvailability(doctorID, &req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Availability saved, onboarding complete", fiber.Map{"doctor": doctor})
}

func (h *DoctorHandler) List(c *fiber.Ctx) error {
	doctors, err := h.service.List()
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respondList(c, "Doctors fetched", fiber.Map{"doctors": doctors}, len(doctors))
}

func (h *DoctorHandler) Get(c *fiber.Ctx) error {
	doctor, err := h.service.Get(c.Params("id"))
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Doctor fetched", fiber.Map{"doctor": doctor})
}

func (h *DoctorHandler) View(c *fiber.Ctx) error {
	doctor, err := h.service.RecordProfileView(c.Params("id"))
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Profile view recorded", fiber.Map{"doctor": doctor})
}
