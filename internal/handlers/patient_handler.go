package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/middleware"
	"github.com/medimatch/medimatch-backend/internal/services"
)

type PatientHandler struct {
	service *services.PatientService
	saved   *services.SavedDoctorService
	cfg     *config.Config
}

func NewPatientHandler(service *services.PatientService, saved *services.SavedDoctorService, cfg *config.Config) *PatientHandler {
	return &PatientHandler{service: service, saved: saved, cfg: cfg}
}

func (h *PatientHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	result, err := h.service.Register(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}

	data := fiber.Map{"patient_id": result.AccountID}
	message := "Registration successful, verify the OTP sent to your email"
	if result.DevOTP != "" {
		data["otp"] = result.DevOTP
		message = "Registration successful, but the verification email could not be sent; use the included OTP"
	}
	return respond(c, fiber.StatusCreated, message, data)
}

func (h *PatientHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	token, patient, err := h.service.VerifyOTP(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Email verified", fiber.Map{
		"token":   token,
		"patient": patient,
	})
}

func (h *PatientHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	token, patient, err := h.service.Login(&req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token":   token,
		"patient": patient,
	})
}

func (h *PatientHandler) PersonalInfo(c *fiber.Ctx) error {
	patientID, err := middleware.AccountID(c)
	if err != nil {
		return respondErr(c, h.cfg, apperrors.ErrInvalidCredentials.WithMessage("Unauthorized"))
	}

	var req dto.PatientPersonalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	patient, err := h.service.SubmitPersonalInfo(patientID, &req)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Personal info saved", fiber.Map{"patient": patient})
}

func (h *PatientHandler) List(c *fiber.Ctx) error {
	patients, err := h.service.List()
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respondList(c, "Patients fetched", fiber.Map{"patients": patients}, len(patients))
}

func (h *PatientHandler) Get(c *fiber.Ctx) error {
	patient, err := h.service.Get(c.Params("id"))
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Patient fetched", fiber.Map{"patient": patient})
}

func (h *PatientHandler) SaveDoctor(c *fiber.Ctx) error {
	var req dto.SavedDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	if err := h.saved.Save(req.PatientID, req.DoctorID); err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusCreated, "Doctor saved", nil)
}

func (h *PatientHandler) UnsaveDoctor(c *fiber.Ctx) error {
	var req dto.SavedDoctorRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}

	if err := h.saved.Unsave(req.PatientID, req.DoctorID); err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Doctor removed from saved list", nil)
}

func (h *PatientHandler) ListSavedDoctors(c *fiber.Ctx) error {
	doctors, err := h.saved.List(c.Params("patientId"))
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respondList(c, "Saved doctors fetched", fiber.Map{"doctors": doctors}, len(doctors))
}
