package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/mail"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
	"github.com/medimatch/medimatch-backend/internal/repository"
	"github.com/medimatch/medimatch-backend/internal/validate"
)

// RegistrationResult carries the new account id, plus the OTP itself when
// mail delivery failed and the flow degrades to echoing the code.
type RegistrationResult struct {
	AccountID uuid.UUID
	DevOTP    string
}

type DoctorService struct {
	doctors repository.DoctorRepository
	mailer  mail.Mailer
	cfg     *config.Config
}

func NewDoctorService(doctors repository.DoctorRepository, mailer mail.Mailer, cfg *config.Config) *DoctorService {
	return &DoctorService{doctors: doctors, mailer: mailer, cfg: cfg}
}

func (s *DoctorService) Register(req *dto.RegisterRequest) (*RegistrationResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.ErrMissingFields
	}
	email, aerr := validate.Email(req.Email)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := validate.Password(req.Password); aerr != nil {
		return nil, aerr
	}

	if _, err := s.doctors.ByEmail(email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("email lookup failed: %w", err)
	}

	code, expiry, err := generateOTP()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	doctor := &models.Doctor{
		ID:             uuid.New(),
		Email:          email,
		Password:       string(hash),
		OnboardingStep: onboarding.StepEmailVerified,
		OTPCode:        &code,
		OTPExpiresAt:   &expiry,
	}
	if err := s.doctors.Create(doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	// The account is committed at this point. A mail failure only degrades
	// the response, it never rolls back the registration.
	result := &RegistrationResult{AccountID: doctor.ID}
	if err := s.mailer.SendOTP(email, code); err != nil {
		slog.Warn("OTP email delivery failed, echoing code in response",
			"email", email, "error", err)
		result.DevOTP = code
	}
	return result, nil
}

func (s *DoctorService) VerifyOTP(req *dto.VerifyOTPRequest) (string, *models.Doctor, error) {
	if req.Email == "" || req.OTP == "" {
		return "", nil, apperrors.ErrMissingFields
	}
	email, aerr := validate.Email(req.Email)
	if aerr != nil {
		return "", nil, aerr
	}
	code, aerr := validate.OTP(req.OTP)
	if aerr != nil {
		return "", nil, aerr
	}

	doctor, err := s.doctors.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperrors.ErrDoctorNotFound
		}
		return "", nil, err
	}

	if doctor.OTPCode == nil {
		return "", nil, apperrors.ErrOTPNotFound
	}
	if *doctor.OTPCode != code {
		return "", nil, apperrors.ErrInvalidOTP
	}
	if doctor.OTPExpiresAt == nil || time.Now().After(*doctor.OTPExpiresAt) {
		return "", nil, apperrors.ErrOTPExpired
	}

	doctor.OTPCode = nil
	doctor.OTPExpiresAt = nil
	doctor.OnboardingStep = onboarding.AfterVerification()
	if err := s.doctors.Save(doctor); err != nil {
		return "", nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	token, err := IssueSessionToken(s.cfg, doctor.ID, doctor.Email, onboarding.RoleDoctor)
	if err != nil {
		return "", nil, err
	}
	return token, doctor, nil
}

// Login deliberately reports every failure as INVALID_CREDENTIALS so the
// endpoint cannot be used to enumerate accounts.
func (s *DoctorService) Login(req *dto.LoginRequest) (string, *models.Doctor, error) {
	doctor, err := s.doctors.ByEmail(req.Email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if doctor.Password == "" {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := IssueSessionToken(s.cfg, doctor.ID, doctor.Email, onboarding.RoleDoctor)
	if err != nil {
		return "", nil, err
	}
	return token, doctor, nil
}

func (s *DoctorService) SubmitPersonalInfo(doctorID uuid.UUID, req *dto.DoctorPersonalInfoRequest) (*models.Doctor, error) {
	if req.Name == "" || req.Age == nil || req.Gender == "" ||
		req.Languages == nil || req.ContactNumber == "" || req.WhatsappNumber == "" {
		return nil, apperrors.ErrMissingFields
	}

	name, aerr := validate.Name(req.Name)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := validate.Age(*req.Age, 18, 100); aerr != nil {
		return nil, aerr
	}
	gender, aerr := validate.Gender(req.Gender)
	if aerr != nil {
		return nil, aerr
	}
	languages, aerr := validate.Languages(req.Languages)
	if aerr != nil {
		return nil, aerr
	}
	contact, aerr := validate.Phone(req.ContactNumber, apperrors.ErrInvalidContactNumber)
	if aerr != nil {
		return nil, aerr
	}
	whatsapp, aerr := validate.Phone(req.WhatsappNumber, apperrors.ErrInvalidWhatsappNumber)
	if aerr != nil {
		return nil, aerr
	}

	doctor, next, err := s.atStep(doctorID, onboarding.ActionPersonalInfo)
	if err != nil {
		return nil, err
	}

	doctor.Name = name
	doctor.Age = *req.Age
	doctor.Gender = gender
	doctor.Languages = jsonList(languages)
	doctor.ContactNumber = contact
	doctor.WhatsappNumber = whatsapp
	doctor.OnboardingStep = next

	if err := s.doctors.Save(doctor); err != nil {
		return nil, fmt.Errorf("failed to save personal info: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) SubmitProfessionalInfo(doctorID uuid.UUID, req *dto.DoctorProfessionalInfoRequest) (*models.Doctor, error) {
	if req.Specialty == "" || req.Qualification == "" || req.YearsOfExperience == nil ||
		req.Address == "" || req.City == "" || req.Locality == "" {
		return nil, apperrors.ErrMissingFields
	}

	specialty, aerr := validate.MinLen(req.Specialty, 2, apperrors.ErrInvalidSpecialty)
	if aerr != nil {
		return nil, aerr
	}
	qualification, aerr := validate.MinLen(req.Qualification, 2, apperrors.ErrInvalidQualification)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := validate.YearsOfExperience(*req.YearsOfExperience); aerr != nil {
		return nil, aerr
	}
	address, aerr := validate.MinLen(req.Address, 5, apperrors.ErrInvalidAddress)
	if aerr != nil {
		return nil, aerr
	}
	city, aerr := validate.MinLen(req.City, 2, apperrors.ErrInvalidCity)
	if aerr != nil {
		return nil, aerr
	}
	locality, aerr := validate.MinLen(req.Locality, 2, apperrors.ErrInvalidLocality)
	if aerr != nil {
		return nil, aerr
	}

	doctor, next, err := s.atStep(doctorID, onboarding.ActionProfessionalInfo)
	if err != nil {
		return nil, err
	}

	doctor.Specialty = specialty
	doctor.Qualification = qualification
	doctor.YearsOfExperience = *req.YearsOfExperience
	doctor.Address = address
	doctor.City = city
	doctor.Locality = locality
	doctor.OnboardingStep = next

	if err := s.doctors.Save(doctor); err != nil {
		return nil, fmt.Errorf("failed to save professional info: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) SubmitAvailability(doctorID uuid.UUID, req *dto.DoctorAvailabilityRequest) (*models.Doctor, error) {
	if req.AvailableDays == nil || req.AvailableTiming == "" {
		return nil, apperrors.ErrMissingFields
	}

	days, aerr := validate.AvailableDays(req.AvailableDays)
	if aerr != nil {
		return nil, aerr
	}
	timing, aerr := validate.AvailableTiming(req.AvailableTiming)
	if aerr != nil {
		return nil, aerr
	}

	doctor, next, err := s.atStep(doctorID, onboarding.ActionAvailability)
	if err != nil {
		return nil, err
	}

	doctor.AvailableDays = jsonList(days)
	doctor.AvailableTiming = timing
	doctor.OnboardingStep = next

	if err := s.doctors.Save(doctor); err != nil {
		return nil, fmt.Errorf("failed to save availability: %w", err)
	}
	return doctor, nil
}

func (s *DoctorService) Get(id string) (*models.Doctor, error) {
	doctorID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidDoctorID
	}
	doctor, err := s.doctors.ByID(doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) List() ([]models.Doctor, error) {
	return s.doctors.List()
}

// RecordProfileView bumps the view counter by exactly one and returns the
// refreshed profile. The delta lives in the storage layer, so concurrent
// views never overwrite each other.
func (s *DoctorService) RecordProfileView(id string) (*models.Doctor, error) {
	doctorID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidDoctorID
	}
	doctor, err := s.doctors.IncrementViewCount(doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// atStep loads the doctor and consults the transition table for the action.
func (s *DoctorService) atStep(doctorID uuid.UUID, action onboarding.Action) (*models.Doctor, onboarding.Step, error) {
	doctor, err := s.doctors.ByID(doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.ErrDoctorNotFound
		}
		return nil, "", err
	}
	next, err := onboarding.Advance(onboarding.RoleDoctor, action, doctor.OnboardingStep)
	if err != nil {
		return nil, "", apperrors.ErrInvalidStep
	}
	return doctor, next, nil
}

func jsonList(list []string) datatypes.JSON {
	b, _ := json.Marshal(list)
	return datatypes.JSON(b)
}
