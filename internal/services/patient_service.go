package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/mail"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
	"github.com/medimatch/medimatch-backend/internal/repository"
	"github.com/medimatch/medimatch-backend/internal/validate"
)

type PatientService struct {
	patients repository.PatientRepository
	mailer   mail.Mailer
	cfg      *config.Config
}

func NewPatientService(patients repository.PatientRepository, mailer mail.Mailer, cfg *config.Config) *PatientService {
	return &PatientService{patients: patients, mailer: mailer, cfg: cfg}
}

func (s *PatientService) Register(req *dto.RegisterRequest) (*RegistrationResult, error) {
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

	if _, err := s.patients.ByEmail(email); err == nil {
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

	patient := &models.Patient{
		ID:             uuid.New(),
		Email:          email,
		Password:       string(hash),
		OnboardingStep: onboarding.StepEmailVerified,
		OTPCode:        &code,
		OTPExpiresAt:   &expiry,
	}
	if err := s.patients.Create(patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	result := &RegistrationResult{AccountID: patient.ID}
	if err := s.mailer.SendOTP(email, code); err != nil {
		slog.Warn("OTP email delivery failed, echoing code in response",
			"email", email, "error", err)
		result.DevOTP = code
	}
	return result, nil
}

func (s *PatientService) VerifyOTP(req *dto.VerifyOTPRequest) (string, *models.Patient, error) {
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

	patient, err := s.patients.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperrors.ErrPatientNotFound
		}
		return "", nil, err
	}

	if patient.OTPCode == nil {
		return "", nil, apperrors.ErrOTPNotFound
	}
	if *patient.OTPCode != code {
		return "", nil, apperrors.ErrInvalidOTP
	}
	if patient.OTPExpiresAt == nil || time.Now().After(*patient.OTPExpiresAt) {
		return "", nil, apperrors.ErrOTPExpired
	}

	patient.OTPCode = nil
	patient.OTPExpiresAt = nil
	patient.OnboardingStep = onboarding.AfterVerification()
	if err := s.patients.Save(patient); err != nil {
		return "", nil, fmt.Errorf("failed to update patient: %w", err)
	}

	token, err := IssueSessionToken(s.cfg, patient.ID, patient.Email, onboarding.RolePatient)
	if err != nil {
		return "", nil, err
	}
	return token, patient, nil
}

func (s *PatientService) Login(req *dto.LoginRequest) (string, *models.Patient, error) {
	patient, err := s.patients.ByEmail(req.Email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if patient.Password == "" {
		return "", nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := IssueSessionToken(s.cfg, patient.ID, patient.Email, onboarding.RolePatient)
	if err != nil {
		return "", nil, err
	}
	return token, patient, nil
}

func (s *PatientService) SubmitPersonalInfo(patientID uuid.UUID, req *dto.PatientPersonalInfoRequest) (*models.Patient, error) {
	if req.Name == "" || req.PhoneNumber == "" || req.Age == nil || req.Gender == "" ||
		req.City == "" || req.Locality == "" || req.Address == "" {
		return nil, apperrors.ErrMissingFields
	}

	name, aerr := validate.Name(req.Name)
	if aerr != nil {
		return nil, aerr
	}
	phone, aerr := validate.Phone(req.PhoneNumber, apperrors.ErrInvalidPhoneNumber)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := validate.Age(*req.Age, 1, 120); aerr != nil {
		return nil, aerr
	}
	gender, aerr := validate.Gender(req.Gender)
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
	address, aerr := validate.MinLen(req.Address, 5, apperrors.ErrInvalidAddress)
	if aerr != nil {
		return nil, aerr
	}

	patient, err := s.patients.ByID(patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}
	next, err := onboarding.Advance(onboarding.RolePatient, onboarding.ActionPersonalInfo, patient.OnboardingStep)
	if err != nil {
		return nil, apperrors.ErrInvalidStep
	}

	patient.Name = name
	patient.PhoneNumber = phone
	patient.Age = *req.Age
	patient.Gender = gender
	patient.City = city
	patient.Locality = locality
	patient.Address = address
	patient.OnboardingStep = next

	if err := s.patients.Save(patient); err != nil {
		return nil, fmt.Errorf("failed to save personal info: %w", err)
	}
	return patient, nil
}

func (s *PatientService) Get(id string) (*models.Patient, error) {
	patientID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrInvalidPatientID
	}
	patient, err := s.patients.ByID(patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) List() ([]models.Patient, error) {
	return s.patients.List()
}
