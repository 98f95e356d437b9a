package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/oauth"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
	"github.com/medimatch/medimatch-backend/internal/repository"
)

// Routing destinations handed back to the front end after reconciliation.
const (
	DestinationDashboard  = "dashboard"
	DestinationOnboarding = "onboarding"
)

// OAuthResult is the stable outcome of reconciling an external identity:
// the same identity resolves to the same account on every retry.
type OAuthResult struct {
	Token                 string
	AccountID             uuid.UUID
	Role                  onboarding.Role
	Email                 string
	IsNewUser             bool
	IsReturningIncomplete bool
	Destination           string
}

type OAuthService struct {
	doctors  repository.DoctorRepository
	patients repository.PatientRepository
	cfg      *config.Config
}

func NewOAuthService(doctors repository.DoctorRepository, patients repository.PatientRepository, cfg *config.Config) *OAuthService {
	return &OAuthService{doctors: doctors, patients: patients, cfg: cfg}
}

// Reconcile resolves a verified Google identity into exactly one outcome:
// already linked, linkable by email, or a brand-new account. Linking an
// incomplete account resets its step back to PERSONAL_INFO_COMPLETE, which
// re-opens onboarding from the top while keeping any fields already filled.
func (s *OAuthService) Reconcile(identity *oauth.Identity, role onboarding.Role) (*OAuthResult, error) {
	switch role {
	case onboarding.RoleDoctor:
		return s.reconcileDoctor(identity)
	case onboarding.RolePatient:
		return s.reconcilePatient(identity)
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

func (s *OAuthService) reconcileDoctor(identity *oauth.Identity) (*OAuthResult, error) {
	// Outcome 1: identity already linked.
	if doctor, err := s.doctors.ByGoogleID(identity.SubjectID); err == nil {
		return s.doctorResult(doctor, false, false)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Outcome 2: same email, link the identity to the existing account.
	if doctor, err := s.doctors.ByEmail(identity.Email); err == nil {
		doctor.GoogleID = &identity.SubjectID
		returning := false
		if !doctor.IsComplete() {
			if identity.Name != "" {
				doctor.Name = identity.Name
			}
			doctor.OnboardingStep = onboarding.AfterVerification()
			returning = true
		}
		if err := s.doctors.Save(doctor); err != nil {
			return nil, fmt.Errorf("failed to link doctor account: %w", err)
		}
		return s.doctorResult(doctor, false, returning)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Outcome 3: brand-new account, OTP verification is skipped entirely.
	doctor := &models.Doctor{
		ID:             uuid.New(),
		Email:          identity.Email,
		Name:           identity.Name,
		GoogleID:       &identity.SubjectID,
		OnboardingStep: onboarding.AfterVerification(),
	}
	if err := s.doctors.Create(doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a create race with an identical request; the uniqueness
			// invariants guarantee the rerun resolves to the winner's row.
			return s.reconcileDoctor(identity)
		}
		return nil, fmt.Errorf("failed to create doctor from identity: %w", err)
	}
	return s.doctorResult(doctor, true, false)
}

func (s *OAuthService) reconcilePatient(identity *oauth.Identity) (*OAuthResult, error) {
	if patient, err := s.patients.ByGoogleID(identity.SubjectID); err == nil {
		return s.patientResult(patient, false, false)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if patient, err := s.patients.ByEmail(identity.Email); err == nil {
		patient.GoogleID = &identity.SubjectID
		returning := false
		if !patient.IsComplete() {
			if identity.Name != "" {
				patient.Name = identity.Name
			}
			patient.OnboardingStep = onboarding.AfterVerification()
			returning = true
		}
		if err := s.patients.Save(patient); err != nil {
			return nil, fmt.Errorf("failed to link patient account: %w", err)
		}
		return s.patientResult(patient, false, returning)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	patient := &models.Patient{
		ID:             uuid.New(),
		Email:          identity.Email,
		Name:           identity.Name,
		GoogleID:       &identity.SubjectID,
		OnboardingStep: onboarding.AfterVerification(),
	}
	if err := s.patients.Create(patient); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.reconcilePatient(identity)
		}
		return nil, fmt.Errorf("failed to create patient from identity: %w", err)
	}
	return s.patientResult(patient, true, false)
}

func (s *OAuthService) doctorResult(doctor *models.Doctor, isNew, returning bool) (*OAuthResult, error) {
	token, err := IssueSessionToken(s.cfg, doctor.ID, doctor.Email, onboarding.RoleDoctor)
	if err != nil {
		return nil, err
	}
	destination := DestinationOnboarding
	if doctor.IsComplete() {
		destination = DestinationDashboard
	}
	return &OAuthResult{
		Token:                 token,
		AccountID:             doctor.ID,
		Role:                  onboarding.RoleDoctor,
		Email:                 doctor.Email,
		IsNewUser:             isNew,
		IsReturningIncomplete: returning,
		Destination:           destination,
	}, nil
}

func (s *OAuthService) patientResult(patient *models.Patient, isNew, returning bool) (*OAuthResult, error) {
	token, err := IssueSessionToken(s.cfg, patient.ID, patient.Email, onboarding.RolePatient)
	if err != nil {
		return nil, err
	}
	destination := DestinationOnboarding
	if patient.IsComplete() {
		destination = DestinationDashboard
	}
	return &OAuthResult{
		Token:                 token,
		AccountID:             patient.ID,
		Role:                  onboarding.RolePatient,
		Email:                 patient.Email,
		IsNewUser:             isNew,
		IsReturningIncomplete: returning,
		Destination:           destination,
	}, nil
}
