package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/repository"
)

type SavedDoctorService struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	saved    repository.SavedDoctorRepository
}

func NewSavedDoctorService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	saved repository.SavedDoctorRepository,
) *SavedDoctorService {
	return &SavedDoctorService{patients: patients, doctors: doctors, saved: saved}
}

func (s *SavedDoctorService) Save(patientID, doctorID string) error {
	if patientID == "" || doctorID == "" {
		return apperrors.ErrMissingFields
	}
	pid, err := uuid.Parse(patientID)
	if err != nil {
		return apperrors.ErrInvalidPatientID
	}
	did, err := uuid.Parse(doctorID)
	if err != nil {
		return apperrors.ErrInvalidDoctorID
	}

	if _, err := s.patients.ByID(pid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrPatientNotFound
		}
		return err
	}
	if _, err := s.doctors.ByID(did); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrDoctorNotFound
		}
		return err
	}

	// The pair-unique index is the arbiter under concurrency; a losing
	// duplicate insert surfaces as the same client error as a plain dup.
	if err := s.saved.Create(pid, did); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return apperrors.ErrDoctorAlreadySaved
		}
		return fmt.Errorf("failed to save doctor: %w", err)
	}
	return nil
}

// Unsave is idempotent: removing a pair that is not there succeeds.
func (s *SavedDoctorService) Unsave(patientID, doctorID string) error {
	if patientID == "" || doctorID == "" {
		return apperrors.ErrMissingFields
	}
	pid, err := uuid.Parse(patientID)
	if err != nil {
		return apperrors.ErrInvalidPatientID
	}
	did, err := uuid.Parse(doctorID)
	if err != nil {
		return apperrors.ErrInvalidDoctorID
	}

	if _, err := s.patients.ByID(pid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrPatientNotFound
		}
		return err
	}

	if err := s.saved.Delete(pid, did); err != nil {
		return fmt.Errorf("failed to unsave doctor: %w", err)
	}
	return nil
}

func (s *SavedDoctorService) List(patientID string) ([]models.Doctor, error) {
	pid, err := uuid.Parse(patientID)
	if err != nil {
		return nil, apperrors.ErrInvalidPatientID
	}

	if _, err := s.patients.ByID(pid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrPatientNotFound
		}
		return nil, err
	}

	return s.saved.ListDoctors(pid)
}
