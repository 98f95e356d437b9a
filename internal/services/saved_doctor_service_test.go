package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

func newSavedFixture(t *testing.T) (*SavedDoctorService, uuid.UUID, uuid.UUID) {
	t.Helper()
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	saved := newFakeSavedRepo(doctors)

	doctor := &models.Doctor{
		ID:             uuid.New(),
		Email:          "asha@example.com",
		Name:           "Dr. Asha Rao",
		OnboardingStep: onboarding.StepComplete,
	}
	require.NoError(t, doctors.Create(doctor))

	patient := &models.Patient{
		ID:    uuid.New(),
		Email: "ravi@example.com",
		Name:  "Ravi Kumar",
	}
	require.NoError(t, patients.Create(patient))

	return NewSavedDoctorService(patients, doctors, saved), patient.ID, doctor.ID
}

func TestSaveDoctor(t *testing.T) {
	svc, patientID, doctorID := newSavedFixture(t)

	require.NoError(t, svc.Save(patientID.String(), doctorID.String()))

	list, err := svc.List(patientID.String())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, doctorID, list[0].ID)
}

func TestSaveDoctorTwice(t *testing.T) {
	svc, patientID, doctorID := newSavedFixture(t)

	require.NoError(t, svc.Save(patientID.String(), doctorID.String()))
	err := svc.Save(patientID.String(), doctorID.String())
	requireCode(t, err, "DOCTOR_ALREADY_SAVED")
}

func TestSaveDoctorValidation(t *testing.T) {
	svc, patientID, doctorID := newSavedFixture(t)

	tests := []struct {
		name      string
		patientID string
		doctorID  string
		code      string
	}{
		{"missing patient id", "", doctorID.String(), "MISSING_FIELDS"},
		{"bad patient id", "not-a-uuid", doctorID.String(), "INVALID_PATIENT_ID_FORMAT"},
		{"bad doctor id", patientID.String(), "not-a-uuid", "INVALID_DOCTOR_ID_FORMAT"},
		{"unknown patient", uuid.NewString(), doctorID.String(), "PATIENT_NOT_FOUND"},
		{"unknown doctor", patientID.String(), uuid.NewString(), "DOCTOR_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, svc.Save(tt.patientID, tt.doctorID), tt.code)
		})
	}
}

func TestUnsaveDoctorIsIdempotent(t *testing.T) {
	svc, patientID, doctorID := newSavedFixture(t)

	require.NoError(t, svc.Save(patientID.String(), doctorID.String()))
	require.NoError(t, svc.Unsave(patientID.String(), doctorID.String()))

	list, err := svc.List(patientID.String())
	require.NoError(t, err)
	require.Empty(t, list)

	// Removing an absent pair is still a success.
	require.NoError(t, svc.Unsave(patientID.String(), doctorID.String()))
}

func TestListSavedDoctorsUnknownPatient(t *testing.T) {
	svc, _, _ := newSavedFixture(t)

	_, err := svc.List(uuid.NewString())
	requireCode(t, err, "PATIENT_NOT_FOUND")

	_, err = svc.List("not-a-uuid")
	requireCode(t, err, "INVALID_PATIENT_ID_FORMAT")
}
