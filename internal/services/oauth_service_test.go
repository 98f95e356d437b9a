package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/oauth"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

func newOAuthFixture() (*OAuthService, *fakeDoctorRepo, *fakePatientRepo) {
	doctors := newFakeDoctorRepo()
	patients := newFakePatientRepo()
	return NewOAuthService(doctors, patients, testConfig()), doctors, patients
}

func TestReconcileNewDoctor(t *testing.T) {
	svc, doctors, _ := newOAuthFixture()
	identity := testIdentity("asha@example.com")

	result, err := svc.Reconcile(identity, onboarding.RoleDoctor)
	require.NoError(t, err)
	require.True(t, result.IsNewUser)
	require.False(t, result.IsReturningIncomplete)
	require.Equal(t, DestinationOnboarding, result.Destination)
	require.Equal(t, onboarding.RoleDoctor, result.Role)
	require.NotEmpty(t, result.Token)

	stored, err := doctors.ByID(result.AccountID)
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", stored.Email)
	require.NotNil(t, stored.GoogleID)
	require.Equal(t, identity.SubjectID, *stored.GoogleID)
	require.Equal(t, onboarding.StepPersonalInfoComplete, stored.OnboardingStep, "OTP verification is skipped")
	require.Empty(t, stored.Password)
}

func TestReconcileIsIdempotent(t *testing.T) {
	svc, doctors, _ := newOAuthFixture()
	identity := testIdentity("asha@example.com")

	first, err := svc.Reconcile(identity, onboarding.RoleDoctor)
	require.NoError(t, err)
	second, err := svc.Reconcile(identity, onboarding.RoleDoctor)
	require.NoError(t, err)

	require.Equal(t, first.AccountID, second.AccountID, "same identity must resolve to the same account")
	require.Equal(t, first.Destination, second.Destination)
	require.False(t, second.IsNewUser)
	require.Len(t, doctors.rows, 1)
}

func TestReconcileLinksIncompleteDoctorByEmail(t *testing.T) {
	doctors := newFakeDoctorRepo()
	doctorSvc := NewDoctorService(doctors, &fakeMailer{}, testConfig())
	svc := NewOAuthService(doctors, newFakePatientRepo(), testConfig())

	// A password account stuck mid-onboarding, with personal info filled in.
	id := verifiedDoctor(t, doctorSvc, doctors, "asha@example.com")
	_, err := doctorSvc.SubmitPersonalInfo(id, &dto.DoctorPersonalInfoRequest{
		Name:           "Dr. A. Rao",
		Age:            intp(34),
		Gender:         "FEMALE",
		Languages:      []string{"English"},
		ContactNumber:  "+919876543210",
		WhatsappNumber: "+919876543210",
	})
	require.NoError(t, err)

	identity := testIdentity("asha@example.com")
	result, err := svc.Reconcile(identity, onboarding.RoleDoctor)
	require.NoError(t, err)
	require.Equal(t, id, result.AccountID)
	require.False(t, result.IsNewUser)
	require.True(t, result.IsReturningIncomplete)
	require.Equal(t, DestinationOnboarding, result.Destination)

	stored, err := doctors.ByID(id)
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	require.Equal(t, identity.SubjectID, *stored.GoogleID)
	require.Equal(t, "Asha Rao", stored.Name, "Google profile name replaces the stored one")
	require.Equal(t, onboarding.StepPersonalInfoComplete, stored.OnboardingStep, "linking re-opens onboarding from the top")
	require.Equal(t, 34, stored.Age, "already-filled fields survive the reset")
	require.NotEmpty(t, stored.Password, "linking must not clear the password")
}

func TestReconcileLinksCompleteDoctorByEmail(t *testing.T) {
	doctors := newFakeDoctorRepo()
	svc := NewOAuthService(doctors, newFakePatientRepo(), testConfig())

	doctor := &models.Doctor{
		ID:             uuid.New(),
		Email:          "asha@example.com",
		Name:           "Dr. Asha Rao",
		OnboardingStep: onboarding.StepComplete,
	}
	require.NoError(t, doctors.Create(doctor))

	identity := testIdentity("asha@example.com")
	result, err := svc.Reconcile(identity, onboarding.RoleDoctor)
	require.NoError(t, err)
	require.Equal(t, doctor.ID, result.AccountID)
	require.False(t, result.IsNewUser)
	require.False(t, result.IsReturningIncomplete)
	require.Equal(t, DestinationDashboard, result.Destination)

	stored, err := doctors.ByID(doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	require.Equal(t, "Dr. Asha Rao", stored.Name, "a complete profile keeps its own name")
	require.Equal(t, onboarding.StepComplete, stored.OnboardingStep)
}

func TestReconcileNewPatient(t *testing.T) {
	svc, _, patients := newOAuthFixture()
	identity := testIdentity("ravi@example.com")

	result, err := svc.Reconcile(identity, onboarding.RolePatient)
	require.NoError(t, err)
	require.True(t, result.IsNewUser)
	require.Equal(t, onboarding.RolePatient, result.Role)
	require.Equal(t, DestinationOnboarding, result.Destination)

	stored, err := patients.ByID(result.AccountID)
	require.NoError(t, err)
	require.Equal(t, onboarding.StepPersonalInfoComplete, stored.OnboardingStep)
}

func TestReconcileCompletePatientGoesToDashboard(t *testing.T) {
	svc, _, patients := newOAuthFixture()

	sub := "google-sub-ravi"
	patient := &models.Patient{
		ID:             uuid.New(),
		Email:          "ravi@example.com",
		Name:           "Ravi Kumar",
		PhoneNumber:    "+919988776655",
		City:           "Chennai",
		GoogleID:       &sub,
		OnboardingStep: onboarding.StepPersonalInfoComplete,
	}
	require.NoError(t, patients.Create(patient))

	result, err := svc.Reconcile(&oauth.Identity{SubjectID: sub, Email: "ravi@example.com", Name: "Ravi Kumar"}, onboarding.RolePatient)
	require.NoError(t, err)
	require.Equal(t, patient.ID, result.AccountID)
	require.False(t, result.IsNewUser)
	require.Equal(t, DestinationDashboard, result.Destination, "name, phone and city filled means complete")
}
