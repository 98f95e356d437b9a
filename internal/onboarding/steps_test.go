package onboarding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdvanceDoctorChain(t *testing.T) {
	step := AfterVerification()
	require.Equal(t, StepPersonalInfoComplete, step)

	step, err := Advance(RoleDoctor, ActionPersonalInfo, step)
	require.NoError(t, err)
	require.Equal(t, StepProfessionalInfoComplete, step)

	step, err = Advance(RoleDoctor, ActionProfessionalInfo, step)
	require.NoError(t, err)
	require.Equal(t, StepAvailabilityComplete, step)

	step, err = Advance(RoleDoctor, ActionAvailability, step)
	require.NoError(t, err)
	require.Equal(t, StepComplete, step)
}

func TestAdvanceRejectsOutOfOrder(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		action  Action
		current Step
	}{
		{"doctor skips personal info", RoleDoctor, ActionProfessionalInfo, StepPersonalInfoComplete},
		{"doctor skips professional info", RoleDoctor, ActionAvailability, StepPersonalInfoComplete},
		{"doctor repeats personal info", RoleDoctor, ActionPersonalInfo, StepProfessionalInfoComplete},
		{"doctor acts before verification", RoleDoctor, ActionPersonalInfo, StepEmailVerified},
		{"doctor acts after completion", RoleDoctor, ActionAvailability, StepComplete},
		{"patient before verification", RolePatient, ActionPersonalInfo, StepEmailVerified},
		{"patient uses doctor action", RolePatient, ActionProfessionalInfo, StepPersonalInfoComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Advance(tt.role, tt.action, tt.current)
			require.ErrorIs(t, err, ErrWrongStep)
		})
	}
}

func TestAdvancePatientPersonalInfoStaysPut(t *testing.T) {
	// The patient chain has no terminal marker; resubmission stays legal.
	step, err := Advance(RolePatient, ActionPersonalInfo, StepPersonalInfoComplete)
	require.NoError(t, err)
	require.Equal(t, StepPersonalInfoComplete, step)

	step, err = Advance(RolePatient, ActionPersonalInfo, step)
	require.NoError(t, err)
	require.Equal(t, StepPersonalInfoComplete, step)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("doctor")
	require.True(t, ok)
	require.Equal(t, RoleDoctor, role)

	role, ok = ParseRole("patient")
	require.True(t, ok)
	require.Equal(t, RolePatient, role)

	_, ok = ParseRole("admin")
	require.False(t, ok)

	_, ok = ParseRole("Doctor")
	require.False(t, ok, "role strings are case sensitive")
}
