package onboarding

import "errors"

// Step is the stored onboarding progress marker on an account.
type Step string

const (
	StepEmailVerified            Step = "EMAIL_VERIFIED"
	StepPersonalInfoComplete     Step = "PERSONAL_INFO_COMPLETE"
	StepProfessionalInfoComplete Step = "PROFESSIONAL_INFO_COMPLETE"
	StepAvailabilityComplete     Step = "AVAILABILITY_COMPLETE"
	StepComplete                 Step = "COMPLETE"
)

// Role distinguishes the two account pipelines.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Action names a profile-completion endpoint.
type Action string

const (
	ActionPersonalInfo     Action = "personal-info"
	ActionProfessionalInfo Action = "professional-info"
	ActionAvailability     Action = "availability"
)

// ErrWrongStep means the account is not at the step this action completes.
var ErrWrongStep = errors.New("account is not at the required onboarding step")

type transition struct {
	from Step
	to   Step
}

// The full transition table. Each action is permitted at exactly one step and
// advances to exactly one next step; the patient personal-info action has no
// successor and leaves the marker where it is.
var transitions = map[Role]map[Action]transition{
	RoleDoctor: {
		ActionPersonalInfo:     {from: StepPersonalInfoComplete, to: StepProfessionalInfoComplete},
		ActionProfessionalInfo: {from: StepProfessionalInfoComplete, to: StepAvailabilityComplete},
		ActionAvailability:     {from: StepAvailabilityComplete, to: StepComplete},
	},
	RolePatient: {
		ActionPersonalInfo: {from: StepPersonalInfoComplete, to: StepPersonalInfoComplete},
	},
}

// Advance returns the step that follows action for the given role, or
// ErrWrongStep when the account's current step does not permit the action.
func Advance(role Role, action Action, current Step) (Step, error) {
	t, ok := transitions[role][action]
	if !ok || current != t.from {
		return "", ErrWrongStep
	}
	return t.to, nil
}

// AfterVerification is the step every account lands on once its OTP is
// consumed (or when it enters through Google sign-in, which skips the OTP).
func AfterVerification() Step {
	return StepPersonalInfoComplete
}

// ParseRole validates a user-supplied role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDoctor, RolePatient:
		return Role(s), true
	}
	return "", false
}
