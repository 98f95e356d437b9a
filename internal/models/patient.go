package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

// Patient is a care-seeker account. The pipeline is shorter than the
// doctor's: once personal info is in, the account is functionally complete
// even though the step marker never moves past PERSONAL_INFO_COMPLETE.
type Patient struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"size:255" json:"-"`
	GoogleID *string   `gorm:"size:255;uniqueIndex" json:"-"`

	Name        string `gorm:"size:255" json:"name"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Age         int    `json:"age"`
	Gender      string `gorm:"size:20" json:"gender"`
	City        string `gorm:"size:100" json:"city"`
	Locality    string `gorm:"size:100" json:"locality"`
	Address     string `gorm:"size:255" json:"address"`

	OnboardingStep onboarding.Step `gorm:"size:40;not null" json:"onboarding_step"`
	OTPCode        *string         `gorm:"size:6" json:"-"`
	OTPExpiresAt   *time.Time      `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsComplete reports whether the patient's profile carries the fields that
// count as a finished onboarding (there is no terminal step marker).
func (p *Patient) IsComplete() bool {
	return p.Name != "" && p.PhoneNumber != "" && p.City != ""
}
