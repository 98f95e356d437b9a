package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

// Doctor is a care-provider account. Profile fields are filled in over the
// sequential onboarding steps; OTP fields are cleared once consumed.
type Doctor struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"size:255" json:"-"`
	GoogleID *string   `gorm:"size:255;uniqueIndex" json:"-"`

	Name           string         `gorm:"size:255" json:"name"`
	Age            int            `json:"age"`
	Gender         string         `gorm:"size:20" json:"gender"`
	Languages      datatypes.JSON `gorm:"type:jsonb" json:"languages"`
	ContactNumber  string         `gorm:"size:20" json:"contact_number"`
	WhatsappNumber string         `gorm:"size:20" json:"whatsapp_number"`

	Specialty         string `gorm:"size:100" json:"specialty"`
	Qualification     string `gorm:"size:100" json:"qualification"`
	YearsOfExperience int    `json:"years_of_experience"`
	Address           string `gorm:"size:255" json:"address"`
	City              string `gorm:"size:100" json:"city"`
	Locality          string `gorm:"size:100" json:"locality"`

	AvailableDays   datatypes.JSON `gorm:"type:jsonb" json:"available_days"`
	AvailableTiming string         `gorm:"size:11" json:"available_timing"`

	OnboardingStep onboarding.Step `gorm:"size:40;not null" json:"onboarding_step"`
	OTPCode        *string         `gorm:"size:6" json:"-"`
	OTPExpiresAt   *time.Time      `json:"-"`

	ViewCount int `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsComplete reports whether the doctor finished every onboarding step.
func (d *Doctor) IsComplete() bool {
	return d.OnboardingStep == onboarding.StepComplete
}
