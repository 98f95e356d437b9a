package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedDoctor is a patient's bookmark of a doctor. The composite unique
// index makes the pair the source of truth for duplicate detection, so
// concurrent saves cannot create two rows.
type SavedDoctor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_doctors_pair" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_doctors_pair" json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
}
