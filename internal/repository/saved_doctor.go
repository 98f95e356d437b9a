package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medimatch/medimatch-backend/internal/models"
)

type SavedDoctorRepository interface {
	// Create inserts the pair; a second insert of the same pair returns
	// ErrDuplicate via the composite unique index.
	Create(patientID, doctorID uuid.UUID) error
	// Delete removes the pair; deleting a pair that does not exist is a no-op.
	Delete(patientID, doctorID uuid.UUID) error
	ListDoctors(patientID uuid.UUID) ([]models.Doctor, error)
}

type gormSavedDoctorRepository struct {
	db *gorm.DB
}

func NewSavedDoctorRepository(db *gorm.DB) SavedDoctorRepository {
	return &gormSavedDoctorRepository{db: db}
}

func (r *gormSavedDoctorRepository) Create(patientID, doctorID uuid.UUID) error {
	rel := models.SavedDoctor{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	return translate(r.db.Create(&rel).Error)
}

func (r *gormSavedDoctorRepository) Delete(patientID, doctorID uuid.UUID) error {
	return translate(r.db.
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Delete(&models.SavedDoctor{}).Error)
}

func (r *gormSavedDoctorRepository) ListDoctors(patientID uuid.UUID) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Model(&models.Doctor{}).
		Joins("JOIN saved_doctors ON saved_doctors.doctor_id = doctors.id").
		Where("saved_doctors.patient_id = ?", patientID).
		Order("saved_doctors.created_at DESC").
		Find(&doctors).Error
	if err != nil {
		return nil, translate(err)
	}
	return doctors, nil
}
