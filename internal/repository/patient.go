package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medimatch/medimatch-backend/internal/models"
)

type PatientRepository interface {
	Create(p *models.Patient) error
	ByID(id uuid.UUID) (*models.Patient, error)
	ByEmail(email string) (*models.Patient, error)
	ByGoogleID(googleID string) (*models.Patient, error)
	Save(p *models.Patient) error
	List() ([]models.Patient, error)
}

type gormPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &gormPatientRepository{db: db}
}

func (r *gormPatientRepository) Create(p *models.Patient) error {
	return translate(r.db.Create(p).Error)
}

func (r *gormPatientRepository) ByID(id uuid.UUID) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *gormPatientRepository) ByEmail(email string) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.First(&p, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *gormPatientRepository) ByGoogleID(googleID string) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.First(&p, "google_id = ?", googleID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *gormPatientRepository) Save(p *models.Patient) error {
	return translate(r.db.Save(p).Error)
}

func (r *gormPatientRepository) List() ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, translate(err)
	}
	return patients, nil
}
