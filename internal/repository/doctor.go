package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medimatch/medimatch-backend/internal/models"
)

type DoctorRepository interface {
	Create(d *models.Doctor) error
	ByID(id uuid.UUID) (*models.Doctor, error)
	ByEmail(email string) (*models.Doctor, error)
	ByGoogleID(googleID string) (*models.Doctor, error)
	Save(d *models.Doctor) error
	List() ([]models.Doctor, error)
	IncrementViewCount(id uuid.UUID) (*models.Doctor, error)
}

type gormDoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &gormDoctorRepository{db: db}
}

func (r *gormDoctorRepository) Create(d *models.Doctor) error {
	return translate(r.db.Create(d).Error)
}

func (r *gormDoctorRepository) ByID(id uuid.UUID) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *gormDoctorRepository) ByEmail(email string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.First(&d, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *gormDoctorRepository) ByGoogleID(googleID string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.First(&d, "google_id = ?", googleID).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *gormDoctorRepository) Save(d *models.Doctor) error {
	return translate(r.db.Save(d).Error)
}

func (r *gormDoctorRepository) List() ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.db.Order("created_at DESC").Find(&doctors).Error; err != nil {
		return nil, translate(err)
	}
	return doctors, nil
}

// IncrementViewCount bumps the counter as a delta expression so concurrent
// views on the same doctor never lose updates, then reloads the row.
func (r *gormDoctorRepository) IncrementViewCount(id uuid.UUID) (*models.Doctor, error) {
	result := r.db.Model(&models.Doctor{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.ByID(id)
}
