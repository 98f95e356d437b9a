package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/mail"
	"github.com/medimatch/medimatch-backend/internal/models"
	"github.com/medimatch/medimatch-backend/internal/oauth"
	"github.com/medimatch/medimatch-backend/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
}

func intp(v int) *int { return &v }

func testIdentity(email string) *oauth.Identity {
	return &oauth.Identity{
		SubjectID: "google-sub-" + email,
		Email:     email,
		Name:      "Asha Rao",
	}
}

// -------- test fakes --------

type fakeMailer struct {
	fail bool
	sent []string
}

func (m *fakeMailer) SendOTP(to, code string) error {
	if m.fail {
		return mail.ErrNotConfigured
	}
	m.sent = append(m.sent, to)
	return nil
}

// fakeDoctorRepo stores value copies, like a real row store: mutations are
// only visible after Save.
type fakeDoctorRepo struct {
	rows map[uuid.UUID]models.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{rows: make(map[uuid.UUID]models.Doctor)}
}

func (f *fakeDoctorRepo) Create(d *models.Doctor) error {
	for _, row := range f.rows {
		if strings.EqualFold(row.Email, d.Email) {
			return repository.ErrDuplicate
		}
		if row.GoogleID != nil && d.GoogleID != nil && *row.GoogleID == *d.GoogleID {
			return repository.ErrDuplicate
		}
	}
	f.rows[d.ID] = *d
	return nil
}

func (f *fakeDoctorRepo) ByID(id uuid.UUID) (*models.Doctor, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := row
	return &cp, nil
}

func (f *fakeDoctorRepo) ByEmail(email string) (*models.Doctor, error) {
	for _, row := range f.rows {
		if row.Email == email {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) ByGoogleID(googleID string) (*models.Doctor, error) {
	for _, row := range f.rows {
		if row.GoogleID != nil && *row.GoogleID == googleID {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeDoctorRepo) Save(d *models.Doctor) error {
	if _, ok := f.rows[d.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[d.ID] = *d
	return nil
}

func (f *fakeDoctorRepo) List() ([]models.Doctor, error) {
	out := make([]models.Doctor, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeDoctorRepo) IncrementViewCount(id uuid.UUID) (*models.Doctor, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	row.ViewCount++
	f.rows[id] = row
	cp := row
	return &cp, nil
}

type fakePatientRepo struct {
	rows map[uuid.UUID]models.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{rows: make(map[uuid.UUID]models.Patient)}
}

func (f *fakePatientRepo) Create(p *models.Patient) error {
	for _, row := range f.rows {
		if strings.EqualFold(row.Email, p.Email) {
			return repository.ErrDuplicate
		}
		if row.GoogleID != nil && p.GoogleID != nil && *row.GoogleID == *p.GoogleID {
			return repository.ErrDuplicate
		}
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePatientRepo) ByID(id uuid.UUID) (*models.Patient, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := row
	return &cp, nil
}

func (f *fakePatientRepo) ByEmail(email string) (*models.Patient, error) {
	for _, row := range f.rows {
		if row.Email == email {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) ByGoogleID(googleID string) (*models.Patient, error) {
	for _, row := range f.rows {
		if row.GoogleID != nil && *row.GoogleID == googleID {
			cp := row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePatientRepo) Save(p *models.Patient) error {
	if _, ok := f.rows[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePatientRepo) List() ([]models.Patient, error) {
	out := make([]models.Patient, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

type pair struct {
	patientID uuid.UUID
	doctorID  uuid.UUID
}

// fakeSavedRepo enforces pair uniqueness the way the composite index does.
type fakeSavedRepo struct {
	doctors *fakeDoctorRepo
	pairs   map[pair]bool
}

func newFakeSavedRepo(doctors *fakeDoctorRepo) *fakeSavedRepo {
	return &fakeSavedRepo{doctors: doctors, pairs: make(map[pair]bool)}
}

func (f *fakeSavedRepo) Create(patientID, doctorID uuid.UUID) error {
	key := pair{patientID, doctorID}
	if f.pairs[key] {
		return repository.ErrDuplicate
	}
	f.pairs[key] = true
	return nil
}

func (f *fakeSavedRepo) Delete(patientID, doctorID uuid.UUID) error {
	delete(f.pairs, pair{patientID, doctorID})
	return nil
}

func (f *fakeSavedRepo) ListDoctors(patientID uuid.UUID) ([]models.Doctor, error) {
	var out []models.Doctor
	for key := range f.pairs {
		if key.patientID != patientID {
			continue
		}
		if row, ok := f.doctors.rows[key.doctorID]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}
