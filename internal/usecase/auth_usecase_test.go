package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/pkg/mrn"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// collidingPatientRepository reports every MRN candidate as already taken,
// so the allocation loop can never win an attempt.
type collidingPatientRepository struct {
	findByMRNCalls int
	createCalls    int
}

func (r *collidingPatientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	r.createCalls++
	return nil
}

func (r *collidingPatientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return nil, nil
}

func (r *collidingPatientRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	return nil, nil
}

func (r *collidingPatientRepository) FindByMRN(db *gorm.DB, code string) (*entity.Patient, error) {
	r.findByMRNCalls++
	return &entity.Patient{MRN: code}, nil
}

func (r *collidingPatientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	return nil, nil
}

func (r *collidingPatientRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus) (int64, error) {
	return 0, nil
}

func (r *collidingPatientRepository) SubmitIntake(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus, history entity.JSON, riskFlags entity.StringSet) (int64, error) {
	return 0, nil
}

func (r *collidingPatientRepository) SetConsultant(db *gorm.DB, id uuid.UUID, consultantName string) error {
	return nil
}

func TestRegisterPatientMRNExhaustion(t *testing.T) {
	patientRepo := &collidingPatientRepository{}

	log := logrus.New()
	log.SetOutput(io.Discard)

	// A bare handle is enough here: the repository stub never touches the
	// database, and the loop gives up before any insert is attempted.
	db := &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{}}

	u := NewAuthUsecase(db, log, nil, patientRepo, nil, nil, nil)

	_, err := u.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:       "patient@clinic.test",
		Password:    "sup3r-secret",
		FullName:    "Test Patient",
		DateOfBirth: "1980-05-14",
	})

	if !errors.Is(err, ErrMRNExhausted) {
		t.Fatalf("RegisterPatient() error = %v, want ErrMRNExhausted", err)
	}
	if patientRepo.findByMRNCalls != mrn.MaxAttempts {
		t.Errorf("FindByMRN called %d times, want %d", patientRepo.findByMRNCalls, mrn.MaxAttempts)
	}
	if patientRepo.createCalls != 0 {
		t.Errorf("Create called %d times, want 0", patientRepo.createCalls)
	}
}
