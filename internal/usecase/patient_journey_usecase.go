package usecase

import (
	"context"
	"errors"

	"go-radiotherapy-navigator/internal/converter"
	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/internal/domain/repository"
	"go-radiotherapy-navigator/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient record not found")
	ErrNoPublishedPlan = errors.New("no published treatment plan")
)

// PatientJourneyUsecase covers the patient-facing side of the journey: the
// two self-service transitions (intake, consultation confirmation) and the
// read views of their own record, plan and reviews. Identity always comes
// from the authenticated user, never from the request body.
type PatientJourneyUsecase interface {
	SubmitIntake(ctx context.Context, userID uuid.UUID, req *dto.SubmitIntakeRequest) (*dto.TransitionResponse, error)
	MarkConsultationComplete(ctx context.Context, userID uuid.UUID) (*dto.TransitionResponse, error)
	GetMyRecord(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error)
	GetMyPlan(ctx context.Context, userID uuid.UUID) (*dto.PlanResponse, error)
	GetMyReviews(ctx context.Context, userID uuid.UUID) (*dto.ReviewListResponse, error)
}

type patientJourneyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	planRepo       repository.TreatmentPlanRepository
	reviewRepo     repository.TreatmentReviewRepository
	auditService   service.AuditService
	eventPublisher *service.EventPublisher
}

func NewPatientJourneyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	planRepo repository.TreatmentPlanRepository,
	reviewRepo repository.TreatmentReviewRepository,
	auditService service.AuditService,
	eventPublisher *service.EventPublisher,
) PatientJourneyUsecase {
	return &patientJourneyUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		planRepo:       planRepo,
		reviewRepo:     reviewRepo,
		auditService:   auditService,
		eventPublisher: eventPublisher,
	}
}

func (u *patientJourneyUsecase) findOwnPatient(ctx context.Context, userID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient for user %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

// SubmitIntake advances REGISTERED -> INTAKE_COMPLETED, storing the medical
// history and flipping onboarding_completed in the same guarded update. A
// patient who already submitted intake gets a guard violation, not an
// overwrite.
func (u *patientJourneyUsecase) SubmitIntake(ctx context.Context, userID uuid.UUID, req *dto.SubmitIntakeRequest) (*dto.TransitionResponse, error) {
	patient, err := u.findOwnPatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.SubmitIntake(
		tx, patient.ID,
		entity.StatusRegistered, entity.StatusIntakeCompleted,
		entity.JSON(req.MedicalHistory), entity.StringSet(req.RiskFlags),
	)
	if err != nil {
		u.log.Warnf("Failed to submit intake for patient %s: %+v", patient.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, entity.NewGuardViolation("submit intake", patient.CurrentStatus)
	}

	if err := u.auditService.LogTransition(tx, &userID, entity.AuditActionIntakeSubmit, patient.ID,
		entity.StatusRegistered, entity.StatusIntakeCompleted, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.CurrentStatus = entity.StatusIntakeCompleted
	patient.OnboardingCompleted = true
	patient.MedicalHistory = entity.JSON(req.MedicalHistory)
	patient.RiskFlags = entity.StringSet(req.RiskFlags)

	u.eventPublisher.PatientChanged(patient.ID, "patient", string(entity.StatusIntakeCompleted))

	return &dto.TransitionResponse{Patient: converter.PatientToResponse(patient)}, nil
}

// MarkConsultationComplete advances INTAKE_COMPLETED -> CONSULTATION_COMPLETED.
func (u *patientJourneyUsecase) MarkConsultationComplete(ctx context.Context, userID uuid.UUID) (*dto.TransitionResponse, error) {
	patient, err := u.findOwnPatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID,
		entity.StatusIntakeCompleted, entity.StatusConsultationCompleted)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, entity.NewGuardViolation("confirm consultation", patient.CurrentStatus)
	}

	if err := u.auditService.LogTransition(tx, &userID, entity.AuditActionConsultationComplete, patient.ID,
		entity.StatusIntakeCompleted, entity.StatusConsultationCompleted, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.CurrentStatus = entity.StatusConsultationCompleted

	u.eventPublisher.PatientChanged(patient.ID, "patient", string(entity.StatusConsultationCompleted))

	return &dto.TransitionResponse{Patient: converter.PatientToResponse(patient)}, nil
}

func (u *patientJourneyUsecase) GetMyRecord(ctx context.Context, userID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findOwnPatient(ctx, userID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

// GetMyPlan returns the currently published plan only. Retired or undecided
// historical plans are staff-facing.
func (u *patientJourneyUsecase) GetMyPlan(ctx context.Context, userID uuid.UUID) (*dto.PlanResponse, error) {
	patient, err := u.findOwnPatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPublishedPlan
	}

	return converter.PlanToResponse(plan), nil
}

func (u *patientJourneyUsecase) GetMyReviews(ctx context.Context, userID uuid.UUID) (*dto.ReviewListResponse, error) {
	patient, err := u.findOwnPatient(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.FindByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}
