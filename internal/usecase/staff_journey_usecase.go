package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	ErrInvalidStartDate    = errors.New("start date must fall between today and six months from today")
	ErrInvalidReviewDates  = errors.New("review dates must be strictly increasing by review number")
	ErrReviewsAlreadyExist = errors.New("reviews have already been scheduled for the current treatment course")
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewOutOfSequence = errors.New("review does not match the patient's pending review")
	ErrReviewsIncomplete   = errors.New("not all reviews have been completed")
	ErrOutcomeAlreadySet   = errors.New("plan outcome has already been decided")
)

// NotifyWarning is attached to a successful response when the transition
// committed but the patient email could not be sent.
const NotifyWarning = "patient notification could not be sent"

// StaffJourneyUsecase covers the clinician-driven journey transitions and
// the staff read views. Every transition follows the same shape: a
// transaction wrapping a compare-and-swap status update, the side-effect
// rows, and the audit entry; then best-effort notification and a change
// event after commit. A notification failure surfaces as a warning on an
// otherwise successful result, never as a rollback.
type StaffJourneyUsecase interface {
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	GetPatientScans(ctx context.Context, patientID uuid.UUID) (*dto.ScanLogListResponse, error)
	GetPatientPlans(ctx context.Context, patientID uuid.UUID) (*dto.PlanListResponse, error)
	GetPatientReviews(ctx context.Context, patientID uuid.UUID) (*dto.ReviewListResponse, error)

	LogScan(ctx context.Context, staffID, patientID uuid.UUID, req *dto.LogScanRequest) (*dto.TransitionResponse, error)
	PublishPlan(ctx context.Context, staffID, patientID uuid.UUID, req *dto.PublishPlanRequest) (*dto.TransitionResponse, string, error)
	MarkTreatmentComplete(ctx context.Context, staffID, patientID uuid.UUID) (*dto.TransitionResponse, string, error)
	ScheduleReviews(ctx context.Context, staffID, patientID uuid.UUID, req *dto.ScheduleReviewsRequest) (*dto.TransitionResponse, string, error)
	CompleteReview(ctx context.Context, staffID, patientID uuid.UUID, reviewNumber int, req *dto.CompleteReviewRequest) (*dto.TransitionResponse, string, error)
	FinalizeSuccess(ctx context.Context, staffID, patientID uuid.UUID, req *dto.FinalizeJourneyRequest) (*dto.TransitionResponse, string, error)
	Restart(ctx context.Context, staffID, patientID uuid.UUID, req *dto.RestartTreatmentRequest) (*dto.TransitionResponse, string, error)
}

type staffJourneyUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	planRepo       repository.TreatmentPlanRepository
	reviewRepo     repository.TreatmentReviewRepository
	scanRepo       repository.ScanLogRepository
	auditService   service.AuditService
	notifications  *service.NotificationService
	eventPublisher *service.EventPublisher
}

func NewStaffJourneyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	planRepo repository.TreatmentPlanRepository,
	reviewRepo repository.TreatmentReviewRepository,
	scanRepo repository.ScanLogRepository,
	auditService service.AuditService,
	notifications *service.NotificationService,
	eventPublisher *service.EventPublisher,
) StaffJourneyUsecase {
	return &staffJourneyUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		planRepo:       planRepo,
		reviewRepo:     reviewRepo,
		scanRepo:       scanRepo,
		auditService:   auditService,
		notifications:  notifications,
		eventPublisher: eventPublisher,
	}
}

func (u *staffJourneyUsecase) findPatient(ctx context.Context, patientID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

// Read views

func (u *staffJourneyUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *staffJourneyUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *staffJourneyUsecase) GetPatientScans(ctx context.Context, patientID uuid.UUID) (*dto.ScanLogListResponse, error) {
	if _, err := u.findPatient(ctx, patientID); err != nil {
		return nil, err
	}

	scans, err := u.scanRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find scans for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.ScanLogListResponse{
		Scans: converter.ScanLogsToResponses(scans),
		Total: len(scans),
	}, nil
}

func (u *staffJourneyUsecase) GetPatientPlans(ctx context.Context, patientID uuid.UUID) (*dto.PlanListResponse, error) {
	if _, err := u.findPatient(ctx, patientID); err != nil {
		return nil, err
	}

	plans, err := u.planRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find plans for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.PlanListResponse{
		Plans: converter.PlansToResponses(plans),
		Total: len(plans),
	}, nil
}

func (u *staffJourneyUsecase) GetPatientReviews(ctx context.Context, patientID uuid.UUID) (*dto.ReviewListResponse, error) {
	if _, err := u.findPatient(ctx, patientID); err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}

// Transitions

// LogScan records a CT-scan encounter and advances the patient to SCANNED.
// Two statuses permit it: REGISTERED (walk-in scan before intake) and
// CONSULTATION_COMPLETED (the standard path). The scan row and the status
// change commit together.
func (u *staffJourneyUsecase) LogScan(ctx context.Context, staffID, patientID uuid.UUID, req *dto.LogScanRequest) (*dto.TransitionResponse, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	from := patient.CurrentStatus
	if !entity.CanTransition(from, entity.StatusScanned) {
		return nil, entity.NewGuardViolation("log scan", from)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusScanned)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, err
	}
	if affected == 0 {
		// Lost the race: re-read for accurate guidance.
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, entity.NewGuardViolation("log scan", from)
	}

	scan := &entity.ScanLog{
		PatientID:            patient.ID,
		MachineRoom:          req.MachineRoom,
		Positioning:          req.Positioning,
		ImmobilizationDevice: req.ImmobilizationDevice,
		Notes:                req.Notes,
		PerformedBy:          staffID,
	}
	if err := u.scanRepo.Create(tx, scan); err != nil {
		u.log.Warnf("Failed to create scan log for patient %s: %+v", patient.ID, err)
		return nil, err
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionScanLog, patient.ID,
		from, entity.StatusScanned, entity.JSON{"machine_room": req.MachineRoom}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	patient.CurrentStatus = entity.StatusScanned

	u.eventPublisher.PatientChanged(patient.ID, "scan", "logged")

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Scan:    converter.ScanLogToResponse(scan),
	}, nil
}

// PublishPlan creates the treatment plan as published and advances the
// patient to PLAN_READY. Permitted from SCANNED and PLANNING. The plan email
// goes out after commit; a send failure returns a warning alongside the
// successful result.
func (u *staffJourneyUsecase) PublishPlan(ctx context.Context, staffID, patientID uuid.UUID, req *dto.PublishPlanRequest) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	startAt, err := time.Parse("2006-01-02 15:04", fmt.Sprintf("%s %s", req.StartDate, req.StartTime))
	if err != nil {
		return nil, "", ErrInvalidDateFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !entity.ValidPlanStart(startAt, today) {
		return nil, "", ErrInvalidStartDate
	}

	from := patient.CurrentStatus
	if !entity.CanTransition(from, entity.StatusPlanReady) {
		return nil, "", entity.NewGuardViolation("publish plan", from)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusPlanReady)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, "", entity.NewGuardViolation("publish plan", from)
	}

	plan := &entity.TreatmentPlan{
		PatientID:        patient.ID,
		TreatmentType:    entity.TreatmentType(req.TreatmentType),
		NumSessions:      req.NumSessions,
		StartAt:          startAt,
		PrepInstructions: req.PrepInstructions,
		CareGuidance:     careGuidanceJSON(req.CareGuidance),
		IsPublished:      true,
	}
	if err := u.planRepo.Create(tx, plan); err != nil {
		u.log.Warnf("Failed to create plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}

	if req.ConsultantName != "" {
		if err := u.patientRepo.SetConsultant(tx, patient.ID, req.ConsultantName); err != nil {
			u.log.Warnf("Failed to set consultant for patient %s: %+v", patient.ID, err)
			return nil, "", err
		}
		patient.ConsultantName = &req.ConsultantName
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionPlanPublish, patient.ID,
		from, entity.StatusPlanReady, entity.JSON{
			"plan_id":        plan.ID.String(),
			"treatment_type": req.TreatmentType,
			"num_sessions":   req.NumSessions,
		}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = entity.StatusPlanReady

	u.eventPublisher.PatientChanged(patient.ID, "plan", "published")

	warning := ""
	if err := u.notifications.SendPlanPublished(patient, plan); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Plan:    converter.PlanToResponse(plan),
	}, warning, nil
}

// MarkTreatmentComplete advances the patient to TREATMENT_COMPLETED from
// PLAN_READY or TREATING. Refused when reviews already exist for the current
// published plan: the course has moved past treatment.
func (u *staffJourneyUsecase) MarkTreatmentComplete(ctx context.Context, staffID, patientID uuid.UUID) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	from := patient.CurrentStatus
	if !entity.CanTransition(from, entity.StatusTreatmentCompleted) {
		return nil, "", entity.NewGuardViolation("complete treatment", from)
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if plan == nil {
		return nil, "", ErrNoPublishedPlan
	}

	count, err := u.reviewRepo.CountByPlanID(u.db.WithContext(ctx), plan.ID)
	if err != nil {
		u.log.Warnf("Failed to count reviews for plan %s: %+v", plan.ID, err)
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrReviewsAlreadyExist
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusTreatmentCompleted)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, "", entity.NewGuardViolation("complete treatment", from)
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionTreatmentComplete, patient.ID,
		from, entity.StatusTreatmentCompleted, entity.JSON{"plan_id": plan.ID.String()}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = entity.StatusTreatmentCompleted

	u.eventPublisher.PatientChanged(patient.ID, "patient", string(entity.StatusTreatmentCompleted))

	warning := ""
	if err := u.notifications.SendTreatmentCompleted(patient); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Plan:    converter.PlanToResponse(plan),
	}, warning, nil
}

// ScheduleReviews creates all three follow-up reviews as one batch and
// advances TREATMENT_COMPLETED -> REVIEW_1_PENDING. The batch is rejected
// whole if the dates are not strictly increasing, and refused if the current
// course already has reviews.
func (u *staffJourneyUsecase) ScheduleReviews(ctx context.Context, staffID, patientID uuid.UUID, req *dto.ScheduleReviewsRequest) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	dates := make([]time.Time, 0, len(req.Reviews))
	for _, slot := range req.Reviews {
		d, err := time.Parse("2006-01-02", slot.ScheduledDate)
		if err != nil {
			return nil, "", ErrInvalidDateFormat
		}
		dates = append(dates, d)
	}
	if !entity.ValidateReviewDates(dates) {
		return nil, "", ErrInvalidReviewDates
	}

	from := patient.CurrentStatus
	if !entity.CanTransition(from, entity.StatusReview1Pending) {
		return nil, "", entity.NewGuardViolation("schedule reviews", from)
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if plan == nil {
		return nil, "", ErrNoPublishedPlan
	}

	count, err := u.reviewRepo.CountByPlanID(u.db.WithContext(ctx), plan.ID)
	if err != nil {
		u.log.Warnf("Failed to count reviews for plan %s: %+v", plan.ID, err)
		return nil, "", err
	}
	if count > 0 {
		return nil, "", ErrReviewsAlreadyExist
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusReview1Pending)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, "", entity.NewGuardViolation("schedule reviews", from)
	}

	reviews := make([]entity.TreatmentReview, 0, entity.ReviewsPerCourse)
	for i, slot := range req.Reviews {
		reviews = append(reviews, entity.TreatmentReview{
			PlanID:         plan.ID,
			PatientID:      patient.ID,
			ReviewNumber:   i + 1,
			ScheduledDate:  dates[i],
			OfficeLocation: slot.OfficeLocation,
		})
	}
	if err := u.reviewRepo.CreateBatch(tx, reviews); err != nil {
		u.log.Warnf("Failed to create review batch for plan %s: %+v", plan.ID, err)
		return nil, "", err
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionReviewsSchedule, patient.ID,
		from, entity.StatusReview1Pending, entity.JSON{"plan_id": plan.ID.String()}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = entity.StatusReview1Pending

	u.eventPublisher.PatientChanged(patient.ID, "review", "scheduled")

	warning := ""
	if err := u.notifications.SendReviewsScheduled(patient, reviews); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Reviews: converter.ReviewsToResponses(reviews),
	}, warning, nil
}

// CompleteReview marks review N done and advances REVIEW_N_PENDING to
// REVIEW_N+1_PENDING, or to REVIEWS_COMPLETED after the third. The review
// number must match the patient's pending review; completion is monotonic so
// a repeated request is refused.
func (u *staffJourneyUsecase) CompleteReview(ctx context.Context, staffID, patientID uuid.UUID, reviewNumber int, req *dto.CompleteReviewRequest) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	from, ok := entity.ReviewPendingStatus(reviewNumber)
	if !ok {
		return nil, "", ErrReviewNotFound
	}
	if patient.CurrentStatus != from {
		if patient.CurrentStatus == entity.StatusReview1Pending ||
			patient.CurrentStatus == entity.StatusReview2Pending ||
			patient.CurrentStatus == entity.StatusReview3Pending {
			return nil, "", ErrReviewOutOfSequence
		}
		return nil, "", entity.NewGuardViolation("complete review", patient.CurrentStatus)
	}

	to := entity.StatusReviewsCompleted
	if reviewNumber < entity.ReviewsPerCourse {
		to, _ = entity.ReviewPendingStatus(reviewNumber + 1)
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if plan == nil {
		return nil, "", ErrNoPublishedPlan
	}

	review, err := u.reviewRepo.FindByPlanAndNumber(u.db.WithContext(ctx), plan.ID, reviewNumber)
	if err != nil {
		u.log.Warnf("Failed to find review %d for plan %s: %+v", reviewNumber, plan.ID, err)
		return nil, "", err
	}
	if review == nil {
		return nil, "", ErrReviewNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	now := time.Now().UTC()
	affected, err := u.reviewRepo.Complete(tx, review.ID, staffID, now, req.Notes)
	if err != nil {
		u.log.Warnf("Failed to complete review %d: %+v", review.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		return nil, "", ErrReviewOutOfSequence
	}

	affected, err = u.patientRepo.UpdateStatus(tx, patient.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		return nil, "", entity.NewGuardViolation("complete review", patient.CurrentStatus)
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionReviewComplete, patient.ID,
		from, to, entity.JSON{
			"plan_id":       plan.ID.String(),
			"review_number": reviewNumber,
		}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = to
	review.Completed = true
	review.CompletedAt = &now
	review.CompletedBy = &staffID
	review.Notes = req.Notes

	u.eventPublisher.PatientChanged(patient.ID, "review", "completed")

	warning := ""
	if err := u.notifications.SendReviewCompleted(patient, reviewNumber); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Review:  converter.ReviewToResponse(review),
	}, warning, nil
}

// FinalizeSuccess records a successful outcome on the current plan and
// advances REVIEWS_COMPLETED -> JOURNEY_COMPLETE, the terminal state.
func (u *staffJourneyUsecase) FinalizeSuccess(ctx context.Context, staffID, patientID uuid.UUID, req *dto.FinalizeJourneyRequest) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	from := patient.CurrentStatus
	if from != entity.StatusReviewsCompleted {
		return nil, "", entity.NewGuardViolation("finalize journey", from)
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if plan == nil {
		return nil, "", ErrNoPublishedPlan
	}

	completed, err := u.countCompletedReviews(ctx, plan.ID)
	if err != nil {
		return nil, "", err
	}
	if completed < entity.ReviewsPerCourse {
		return nil, "", ErrReviewsIncomplete
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusJourneyComplete)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, "", entity.NewGuardViolation("finalize journey", from)
	}

	now := time.Now().UTC()
	affected, err = u.planRepo.SetOutcome(tx, plan.ID, true, req.OutcomeNotes, staffID, now)
	if err != nil {
		u.log.Warnf("Failed to set outcome for plan %s: %+v", plan.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		return nil, "", ErrOutcomeAlreadySet
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionJourneyFinalize, patient.ID,
		from, entity.StatusJourneyComplete, entity.JSON{"plan_id": plan.ID.String()}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = entity.StatusJourneyComplete
	successful := true
	plan.IsSuccessful = &successful
	plan.OutcomeNotes = req.OutcomeNotes
	plan.DecidedAt = &now
	plan.DecidedBy = &staffID

	u.eventPublisher.PatientChanged(patient.ID, "patient", string(entity.StatusJourneyComplete))

	warning := ""
	if err := u.notifications.SendJourneyComplete(patient); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Plan:    converter.PlanToResponse(plan),
	}, warning, nil
}

// Restart retires the current plan with a failure outcome and sends the
// patient back to SCANNED for a new course of planning. This is the single
// backward edge of the journey and requires a stated reason, which becomes
// the retired plan's outcome notes. The completed reviews stay attached to
// the retired plan.
func (u *staffJourneyUsecase) Restart(ctx context.Context, staffID, patientID uuid.UUID, req *dto.RestartTreatmentRequest) (*dto.TransitionResponse, string, error) {
	patient, err := u.findPatient(ctx, patientID)
	if err != nil {
		return nil, "", err
	}

	from := patient.CurrentStatus
	if from != entity.StatusReviewsCompleted {
		return nil, "", entity.NewGuardViolation("restart treatment", from)
	}

	plan, err := u.planRepo.FindPublishedByPatientID(u.db.WithContext(ctx), patient.ID)
	if err != nil {
		u.log.Warnf("Failed to find published plan for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if plan == nil {
		return nil, "", ErrNoPublishedPlan
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.patientRepo.UpdateStatus(tx, patient.ID, from, entity.StatusScanned)
	if err != nil {
		u.log.Warnf("Failed to update status for patient %s: %+v", patient.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		current, rerr := u.patientRepo.FindByID(u.db.WithContext(ctx), patient.ID)
		if rerr == nil && current != nil {
			from = current.CurrentStatus
		}
		return nil, "", entity.NewGuardViolation("restart treatment", from)
	}

	now := time.Now().UTC()
	affected, err = u.planRepo.Retire(tx, plan.ID, req.Reason, staffID, now)
	if err != nil {
		u.log.Warnf("Failed to retire plan %s: %+v", plan.ID, err)
		return nil, "", err
	}
	if affected == 0 {
		return nil, "", ErrOutcomeAlreadySet
	}

	if err := u.auditService.LogTransition(tx, &staffID, entity.AuditActionTreatmentRestart, patient.ID,
		from, entity.StatusScanned, entity.JSON{
			"plan_id": plan.ID.String(),
			"reason":  req.Reason,
		}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, "", err
	}

	patient.CurrentStatus = entity.StatusScanned
	unsuccessful := false
	plan.IsPublished = false
	plan.IsSuccessful = &unsuccessful
	plan.OutcomeNotes = req.Reason
	plan.DecidedAt = &now
	plan.DecidedBy = &staffID

	u.eventPublisher.PatientChanged(patient.ID, "patient", string(entity.StatusScanned))

	warning := ""
	if err := u.notifications.SendTreatmentRestarted(patient, req.Reason); err != nil {
		warning = NotifyWarning
	}

	return &dto.TransitionResponse{
		Patient: converter.PatientToResponse(patient),
		Plan:    converter.PlanToResponse(plan),
	}, warning, nil
}

func (u *staffJourneyUsecase) countCompletedReviews(ctx context.Context, planID uuid.UUID) (int, error) {
	reviews, err := u.reviewRepo.FindByPlanID(u.db.WithContext(ctx), planID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for plan %s: %+v", planID, err)
		return 0, err
	}
	completed := 0
	for _, r := range reviews {
		if r.Completed {
			completed++
		}
	}
	return completed, nil
}

// careGuidanceJSON flattens the structured care guidance into the jsonb
// column shape.
func careGuidanceJSON(req *dto.CareGuidanceRequest) entity.JSON {
	if req == nil {
		return nil
	}
	guidance := entity.JSON{}
	if len(req.NutritionalInterventions) > 0 {
		guidance["nutritional_interventions"] = req.NutritionalInterventions
	}
	if len(req.SkinCareDos) > 0 {
		guidance["skin_care_dos"] = req.SkinCareDos
	}
	if len(req.SkinCareDonts) > 0 {
		guidance["skin_care_donts"] = req.SkinCareDonts
	}
	if req.ImmobilizationDevice != "" {
		guidance["immobilization_device"] = req.ImmobilizationDevice
	}
	if req.SetupNotes != "" {
		guidance["setup_notes"] = req.SetupNotes
	}
	if len(guidance) == 0 {
		return nil
	}
	return guidance
}
