package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/delivery/http/middleware"
	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/internal/usecase"
	"go-radiotherapy-navigator/pkg/response"
	"go-radiotherapy-navigator/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type StaffJourneyHandler struct {
	journeyUsecase usecase.StaffJourneyUsecase
	validator      *validator.CustomValidator
}

func NewStaffJourneyHandler(journeyUsecase usecase.StaffJourneyUsecase, validator *validator.CustomValidator) *StaffJourneyHandler {
	return &StaffJourneyHandler{
		journeyUsecase: journeyUsecase,
		validator:      validator,
	}
}

func patientIDFromPath(r *http.Request) (uuid.UUID, error) {
	vars := mux.Vars(r)
	return uuid.Parse(vars["id"])
}

// writeTransitionError maps the shared transition failure modes. Handler
// specific sentinels are checked by callers before falling through here.
func writeTransitionError(w http.ResponseWriter, err error, fallback string) {
	var violation *entity.StatusGuardViolation
	switch {
	case errors.As(err, &violation):
		writeGuardViolation(w, violation)
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrNoPublishedPlan):
		response.Error(w, http.StatusConflict, "No published treatment plan for this patient", nil)
	default:
		response.InternalServerError(w, fallback)
	}
}

// writeTransitionSuccess downgrades to success-with-warning when a
// post-commit notification failed.
func writeTransitionSuccess(w http.ResponseWriter, message string, result *dto.TransitionResponse, warning string) {
	if warning != "" {
		response.SuccessWithWarning(w, http.StatusOK, message, result, warning)
		return
	}
	response.Success(w, http.StatusOK, message, result)
}

// ListPatients returns all patients
// @Summary List patients
// @Description Get all patients and their journey positions
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /staff/patients [get]
func (h *StaffJourneyHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.journeyUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetPatient returns one patient record
// @Summary Get patient
// @Description Get a patient's full journey record
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/patients/{id} [get]
func (h *StaffJourneyHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.journeyUsecase.GetPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// GetPatientScans returns a patient's scan history
// @Summary Get patient scans
// @Description Get the append-only scan log for a patient
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/patients/{id}/scans [get]
func (h *StaffJourneyHandler) GetPatientScans(w http.ResponseWriter, r *http.Request) {
	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	scans, err := h.journeyUsecase.GetPatientScans(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get scans")
		}
		return
	}

	response.Success(w, http.StatusOK, "Scans retrieved successfully", scans)
}

// GetPatientPlans returns all treatment plans for a patient
// @Summary Get patient plans
// @Description Get a patient's treatment plans, including retired courses
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/patients/{id}/plans [get]
func (h *StaffJourneyHandler) GetPatientPlans(w http.ResponseWriter, r *http.Request) {
	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	plans, err := h.journeyUsecase.GetPatientPlans(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get plans")
		}
		return
	}

	response.Success(w, http.StatusOK, "Plans retrieved successfully", plans)
}

// GetPatientReviews returns a patient's reviews
// @Summary Get patient reviews
// @Description Get a patient's post-treatment reviews
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /staff/patients/{id}/reviews [get]
func (h *StaffJourneyHandler) GetPatientReviews(w http.ResponseWriter, r *http.Request) {
	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	reviews, err := h.journeyUsecase.GetPatientReviews(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get reviews")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// LogScan records a CT-scan encounter
// @Summary Log a scan
// @Description Record a CT-scan encounter and advance the patient to SCANNED
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.LogScanRequest true "Scan Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/scans [post]
func (h *StaffJourneyHandler) LogScan(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.LogScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.journeyUsecase.LogScan(r.Context(), staffID, patientID, &req)
	if err != nil {
		writeTransitionError(w, err, "Failed to log scan")
		return
	}

	response.Success(w, http.StatusOK, "Scan logged successfully", result)
}

// PublishPlan creates and publishes a treatment plan
// @Summary Publish treatment plan
// @Description Create a published treatment plan and advance the patient to PLAN_READY
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.PublishPlanRequest true "Publish Plan Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/plan [post]
func (h *StaffJourneyHandler) PublishPlan(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.PublishPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, warning, err := h.journeyUsecase.PublishPlan(r.Context(), staffID, patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrInvalidStartDate):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to publish plan")
		}
		return
	}

	writeTransitionSuccess(w, "Treatment plan published successfully", result, warning)
}

// MarkTreatmentComplete ends the treatment course
// @Summary Complete treatment
// @Description Advance the patient to TREATMENT_COMPLETED
// @Tags Staff
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/treatment-complete [post]
func (h *StaffJourneyHandler) MarkTreatmentComplete(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	result, warning, err := h.journeyUsecase.MarkTreatmentComplete(r.Context(), staffID, patientID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewsAlreadyExist):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to complete treatment")
		}
		return
	}

	writeTransitionSuccess(w, "Treatment marked as completed", result, warning)
}

// ScheduleReviews schedules the three follow-up reviews
// @Summary Schedule reviews
// @Description Schedule all three post-treatment reviews as one batch
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.ScheduleReviewsRequest true "Schedule Reviews Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/reviews [post]
func (h *StaffJourneyHandler) ScheduleReviews(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.ScheduleReviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, warning, err := h.journeyUsecase.ScheduleReviews(r.Context(), staffID, patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidDateFormat), errors.Is(err, usecase.ErrInvalidReviewDates):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, usecase.ErrReviewsAlreadyExist):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to schedule reviews")
		}
		return
	}

	writeTransitionSuccess(w, "Reviews scheduled successfully", result, warning)
}

// CompleteReview records a review visit
// @Summary Complete a review
// @Description Mark review N as completed and advance the patient
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param number path int true "Review Number"
// @Param request body dto.CompleteReviewRequest false "Complete Review Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/reviews/{number}/complete [post]
func (h *StaffJourneyHandler) CompleteReview(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	reviewNumber, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid review number", nil)
		return
	}

	// The body is optional, so an empty one is fine.
	var req dto.CompleteReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, warning, err := h.journeyUsecase.CompleteReview(r.Context(), staffID, patientID, reviewNumber, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewNotFound):
			response.NotFound(w, "Review not found")
		case errors.Is(err, usecase.ErrReviewOutOfSequence):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to complete review")
		}
		return
	}

	writeTransitionSuccess(w, "Review completed successfully", result, warning)
}

// FinalizeSuccess records a successful outcome
// @Summary Finalize journey
// @Description Record a successful outcome and advance the patient to JOURNEY_COMPLETE
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.FinalizeJourneyRequest false "Finalize Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/finalize [post]
func (h *StaffJourneyHandler) FinalizeSuccess(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	// The body is optional, so an empty one is fine.
	var req dto.FinalizeJourneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, warning, err := h.journeyUsecase.FinalizeSuccess(r.Context(), staffID, patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewsIncomplete), errors.Is(err, usecase.ErrOutcomeAlreadySet):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to finalize journey")
		}
		return
	}

	writeTransitionSuccess(w, "Journey finalized successfully", result, warning)
}

// Restart retires the course and returns the patient to planning
// @Summary Restart treatment
// @Description Retire the current plan and return the patient to SCANNED
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Patient ID"
// @Param request body dto.RestartTreatmentRequest true "Restart Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /staff/patients/{id}/restart [post]
func (h *StaffJourneyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patientID, err := patientIDFromPath(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.RestartTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, warning, err := h.journeyUsecase.Restart(r.Context(), staffID, patientID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrOutcomeAlreadySet):
			response.Error(w, http.StatusConflict, err.Error(), nil)
		default:
			writeTransitionError(w, err, "Failed to restart treatment")
		}
		return
	}

	writeTransitionSuccess(w, "Treatment restarted successfully", result, warning)
}
