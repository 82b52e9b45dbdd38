package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/delivery/http/middleware"
	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/internal/usecase"
	"go-radiotherapy-navigator/pkg/response"
	"go-radiotherapy-navigator/pkg/validator"
)

// writeGuardViolation maps a refused journey transition to 409 Conflict,
// surfacing the state-specific guidance for the UI.
func writeGuardViolation(w http.ResponseWriter, violation *entity.StatusGuardViolation) {
	response.Error(w, http.StatusConflict, violation.Error(), map[string]string{
		"current_status": string(violation.CurrentStatus),
		"guidance":       violation.Guidance,
	})
}

type PatientHandler struct {
	journeyUsecase usecase.PatientJourneyUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(journeyUsecase usecase.PatientJourneyUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		journeyUsecase: journeyUsecase,
		validator:      validator,
	}
}

// SubmitIntake handles the medical intake questionnaire
// @Summary Submit medical intake
// @Description Submit the medical history questionnaire and complete onboarding
// @Tags Patient Journey
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitIntakeRequest true "Intake Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients/me/intake [post]
func (h *PatientHandler) SubmitIntake(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SubmitIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.journeyUsecase.SubmitIntake(r.Context(), userID, &req)
	if err != nil {
		var violation *entity.StatusGuardViolation
		switch {
		case errors.As(err, &violation):
			writeGuardViolation(w, violation)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to submit intake")
		}
		return
	}

	response.Success(w, http.StatusOK, "Intake submitted successfully", result)
}

// MarkConsultationComplete confirms the consultation happened
// @Summary Confirm consultation
// @Description Mark the specialist consultation as completed
// @Tags Patient Journey
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients/me/consultation-complete [post]
func (h *PatientHandler) MarkConsultationComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.journeyUsecase.MarkConsultationComplete(r.Context(), userID)
	if err != nil {
		var violation *entity.StatusGuardViolation
		switch {
		case errors.As(err, &violation):
			writeGuardViolation(w, violation)
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to confirm consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation confirmed successfully", result)
}

// GetMyRecord returns the authenticated patient's record
// @Summary Get my patient record
// @Description Get the authenticated patient's journey record
// @Tags Patient Journey
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/me [get]
func (h *PatientHandler) GetMyRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patient, err := h.journeyUsecase.GetMyRecord(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get patient record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient record retrieved successfully", patient)
}

// GetMyPlan returns the patient's published treatment plan
// @Summary Get my treatment plan
// @Description Get the currently published treatment plan
// @Tags Patient Journey
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/me/plan [get]
func (h *PatientHandler) GetMyPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	plan, err := h.journeyUsecase.GetMyPlan(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		case usecase.ErrNoPublishedPlan:
			response.NotFound(w, "No treatment plan has been published yet")
		default:
			response.InternalServerError(w, "Failed to get treatment plan")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment plan retrieved successfully", plan)
}

// GetMyReviews returns the patient's follow-up reviews
// @Summary Get my reviews
// @Description Get the patient's post-treatment review appointments
// @Tags Patient Journey
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/me/reviews [get]
func (h *PatientHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	reviews, err := h.journeyUsecase.GetMyReviews(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient record not found")
		default:
			response.InternalServerError(w, "Failed to get reviews")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}
