package http

import (
	"net/http"

	"go-radiotherapy-navigator/internal/delivery/http/handler"
	"go-radiotherapy-navigator/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	staffJourneyHandler *handler.StaffJourneyHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	staffJourneyHandler *handler.StaffJourneyHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		staffJourneyHandler: staffJourneyHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Staff account creation (super admin only)
	accounts := api.PathPrefix("/auth").Subrouter()
	accounts.Use(r.authMiddleware.Authenticate)
	accounts.Use(middleware.RequireSuperAdmin)
	accounts.HandleFunc("/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)

	// Patient journey routes (patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)
	patients.HandleFunc("/me", r.patientHandler.GetMyRecord).Methods(http.MethodGet)
	patients.HandleFunc("/me/intake", r.patientHandler.SubmitIntake).Methods(http.MethodPost)
	patients.HandleFunc("/me/consultation-complete", r.patientHandler.MarkConsultationComplete).Methods(http.MethodPost)
	patients.HandleFunc("/me/plan", r.patientHandler.GetMyPlan).Methods(http.MethodGet)
	patients.HandleFunc("/me/reviews", r.patientHandler.GetMyReviews).Methods(http.MethodGet)

	// Staff journey routes (clinicians)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/patients", r.staffJourneyHandler.ListPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.staffJourneyHandler.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/scans", r.staffJourneyHandler.GetPatientScans).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/scans", r.staffJourneyHandler.LogScan).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/plans", r.staffJourneyHandler.GetPatientPlans).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/plan", r.staffJourneyHandler.PublishPlan).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/treatment-complete", r.staffJourneyHandler.MarkTreatmentComplete).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/reviews", r.staffJourneyHandler.GetPatientReviews).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}/reviews", r.staffJourneyHandler.ScheduleReviews).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/reviews/{number}/complete", r.staffJourneyHandler.CompleteReview).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/finalize", r.staffJourneyHandler.FinalizeSuccess).Methods(http.MethodPost)
	staff.HandleFunc("/patients/{id}/restart", r.staffJourneyHandler.Restart).Methods(http.MethodPost)

	// Audit trail (clinicians)
	staff.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	staff.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
