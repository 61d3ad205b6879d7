package http

import (
	"net/http"

	"autodominio-api/internal/delivery/http/handler"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/service"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Instructor   *handler.InstructorHandler
	Availability *handler.AvailabilityHandler
	Appointment  *handler.AppointmentHandler
	Review       *handler.ReviewHandler
	Document     *handler.DocumentHandler
	AuditLog     *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	metricsMiddleware *middleware.MetricsMiddleware
	metrics           *service.MetricsService
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	metrics *service.MetricsService,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		metricsMiddleware: middleware.NewMetricsMiddleware(metrics),
		metrics:           metrics,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metrics.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)
	api.HandleFunc("/users", h.User.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/instructors", h.Instructor.ListProfiles).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{id}", h.Instructor.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/instructors/user/{user_id}", h.Instructor.GetProfileByUser).Methods(http.MethodGet)
	api.HandleFunc("/instructors/user/{user_id}/free", h.Availability.ResolveAvailability).Methods(http.MethodGet)
	api.HandleFunc("/instructors/user/{user_id}/reviews", h.Review.ListByInstructor).Methods(http.MethodGet)
	api.HandleFunc("/instructors/user/{user_id}/rating-stats", h.Review.RatingStats).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{id}/availability", h.Availability.ListAvailability).Methods(http.MethodGet)
	api.HandleFunc("/instructors/{id}/time-off", h.Availability.ListTimeOff).Methods(http.MethodGet)
	api.HandleFunc("/documents/upload-info", h.Document.UploadInfo).Methods(http.MethodGet)

	// Authenticated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", h.Auth.Me).Methods(http.MethodGet)

	protected.HandleFunc("/users", h.User.ListUsers).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", h.User.GetUser).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", h.User.UpdateUser).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}", h.User.DeleteUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{id}/photo", h.User.UploadProfilePhoto).Methods(http.MethodPost)

	protected.HandleFunc("/appointments", h.Appointment.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", h.Appointment.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", h.Appointment.UpdateAppointment).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}", h.Appointment.DeleteAppointment).Methods(http.MethodDelete)

	protected.HandleFunc("/reviews", h.Review.CreateReview).Methods(http.MethodPost)
	protected.HandleFunc("/reviews/{id}", h.Review.GetReview).Methods(http.MethodGet)
	protected.HandleFunc("/reviews/{id}", h.Review.UpdateReview).Methods(http.MethodPatch)
	protected.HandleFunc("/reviews/{id}", h.Review.DeleteReview).Methods(http.MethodDelete)

	// Instructor self-service (instructor or admin)
	instructor := api.PathPrefix("").Subrouter()
	instructor.Use(r.authMiddleware.Authenticate)
	instructor.Use(middleware.RequireAdminOrInstructor)

	instructor.HandleFunc("/instructors", h.Instructor.CreateProfile).Methods(http.MethodPost)
	instructor.HandleFunc("/instructors/{id}", h.Instructor.UpdateProfile).Methods(http.MethodPatch)
	instructor.HandleFunc("/instructors/{id}", h.Instructor.DeleteProfile).Methods(http.MethodDelete)
	instructor.HandleFunc("/instructors/{id}/documents", h.Document.ListDocuments).Methods(http.MethodGet)

	instructor.HandleFunc("/availability", h.Availability.CreateAvailability).Methods(http.MethodPost)
	instructor.HandleFunc("/availability/{id}", h.Availability.GetAvailability).Methods(http.MethodGet)
	instructor.HandleFunc("/availability/{id}", h.Availability.UpdateAvailability).Methods(http.MethodPatch)
	instructor.HandleFunc("/availability/{id}", h.Availability.DeleteAvailability).Methods(http.MethodDelete)

	instructor.HandleFunc("/time-off", h.Availability.CreateTimeOff).Methods(http.MethodPost)
	instructor.HandleFunc("/time-off/{id}", h.Availability.GetTimeOff).Methods(http.MethodGet)
	instructor.HandleFunc("/time-off/{id}", h.Availability.UpdateTimeOff).Methods(http.MethodPatch)
	instructor.HandleFunc("/time-off/{id}", h.Availability.DeleteTimeOff).Methods(http.MethodDelete)

	instructor.HandleFunc("/documents", h.Document.UploadDocument).Methods(http.MethodPost)
	instructor.HandleFunc("/documents/{id}", h.Document.DeleteDocument).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/approvals/stats", h.Instructor.ApprovalStats).Methods(http.MethodGet)
	admin.HandleFunc("/approvals/{status}", h.Instructor.ListByApprovalStatus).Methods(http.MethodGet)
	admin.HandleFunc("/instructors/{id}/approval", h.Instructor.TransitionApproval).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/status", h.Appointment.TransitionAppointment).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-logs", h.AuditLog.ListAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
