package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maeesh-asiff1787/medicare-cms/internal/metrics"
	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// API holds the handlers' dependencies. The record store is injected at
// construction; there are no package-level globals.
type API struct {
	store *store.RecordStore
}

// New creates the API over the given record store.
func New(s *store.RecordStore) *API {
	return &API{store: s}
}

// Routes configures and returns the HTTP router
func (a *API) Routes() *mux.Router {
	r := mux.NewRouter()

	// Add middleware to all routes
	r.Use(metrics.Middleware)
	r.Use(RequestIDMiddleware)
	r.Use(a.sessionMiddleware)

	// Entry, health and auth
	r.HandleFunc(EntryPath, a.EntryHandler).Methods("GET")
	r.HandleFunc(HealthPath, a.HealthHandler).Methods("GET")
	r.HandleFunc("/login", a.LoginHandler).Methods("POST")
	r.HandleFunc("/logout", a.LogoutHandler).Methods("POST")
	r.HandleFunc(RegisterPath, a.RegisterHandler).Methods("POST")

	// Admin view and actions
	r.HandleFunc(AdminPath, a.AdminDashboardHandler).Methods("GET")
	r.HandleFunc("/admin/stats", a.StatsHandler).Methods("GET")
	r.HandleFunc("/admin/doctors", a.AddDoctorHandler).Methods("POST")
	r.HandleFunc("/admin/doctors/{id}", a.DeleteDoctorHandler).Methods("DELETE")
	r.HandleFunc("/admin/appointments/{id}", a.DeleteAppointmentHandler).Methods("DELETE")

	// Doctor view and actions
	r.HandleFunc(DoctorPath, a.DoctorDashboardHandler).Methods("GET")
	r.HandleFunc("/doctor/appointments/{id}/status", a.UpdateStatusHandler).Methods("PUT")
	r.HandleFunc("/doctor/prescriptions", a.AddPrescriptionHandler).Methods("POST")
	r.HandleFunc("/doctor/lab-reports", a.DoctorUploadLabReportHandler).Methods("POST")

	// Patient view and actions
	r.HandleFunc(PatientPath, a.PatientDashboardHandler).Methods("GET")
	r.HandleFunc("/patient/appointments", a.AddAppointmentHandler).Methods("POST")
	r.HandleFunc("/patient/profile", a.UpdateProfileHandler).Methods("PUT")
	r.HandleFunc("/patient/lab-reports", a.PatientUploadLabReportHandler).Methods("POST")
	r.HandleFunc("/patient/lab-reports/{id}/file", a.LabReportFileHandler).Methods("GET")

	// Prometheus metrics endpoint
	r.Handle(MetricsPath, promhttp.Handler()).Methods("GET")

	// Any unrecognized path goes back to the entry view
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, EntryPath, http.StatusFound)
	})

	return r
}
