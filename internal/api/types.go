package api

import (
	"encoding/json"
	"net/http"

	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// Context key types to avoid collisions (Go best practice)
type contextKey string

const (
	SessionKey   contextKey = "session"
	RequestIDKey contextKey = "requestID"
)

// HTTP header constants
const (
	RequestIDHeader = "X-Request-ID"
)

// HTTP path constants
const (
	EntryPath    = "/"
	RegisterPath = "/register"
	AdminPath    = "/admin"
	DoctorPath   = "/doctor"
	PatientPath  = "/patient"
	HealthPath   = "/health"
	MetricsPath  = "/metrics"
)

// User-facing message constants. The credential and duplicate messages are
// fixed strings the clients display verbatim.
const (
	MsgInvalidCredentials = "Invalid Credentials!"
	MsgDuplicateUser      = "User with this NID already exists!"
	MsgLoginRequired      = "Login required"
	MsgForbiddenView      = "This view requires a different role"
	MsgInvalidJSON        = "Invalid JSON format"
	MsgInvalidID          = "Invalid id"
	MsgStorageFailure     = "Storage write failed"
	MsgNotFound           = "Not found"
)

// LoginRequest is the POST /login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /register body
type RegisterRequest struct {
	FullName string `json:"fullName"`
	NID      string `json:"nid"`
	Age      string `json:"age"`
	Sex      string `json:"sex"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AddDoctorRequest is the POST /admin/doctors body
type AddDoctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// AppointmentRequest is the POST /patient/appointments body
type AppointmentRequest struct {
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Notes  string `json:"notes"`
}

// StatusUpdateRequest is the PUT /doctor/appointments/{id}/status body
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// PrescriptionRequest is the POST /doctor/prescriptions body
type PrescriptionRequest struct {
	Patient     string           `json:"patient"`
	Diagnosis   string           `json:"diagnosis"`
	Medicines   []store.Medicine `json:"medicines"`
	DoctorNotes string           `json:"doctorNotes"`
}

// LabReportRequest is the body for lab report uploads. Patient is ignored
// on the patient route, where the session identifies the patient.
type LabReportRequest struct {
	Patient  string `json:"patient"`
	FileName string `json:"fileName"`
	FileData string `json:"fileData"`
}

// ProfileRequest is the PUT /patient/profile body. Empty fields keep their
// stored value; the merge happens here, not in the store.
type ProfileRequest struct {
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Insurance string `json:"insurance"`
	DOB       string `json:"dob"`
	Allergies string `json:"allergies"`
}

// writeJSON writes v as the JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
