package store

// Account roles.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Appointment statuses. UpdateStatus does not validate against these; the
// recognized values are what the views render.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// LabReportReady is the only status a lab report ever carries.
const LabReportReady = "Ready"

// DefaultDoctorPassword is assigned to auto-created doctor logins.
const DefaultDoctorPassword = "123"

// RevenuePerAppointment is the flat fee counted for each completed
// appointment when deriving revenue.
const RevenuePerAppointment = 50

// Storage keys, one per collection plus one for the session.
const (
	KeyAccounts      = "db_users"
	KeyDoctors       = "db_doctors"
	KeyAppointments  = "db_appointments"
	KeyPrescriptions = "db_prescriptions"
	KeyLabReports    = "db_labReports"
	KeyProfiles      = "db_profiles"
	KeySession       = "currentUser"
)

// Account is the identity and credential record for every person in the
// system. Passwords are stored in plaintext; this is a demo dataset, not a
// credential vault.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

// Doctor is one practicing doctor. Name carries the specialty suffix,
// e.g. "Dr. Sarah (Cardiology)".
type Doctor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// Appointment links a patient to a doctor by display name. Patient and
// Username are stamped from the session at creation time.
type Appointment struct {
	ID       int64  `json:"id"`
	Doctor   string `json:"doctor"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
	Patient  string `json:"patient"`
	Username string `json:"username"`
}

// Medicine is one line of a prescription.
type Medicine struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Dosage string `json:"dosage"`
}

// Prescription is immutable once written.
type Prescription struct {
	ID          int64      `json:"id"`
	Patient     string     `json:"patient"`
	Doctor      string     `json:"doctor"`
	Date        string     `json:"date"`
	Diagnosis   string     `json:"diagnosis"`
	Medicines   []Medicine `json:"medicines"`
	DoctorNotes string     `json:"doctorNotes"`
}

// LabReport carries uploaded file contents as a data-URL string.
type LabReport struct {
	ID         int64  `json:"id"`
	Patient    string `json:"patient"`
	TestName   string `json:"testName"`
	FileData   string `json:"fileData"`
	UploadedBy string `json:"uploadedBy"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// Profile holds a patient's demographics, keyed by account username in the
// profiles collection.
type Profile struct {
	NID       string `json:"nid"`
	Age       string `json:"age"`
	Sex       string `json:"sex"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Insurance string `json:"insurance"`
	DOB       string `json:"dob"`
	Allergies string `json:"allergies"`
}

// Stats is the read-side projection over appointments.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Revenue   int `json:"revenue"`
}
