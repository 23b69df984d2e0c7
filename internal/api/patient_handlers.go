package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// PatientDashboardHandler returns the patient view: own appointments,
// prescriptions and lab reports, the doctor roster for booking, and the
// patient's profile.
func (a *API) PatientDashboardHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := requireRole(w, r, store.RolePatient)
	if !ok {
		return
	}

	var appointments []store.Appointment
	for _, appt := range a.store.Appointments() {
		if appt.Username == account.Username {
			appointments = append(appointments, appt)
		}
	}

	var prescriptions []store.Prescription
	for _, rx := range a.store.Prescriptions() {
		if rx.Patient == account.Name {
			prescriptions = append(prescriptions, rx)
		}
	}

	var labReports []store.LabReport
	for _, report := range a.store.LabReports() {
		if report.Patient == account.Name {
			labReports = append(labReports, report)
		}
	}

	profile, _ := a.store.ProfileFor(account.Username)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"appointments":  appointments,
		"doctors":       a.store.Doctors(),
		"prescriptions": prescriptions,
		"labReports":    labReports,
		"profile":       profile,
	})
}

// AddAppointmentHandler books an appointment for the session's patient
func (a *API) AddAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RolePatient); !ok {
		return
	}

	var req AppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	appt, err := a.store.AddAppointment(r.Context(), req.Doctor, req.Date, req.Time, req.Notes)
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, MsgLoginRequired)
			return
		}
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	a.publishStats()
	writeJSON(w, http.StatusCreated, appt)
}

// UpdateProfileHandler merges the submitted fields over the stored profile
// and replaces the entry. The store itself replaces wholesale; the merge
// lives here.
func (a *API) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := requireRole(w, r, store.RolePatient)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	profile, _ := a.store.ProfileFor(account.Username)
	if profile.NID == "" {
		profile.NID = account.Username
	}
	if req.Age != "" {
		profile.Age = req.Age
	}
	if req.Sex != "" {
		profile.Sex = req.Sex
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Insurance != "" {
		profile.Insurance = req.Insurance
	}
	if req.DOB != "" {
		profile.DOB = req.DOB
	}
	if req.Allergies != "" {
		profile.Allergies = req.Allergies
	}

	if err := a.store.UpdateProfile(r.Context(), account.Username, profile); err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// PatientUploadLabReportHandler stores a lab report uploaded by the
// patient for themselves. The session supplies the patient name.
func (a *API) PatientUploadLabReportHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := requireRole(w, r, store.RolePatient)
	if !ok {
		return
	}

	var req LabReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	report, err := a.store.UploadLabReport(r.Context(), account.Name, req.FileName, req.FileData, store.RolePatient)
	if err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

// LabReportFileHandler serves a lab report's file contents, decoded from
// the stored data-URL. Patients only reach their own reports.
func (a *API) LabReportFileHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := requireRole(w, r, store.RolePatient)
	if !ok {
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	for _, report := range a.store.LabReports() {
		if report.ID != id || report.Patient != account.Name {
			continue
		}

		mediaType, data, err := parseDataURL(report.FileData)
		if err != nil {
			log.Error().Err(err).Int64("id", id).Msg("Stored lab report file is not a valid data URL")
			writeError(w, http.StatusInternalServerError, "Stored file is unreadable")
			return
		}

		w.Header().Set("Content-Type", mediaType)
		w.Header().Set("Content-Disposition", "attachment; filename=\""+report.TestName+"\"")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	writeError(w, http.StatusNotFound, MsgNotFound)
}
