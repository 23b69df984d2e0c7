package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// DoctorDashboardHandler returns the doctor view: every appointment, the
// patient roster with profiles, this doctor's prescriptions, and all lab
// reports.
func (a *API) DoctorDashboardHandler(w http.ResponseWriter, r *http.Request) {
	account, ok := requireRole(w, r, store.RoleDoctor)
	if !ok {
		return
	}

	type patientEntry struct {
		Account store.Account `json:"account"`
		Profile store.Profile `json:"profile"`
	}

	var patients []patientEntry
	for _, acc := range a.store.Accounts() {
		if acc.Role != store.RolePatient {
			continue
		}
		profile, _ := a.store.ProfileFor(acc.Username)
		patients = append(patients, patientEntry{Account: acc, Profile: profile})
	}

	var own []store.Prescription
	for _, rx := range a.store.Prescriptions() {
		if rx.Doctor == account.Name {
			own = append(own, rx)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"appointments":  a.store.Appointments(),
		"patients":      patients,
		"prescriptions": own,
		"labReports":    a.store.LabReports(),
	})
}

// UpdateStatusHandler changes one appointment's status. The value is
// stored as given; unknown ids are a silent success.
func (a *API) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleDoctor); !ok {
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	var req StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	if err := a.store.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	a.publishStats()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// AddPrescriptionHandler writes a prescription for a patient, stamped with
// the session doctor's name and today's date. Empty medicine rows are
// filtered here; the store trusts its caller.
func (a *API) AddPrescriptionHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleDoctor); !ok {
		return
	}

	var req PrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	if req.Patient == "" || req.Diagnosis == "" {
		writeError(w, http.StatusUnprocessableEntity, "Patient and Diagnosis required")
		return
	}

	medicines := req.Medicines[:0]
	for _, m := range req.Medicines {
		if m.Name != "" {
			medicines = append(medicines, m)
		}
	}
	if len(medicines) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "At least one medicine required")
		return
	}

	rx, err := a.store.AddPrescription(r.Context(), req.Patient, req.Diagnosis, medicines, req.DoctorNotes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusCreated, rx)
}

// DoctorUploadLabReportHandler stores a lab report uploaded on a
// patient's behalf.
func (a *API) DoctorUploadLabReportHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleDoctor); !ok {
		return
	}

	var req LabReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	report, err := a.store.UploadLabReport(r.Context(), req.Patient, req.FileName, req.FileData, store.RoleDoctor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}
