package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/metrics"
	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// idFromRequest parses the {id} path variable
func idFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// publishStats pushes the derived appointment projection to Prometheus
func (a *API) publishStats() store.Stats {
	stats := a.store.Stats()
	metrics.RecordAppointmentStats(stats.Pending, stats.Completed, stats.Revenue)
	return stats
}

// AdminDashboardHandler returns the admin view: the doctor roster, every
// appointment, and the derived stats.
func (a *API) AdminDashboardHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleAdmin); !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"doctors":      a.store.Doctors(),
		"appointments": a.store.Appointments(),
		"stats":        a.publishStats(),
	})
}

// StatsHandler returns only the derived appointment stats
func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleAdmin); !ok {
		return
	}
	writeJSON(w, http.StatusOK, a.publishStats())
}

// AddDoctorHandler hires a doctor: one roster record plus an auto-created
// login account with the default password.
func (a *API) AddDoctorHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleAdmin); !ok {
		return
	}

	var req AddDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	doctor, err := a.store.AddDoctor(r.Context(), req.Name, req.Specialty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusCreated, doctor)
}

// DeleteDoctorHandler removes a doctor and its matching login account.
// Appointments and prescriptions referencing the doctor stay behind.
func (a *API) DeleteDoctorHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleAdmin); !ok {
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	if err := a.store.DeleteDoctor(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// DeleteAppointmentHandler removes an appointment; unknown ids are a
// silent success, matching the store's no-op semantics.
func (a *API) DeleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireRole(w, r, store.RoleAdmin); !ok {
		return
	}

	id, err := idFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidID)
		return
	}

	if err := a.store.DeleteAppointment(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	a.publishStats()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
