package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/metrics"
	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// EntryHandler describes the unauthenticated entry view
func (a *API) EntryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":  "medicare-cms",
		"login":    "/login",
		"register": RegisterPath,
	})
}

// HealthHandler reports liveness
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// LoginHandler authenticates against the accounts collection and sets the
// session. Username matching is case-insensitive, password exact.
func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		metrics.RecordLoginAttempt("invalid_json")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	account, err := a.store.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			metrics.RecordLoginAttempt("invalid_credentials")
			writeError(w, http.StatusUnauthorized, MsgInvalidCredentials)
			return
		}
		metrics.RecordLoginAttempt("storage_error")
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	metrics.RecordLoginAttempt("success")
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"role":     account.Role,
		"name":     account.Name,
		"username": account.Username,
	})
}

// LogoutHandler clears the session and sends the client back to the entry
// view.
func (a *API) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}
	http.Redirect(w, r, EntryPath, http.StatusSeeOther)
}

// RegisterHandler performs patient self-registration. The NID becomes the
// account username; a duplicate NID is a conflict.
func (a *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Failed to decode JSON request")
		metrics.RecordRegistration("invalid_json")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	err := a.store.RegisterPatient(r.Context(), req.FullName, req.NID, req.Age, req.Sex, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			metrics.RecordRegistration("duplicate")
			writeError(w, http.StatusConflict, MsgDuplicateUser)
			return
		}
		metrics.RecordRegistration("storage_error")
		writeError(w, http.StatusInternalServerError, MsgStorageFailure)
		return
	}

	metrics.RecordRegistration("success")
	writeJSON(w, http.StatusCreated, map[string]string{"status": "success"})
}
