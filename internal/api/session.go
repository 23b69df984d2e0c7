package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/store"
)

// RequestIDMiddleware tags every request with a correlation id, echoed in
// the response headers and attached to the request log line.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		log.Debug().
			Str("requestID", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Msg("Request received")

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionMiddleware loads the store's current session into the request
// context. It never rejects: access control belongs to the views, not the
// router.
func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if account := a.store.CurrentUser(); account != nil {
			ctx := context.WithValue(r.Context(), SessionKey, account)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext extracts the active session's account, if any.
func SessionFromContext(ctx context.Context) *store.Account {
	account, ok := ctx.Value(SessionKey).(*store.Account)
	if !ok {
		return nil
	}
	return account
}

// requireRole resolves the session and checks its role. Writes the 401 or
// 403 response itself and reports whether the handler may proceed.
func requireRole(w http.ResponseWriter, r *http.Request, role string) (*store.Account, bool) {
	account := SessionFromContext(r.Context())
	if account == nil {
		writeError(w, http.StatusUnauthorized, MsgLoginRequired)
		return nil, false
	}
	if account.Role != role {
		log.Warn().
			Str("username", account.Username).
			Str("role", account.Role).
			Str("path", r.URL.Path).
			Msg("View reached with the wrong role")
		writeError(w, http.StatusForbidden, MsgForbiddenView)
		return nil, false
	}
	return account, true
}
