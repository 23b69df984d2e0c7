package store

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Login matches username case-insensitively and password exactly against
// all accounts. On a match the session is set and persisted and the
// matched account is returned. On a mismatch the session is left untouched
// and ErrInvalidCredentials is returned. Repeated failures are not rate
// limited.
func (s *RecordStore) Login(ctx context.Context, username, password string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Username, username) && a.Password == password {
			account := a
			s.session = &account
			if err := s.persist(ctx, KeySession, account); err != nil {
				return nil, err
			}

			log.Info().
				Str("username", account.Username).
				Str("role", account.Role).
				Msg("Login succeeded")

			u := account
			return &u, nil
		}
	}

	log.Warn().Str("username", username).Msg("Login failed")
	return nil, ErrInvalidCredentials
}

// Logout clears and persists the session. Navigation back to the entry
// view is the HTTP layer's job.
func (s *RecordStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	if err := s.persist(ctx, KeySession, nil); err != nil {
		return err
	}

	log.Info().Msg("Session cleared")
	return nil
}

// RegisterPatient creates a patient account whose username is the national
// id, plus a profile keyed by it. The duplicate check is case-sensitive,
// unlike Login's match. The session is not set; the caller logs in
// separately.
func (s *RecordStore) RegisterPatient(ctx context.Context, fullName, nid, age, sex, phone, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Username == nid {
			return ErrDuplicateUser
		}
	}

	account := Account{
		ID:       s.ids.Next(),
		Username: nid,
		Password: password,
		Role:     RolePatient,
		Name:     fullName,
	}
	s.accounts = append(s.accounts, account)
	if err := s.persist(ctx, KeyAccounts, s.accounts); err != nil {
		return err
	}

	s.profiles[nid] = Profile{NID: nid, Age: age, Sex: sex, Phone: phone}
	if err := s.persist(ctx, KeyProfiles, s.profiles); err != nil {
		return err
	}

	log.Info().
		Str("username", nid).
		Str("name", fullName).
		Msg("Patient registered")

	return nil
}
