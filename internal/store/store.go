package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/maeesh-asiff1787/medicare-cms/internal/kv"
)

// Sentinel errors surfaced to callers. Handlers map these to the fixed
// user-facing messages.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("user with this NID already exists")
	ErrNoSession          = errors.New("no active session")
)

// RecordStore owns the record collections and mirrors each one to durable
// key-value storage on every mutation. Construct it with Open; it holds no
// package-level state.
type RecordStore struct {
	// mu guards every collection below. The modeled domain is a single
	// interactive user, but HTTP handlers run concurrently.
	mu sync.Mutex

	db  kv.Store
	ids idGenerator

	accounts      []Account
	doctors       []Doctor
	appointments  []Appointment
	prescriptions []Prescription
	labReports    []LabReport
	profiles      map[string]Profile
	session       *Account
}

// Open loads every collection from storage, falling back to the seed
// dataset (accounts, doctors) or an empty value when a key is absent or
// unreadable.
func Open(ctx context.Context, db kv.Store) (*RecordStore, error) {
	s := &RecordStore{db: db}

	loadSlice(ctx, db, KeyAccounts, &s.accounts, SeedAccounts())
	loadSlice(ctx, db, KeyDoctors, &s.doctors, SeedDoctors())
	loadSlice(ctx, db, KeyAppointments, &s.appointments, nil)
	loadSlice(ctx, db, KeyPrescriptions, &s.prescriptions, nil)
	loadSlice(ctx, db, KeyLabReports, &s.labReports, nil)

	s.profiles = map[string]Profile{}
	if err := db.Get(ctx, KeyProfiles, &s.profiles); err != nil {
		logLoadFallback(KeyProfiles, err)
		s.profiles = map[string]Profile{}
	}

	var session Account
	switch err := db.Get(ctx, KeySession, &session); {
	case err == nil && session.Username != "":
		s.session = &session
	case err != nil:
		logLoadFallback(KeySession, err)
	}

	log.Info().
		Int("accounts", len(s.accounts)).
		Int("doctors", len(s.doctors)).
		Int("appointments", len(s.appointments)).
		Bool("session", s.session != nil).
		Msg("Record store opened")

	return s, nil
}

// loadSlice reads one slice-valued collection, replacing absent or
// malformed content with the fallback.
func loadSlice[T any](ctx context.Context, db kv.Store, key string, dst *[]T, fallback []T) {
	var loaded []T
	if err := db.Get(ctx, key, &loaded); err != nil {
		logLoadFallback(key, err)
		*dst = fallback
		return
	}
	*dst = loaded
}

func logLoadFallback(key string, err error) {
	if errors.Is(err, kv.ErrNotFound) {
		log.Debug().Str("key", key).Msg("No stored collection, using default")
		return
	}
	log.Warn().Err(err).Str("key", key).Msg("Unreadable stored collection, using default")
}

// persist serializes one collection and writes it under its key. Every
// mutation calls this eagerly; there is no batching.
func (s *RecordStore) persist(ctx context.Context, key string, value interface{}) error {
	if err := s.db.Put(ctx, key, value); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to persist collection")
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

// CurrentUser returns the active session's account, or nil.
func (s *RecordStore) CurrentUser() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// Accounts returns a copy of the accounts collection.
func (s *RecordStore) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Account(nil), s.accounts...)
}

// Doctors returns a copy of the doctors collection.
func (s *RecordStore) Doctors() []Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Doctor(nil), s.doctors...)
}

// Appointments returns a copy of the appointments collection.
func (s *RecordStore) Appointments() []Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Appointment(nil), s.appointments...)
}

// Prescriptions returns a copy of the prescriptions collection.
func (s *RecordStore) Prescriptions() []Prescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prescription(nil), s.prescriptions...)
}

// LabReports returns a copy of the lab reports collection.
func (s *RecordStore) LabReports() []LabReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LabReport(nil), s.labReports...)
}

// ProfileFor returns the profile stored for username.
func (s *RecordStore) ProfileFor(username string) (Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[username]
	return p, ok
}

// Stats derives the appointment counters and revenue. Recomputed on every
// call, no cache, no mutation.
func (s *RecordStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.appointments)}
	for _, a := range s.appointments {
		switch a.Status {
		case StatusPending:
			st.Pending++
		case StatusCompleted:
			st.Completed++
		}
	}
	st.Revenue = st.Completed * RevenuePerAppointment
	return st
}
