package store

import (
	"context"

	"github.com/rs/zerolog/log"
)

// AddAppointment books an appointment for the active session's account,
// stamping its display name and username as the patient identity. Status
// starts Pending. Returns ErrNoSession when nobody is logged in.
func (s *RecordStore) AddAppointment(ctx context.Context, doctor, date, timeOfDay, notes string) (*Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}

	appt := Appointment{
		ID:       s.ids.Next(),
		Doctor:   doctor,
		Date:     date,
		Time:     timeOfDay,
		Notes:    notes,
		Status:   StatusPending,
		Patient:  s.session.Name,
		Username: s.session.Username,
	}
	s.appointments = append(s.appointments, appt)
	if err := s.persist(ctx, KeyAppointments, s.appointments); err != nil {
		return nil, err
	}

	log.Info().
		Int64("id", appt.ID).
		Str("doctor", doctor).
		Str("patient", appt.Patient).
		Msg("Appointment booked")

	a := appt
	return &a, nil
}

// UpdateStatus replaces the status of the appointment with the matching
// id. Unknown ids are a silent no-op; the status value itself is not
// validated.
func (s *RecordStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.appointments {
		if s.appointments[i].ID == id {
			s.appointments[i].Status = status
			found = true
		}
	}
	if !found {
		log.Debug().Int64("id", id).Msg("Status update for unknown appointment ignored")
		return nil
	}

	if err := s.persist(ctx, KeyAppointments, s.appointments); err != nil {
		return err
	}

	log.Info().
		Int64("id", id).
		Str("status", status).
		Msg("Appointment status updated")

	return nil
}

// DeleteAppointment removes the appointment with the matching id. Unknown
// ids are a silent no-op.
func (s *RecordStore) DeleteAppointment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.appointments[:0]
	found := false
	for _, a := range s.appointments {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	s.appointments = kept

	if !found {
		log.Debug().Int64("id", id).Msg("Delete of unknown appointment ignored")
		return nil
	}

	if err := s.persist(ctx, KeyAppointments, s.appointments); err != nil {
		return err
	}

	log.Info().Int64("id", id).Msg("Appointment deleted")
	return nil
}
