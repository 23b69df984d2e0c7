package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// AddDoctor creates a doctor record with the display name
// "<name> (<specialty>)" and auto-creates a login account for it. The
// username heuristic takes the second space-separated token of name
// lowercased ("Dr. Aishath" -> "aishath") and falls back to the whole name
// lowercased when there is no second token.
func (s *RecordStore) AddDoctor(ctx context.Context, name, specialty string) (*Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fullName := fmt.Sprintf("%s (%s)", name, specialty)

	doctor := Doctor{ID: s.ids.Next(), Name: fullName, Specialty: specialty}
	s.doctors = append(s.doctors, doctor)
	if err := s.persist(ctx, KeyDoctors, s.doctors); err != nil {
		return nil, err
	}

	username := strings.ToLower(name)
	if parts := strings.Split(name, " "); len(parts) > 1 {
		username = strings.ToLower(parts[1])
	}

	s.accounts = append(s.accounts, Account{
		ID:       s.ids.Next(),
		Username: username,
		Password: DefaultDoctorPassword,
		Role:     RoleDoctor,
		Name:     fullName,
	})
	if err := s.persist(ctx, KeyAccounts, s.accounts); err != nil {
		return nil, err
	}

	log.Info().
		Int64("id", doctor.ID).
		Str("name", fullName).
		Str("username", username).
		Msg("Doctor added")

	d := doctor
	return &d, nil
}

// DeleteDoctor removes the doctor with the matching id and, if found, any
// account whose display name matches it exactly. Appointments and
// prescriptions referencing the doctor by name are left as they are; there
// is no cascading delete.
func (s *RecordStore) DeleteDoctor(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted *Doctor
	kept := s.doctors[:0]
	for _, d := range s.doctors {
		if d.ID == id {
			doc := d
			deleted = &doc
			continue
		}
		kept = append(kept, d)
	}
	s.doctors = kept
	if err := s.persist(ctx, KeyDoctors, s.doctors); err != nil {
		return err
	}

	if deleted == nil {
		log.Debug().Int64("id", id).Msg("Delete of unknown doctor ignored")
		return nil
	}

	keptAccounts := s.accounts[:0]
	for _, a := range s.accounts {
		if a.Name == deleted.Name {
			continue
		}
		keptAccounts = append(keptAccounts, a)
	}
	s.accounts = keptAccounts
	if err := s.persist(ctx, KeyAccounts, s.accounts); err != nil {
		return err
	}

	log.Info().
		Int64("id", id).
		Str("name", deleted.Name).
		Msg("Doctor deleted")

	return nil
}
