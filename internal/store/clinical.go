package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// isoDate formats t the way prescription and lab report dates are stored.
func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// AddPrescription writes out a prescription stamped with the session
// doctor's display name and today's date. The medicines list is stored as
// given; filtering empty rows is the caller's concern. Returns
// ErrNoSession when nobody is logged in.
func (s *RecordStore) AddPrescription(ctx context.Context, patient, diagnosis string, medicines []Medicine, doctorNotes string) (*Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}

	rx := Prescription{
		ID:          s.ids.Next(),
		Patient:     patient,
		Doctor:      s.session.Name,
		Date:        isoDate(time.Now()),
		Diagnosis:   diagnosis,
		Medicines:   medicines,
		DoctorNotes: doctorNotes,
	}
	s.prescriptions = append(s.prescriptions, rx)
	if err := s.persist(ctx, KeyPrescriptions, s.prescriptions); err != nil {
		return nil, err
	}

	log.Info().
		Int64("id", rx.ID).
		Str("patient", patient).
		Str("doctor", rx.Doctor).
		Int("medicines", len(medicines)).
		Msg("Prescription added")

	p := rx
	return &p, nil
}

// UploadLabReport stores an uploaded file for a patient. The file arrives
// as a data-URL string; no type or size validation is applied. Status is
// always "Ready".
func (s *RecordStore) UploadLabReport(ctx context.Context, patientName, fileName, fileData, uploaderRole string) (*LabReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := LabReport{
		ID:         s.ids.Next(),
		Patient:    patientName,
		TestName:   fileName,
		FileData:   fileData,
		UploadedBy: uploaderRole,
		Date:       isoDate(time.Now()),
		Status:     LabReportReady,
	}
	s.labReports = append(s.labReports, report)
	if err := s.persist(ctx, KeyLabReports, s.labReports); err != nil {
		return nil, err
	}

	log.Info().
		Int64("id", report.ID).
		Str("patient", patientName).
		Str("testName", fileName).
		Str("uploadedBy", uploaderRole).
		Msg("Lab report uploaded")

	r := report
	return &r, nil
}

// UpdateProfile replaces the profile entry for username wholesale. Merging
// new fields into the existing profile happens in the caller.
func (s *RecordStore) UpdateProfile(ctx context.Context, username string, profile Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[username] = profile
	if err := s.persist(ctx, KeyProfiles, s.profiles); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("Profile updated")
	return nil
}
