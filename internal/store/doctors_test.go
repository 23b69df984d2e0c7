package store

import (
	"context"
	"testing"
)

func TestAddDoctor(t *testing.T) {
	tests := []struct {
		name             string
		doctorName       string
		specialty        string
		expectedFullName string
		expectedUsername string
	}{
		{
			name:             "Second token becomes the username",
			doctorName:       "Dr. Aishath",
			specialty:        "Neurology",
			expectedFullName: "Dr. Aishath (Neurology)",
			expectedUsername: "aishath",
		},
		{
			name:             "Single token falls back to whole name",
			doctorName:       "House",
			specialty:        "Diagnostics",
			expectedFullName: "House (Diagnostics)",
			expectedUsername: "house",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()

			doctor, err := s.AddDoctor(ctx, tt.doctorName, tt.specialty)
			if err != nil {
				t.Fatalf("AddDoctor failed: %v", err)
			}
			if doctor.Name != tt.expectedFullName {
				t.Errorf("Expected name %q, got %q", tt.expectedFullName, doctor.Name)
			}
			if doctor.Specialty != tt.specialty {
				t.Errorf("Expected specialty %q, got %q", tt.specialty, doctor.Specialty)
			}

			var login *Account
			for _, a := range s.Accounts() {
				if a.Username == tt.expectedUsername {
					account := a
					login = &account
				}
			}
			if login == nil {
				t.Fatalf("Auto-created login %q not found", tt.expectedUsername)
			}
			if login.Role != RoleDoctor {
				t.Errorf("Expected role %s, got %s", RoleDoctor, login.Role)
			}
			if login.Password != DefaultDoctorPassword {
				t.Errorf("Expected default password, got %q", login.Password)
			}
			if login.Name != tt.expectedFullName {
				t.Errorf("Login display name should match the doctor record")
			}
		})
	}
}

func TestDeleteDoctor(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doctor, err := s.AddDoctor(ctx, "Dr. Aishath", "Neurology")
	if err != nil {
		t.Fatalf("AddDoctor failed: %v", err)
	}

	// Book an appointment against the doctor so the orphaned reference
	// can be asserted after deletion.
	if _, err := s.Login(ctx, "admin", "123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	appt, err := s.AddAppointment(ctx, doctor.Name, "2026-09-01", "10:00", "checkup")
	if err != nil {
		t.Fatalf("AddAppointment failed: %v", err)
	}

	doctorsBefore := len(s.Doctors())
	accountsBefore := len(s.Accounts())

	if err := s.DeleteDoctor(ctx, doctor.ID); err != nil {
		t.Fatalf("DeleteDoctor failed: %v", err)
	}

	if got := len(s.Doctors()); got != doctorsBefore-1 {
		t.Errorf("Expected exactly one doctor removed, %d -> %d", doctorsBefore, got)
	}
	if got := len(s.Accounts()); got != accountsBefore-1 {
		t.Errorf("Expected the matching login removed, %d -> %d", accountsBefore, got)
	}

	// No cascade: the appointment keeps its orphaned doctor name.
	for _, a := range s.Appointments() {
		if a.ID == appt.ID {
			if a.Doctor != doctor.Name {
				t.Errorf("Appointment doctor reference changed: %q", a.Doctor)
			}
			return
		}
	}
	t.Errorf("Appointment deleted alongside its doctor")
}

func TestDeleteDoctorUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	doctorsBefore := len(s.Doctors())
	accountsBefore := len(s.Accounts())

	if err := s.DeleteDoctor(ctx, 42); err != nil {
		t.Fatalf("Delete of unknown doctor should not error: %v", err)
	}
	if len(s.Doctors()) != doctorsBefore || len(s.Accounts()) != accountsBefore {
		t.Errorf("Delete of unknown doctor must not mutate collections")
	}
}
