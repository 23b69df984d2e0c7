package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/maeesh-asiff1787/medicare-cms/internal/kv"
)

func TestOpenSeedsEmptyStorage(t *testing.T) {
	s, _ := newTestStore(t)

	if !reflect.DeepEqual(s.Accounts(), SeedAccounts()) {
		t.Errorf("Accounts should fall back to seed data")
	}
	if !reflect.DeepEqual(s.Doctors(), SeedDoctors()) {
		t.Errorf("Doctors should fall back to seed data")
	}
	if len(s.Appointments()) != 0 || len(s.Prescriptions()) != 0 || len(s.LabReports()) != 0 {
		t.Errorf("Record collections should default empty")
	}
	if s.CurrentUser() != nil {
		t.Errorf("Session should default to none")
	}
}

func TestReloadReproducesCollections(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()

	s, err := Open(ctx, mem)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := s.RegisterPatient(ctx, "Jane Doe", "A123456", "30", "Female", "7771234", "pw"); err != nil {
		t.Fatalf("RegisterPatient failed: %v", err)
	}
	if _, err := s.Login(ctx, "A123456", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := s.AddAppointment(ctx, "Dr. Sarah (Cardiology)", "2026-09-01", "09:30", ""); err != nil {
		t.Fatalf("AddAppointment failed: %v", err)
	}
	if _, err := s.UploadLabReport(ctx, "Jane Doe", "panel.pdf", "data:text/plain;base64,aGk=", RolePatient); err != nil {
		t.Fatalf("UploadLabReport failed: %v", err)
	}

	// Reopening over the same storage simulates a page reload.
	reloaded, err := Open(ctx, mem)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}

	if !reflect.DeepEqual(reloaded.Accounts(), s.Accounts()) {
		t.Errorf("Accounts did not round-trip")
	}
	if !reflect.DeepEqual(reloaded.Appointments(), s.Appointments()) {
		t.Errorf("Appointments did not round-trip")
	}
	if !reflect.DeepEqual(reloaded.LabReports(), s.LabReports()) {
		t.Errorf("Lab reports did not round-trip")
	}
	current := reloaded.CurrentUser()
	if current == nil || current.Username != "A123456" {
		t.Errorf("Session did not survive the reload")
	}
	profile, ok := reloaded.ProfileFor("A123456")
	if !ok || profile.Age != "30" {
		t.Errorf("Profiles did not round-trip: %+v", profile)
	}
}

func TestCorruptStorageFallsBackToSeed(t *testing.T) {
	mem := kv.NewMemory()
	mem.SetRaw(KeyAccounts, []byte("{not json"))
	mem.SetRaw(KeyAppointments, []byte(`"wrong shape"`))
	mem.SetRaw(KeySession, []byte("]["))

	s, err := Open(context.Background(), mem)
	if err != nil {
		t.Fatalf("Open must tolerate corrupt documents: %v", err)
	}

	if !reflect.DeepEqual(s.Accounts(), SeedAccounts()) {
		t.Errorf("Corrupt accounts document should yield the seed value")
	}
	if len(s.Appointments()) != 0 {
		t.Errorf("Corrupt appointments document should yield the empty default")
	}
	if s.CurrentUser() != nil {
		t.Errorf("Corrupt session document should yield no session")
	}
}

func TestStorageWriteFailurePropagates(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()

	s, err := Open(ctx, mem)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	mem.FailWrites = true

	if _, err := s.Login(ctx, "admin", "123"); err == nil {
		t.Errorf("Login should surface the session persistence failure")
	}
	if err := s.RegisterPatient(ctx, "Jane Doe", "A123456", "30", "Female", "7771234", "pw"); err == nil {
		t.Errorf("RegisterPatient should surface the storage failure")
	}

	mem.FailWrites = false
	if _, err := s.Login(ctx, "admin", "123"); err != nil {
		t.Fatalf("Login failed after storage recovered: %v", err)
	}
	if _, err := s.AddAppointment(ctx, "Dr. Sarah (Cardiology)", "2026-09-01", "09:30", ""); err != nil {
		t.Fatalf("AddAppointment failed: %v", err)
	}

	mem.FailWrites = true
	if err := s.UpdateStatus(ctx, s.Appointments()[0].ID, StatusCompleted); err == nil {
		t.Errorf("UpdateStatus should surface the storage failure")
	}
}
