package store

import (
	"context"
	"errors"
	"testing"

	"github.com/maeesh-asiff1787/medicare-cms/internal/kv"
)

func newTestStore(t *testing.T) (*RecordStore, *kv.Memory) {
	t.Helper()

	mem := kv.NewMemory()
	s, err := Open(context.Background(), mem)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s, mem
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		expectedRole string
		expectErr    bool
	}{
		{
			name:         "Seed admin logs in",
			username:     "admin",
			password:     "123",
			expectedRole: RoleAdmin,
		},
		{
			name:         "Username match is case-insensitive",
			username:     "ADMIN",
			password:     "123",
			expectedRole: RoleAdmin,
		},
		{
			name:         "Seed doctor logs in",
			username:     "DrSarah",
			password:     "123",
			expectedRole: RoleDoctor,
		},
		{
			name:      "Wrong password fails",
			username:  "admin",
			password:  "wrong",
			expectErr: true,
		},
		{
			name:      "Password match is exact",
			username:  "admin",
			password:  "1234",
			expectErr: true,
		},
		{
			name:      "Unknown user fails",
			username:  "nobody",
			password:  "123",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)

			account, err := s.Login(context.Background(), tt.username, tt.password)

			if tt.expectErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
				}
				if s.CurrentUser() != nil {
					t.Errorf("Session should be untouched after failed login")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if account.Role != tt.expectedRole {
				t.Errorf("Expected role %s, got %s", tt.expectedRole, account.Role)
			}
			current := s.CurrentUser()
			if current == nil || current.Username != account.Username {
				t.Errorf("Session not set to the matched account")
			}
		})
	}
}

func TestFailedLoginLeavesExistingSession(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Login(ctx, "admin", "123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := s.Login(ctx, "drsarah", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials, got %v", err)
	}

	current := s.CurrentUser()
	if current == nil || current.Username != "admin" {
		t.Errorf("Failed login must not replace the existing session")
	}
}

func TestLogout(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Login(ctx, "admin", "123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if s.CurrentUser() != nil {
		t.Errorf("Session should be cleared after logout")
	}
}

func TestRegisterPatient(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.RegisterPatient(ctx, "Jane Doe", "A123456", "30", "Female", "7771234", "pw")
	if err != nil {
		t.Fatalf("RegisterPatient failed: %v", err)
	}

	// Registration does not log the patient in.
	if s.CurrentUser() != nil {
		t.Errorf("Registration must not set the session")
	}

	account, err := s.Login(ctx, "A123456", "pw")
	if err != nil {
		t.Fatalf("Login after registration failed: %v", err)
	}
	if account.Role != RolePatient {
		t.Errorf("Expected role %s, got %s", RolePatient, account.Role)
	}
	if account.Name != "Jane Doe" {
		t.Errorf("Expected name Jane Doe, got %s", account.Name)
	}

	profile, ok := s.ProfileFor("A123456")
	if !ok {
		t.Fatalf("Profile not created at registration")
	}
	if profile.Age != "30" || profile.Sex != "Female" || profile.Phone != "7771234" {
		t.Errorf("Profile demographics not stored: %+v", profile)
	}
	if profile.Allergies != "" || profile.Address != "" || profile.Insurance != "" || profile.DOB != "" {
		t.Errorf("Profile free-text fields should start empty: %+v", profile)
	}
}

func TestRegisterPatientDuplicateNID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterPatient(ctx, "Jane Doe", "A123456", "30", "Female", "7771234", "pw"); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	accountsBefore := len(s.Accounts())

	err := s.RegisterPatient(ctx, "John Doe", "A123456", "40", "Male", "7775678", "pw2")
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("Expected ErrDuplicateUser, got %v", err)
	}

	if len(s.Accounts()) != accountsBefore {
		t.Errorf("Duplicate registration must not mutate accounts")
	}
	if profile, _ := s.ProfileFor("A123456"); profile.Age != "30" {
		t.Errorf("Duplicate registration must not mutate the existing profile")
	}
}

func TestRegisterPatientDuplicateCheckIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// "ADMIN" differs from the seed "admin" by case only; the
	// registration check is case-sensitive so it passes.
	if err := s.RegisterPatient(ctx, "Edge Case", "ADMIN", "20", "Male", "7770000", "pw"); err != nil {
		t.Fatalf("Case-differing NID should register: %v", err)
	}
}
