package store

// Seed ids are fixed so the two doctor accounts and their doctor records
// share ids, matching how the dataset ships.
const (
	seedAdminID   = 1701000000001
	seedDrSarahID = 1701000000002
	seedDrJamesID = 1701000000003
)

// SeedAccounts returns the built-in fallback accounts: one admin and two
// doctors. Used when the accounts key is absent or unreadable.
func SeedAccounts() []Account {
	return []Account{
		{ID: seedAdminID, Username: "admin", Password: "123", Role: RoleAdmin, Name: "System Admin"},
		{ID: seedDrSarahID, Username: "drsarah", Password: "123", Role: RoleDoctor, Name: "Dr. Sarah (Cardiology)"},
		{ID: seedDrJamesID, Username: "drjames", Password: "123", Role: RoleDoctor, Name: "Dr. James (General)"},
	}
}

// SeedDoctors returns the built-in fallback doctor records, ids matching
// the seed doctor accounts.
func SeedDoctors() []Doctor {
	return []Doctor{
		{ID: seedDrSarahID, Name: "Dr. Sarah (Cardiology)", Specialty: "Cardiology"},
		{ID: seedDrJamesID, Name: "Dr. James (General)", Specialty: "General Medicine"},
	}
}
