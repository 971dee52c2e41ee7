package store

import (
	"database/sql"
	"testing"

	"hearth/internal/credential"
	"hearth/internal/database"
	"hearth/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser creates a household with one member and returns both.
func seedUser(t *testing.T, db *sql.DB, householdName, email string) (*model.Household, *model.User) {
	t.Helper()

	h, err := NewHouseholdStore(db).Create(householdName)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}

	hash, err := credential.Hash("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := NewUserStore(db).Create(h.ID, "Test User", email, hash, model.RoleMember)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return h, u
}
