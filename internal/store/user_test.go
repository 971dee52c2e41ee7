package store

import (
	"testing"

	"hearth/internal/model"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := setupTestDB(t)
	h, u := seedUser(t, db, "Home", "alice@example.com")

	us := NewUserStore(db)

	byID, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID == nil || byID.Email != "alice@example.com" {
		t.Errorf("got %+v, want alice@example.com", byID)
	}
	if byID.HouseholdID != h.ID {
		t.Errorf("household_id = %d, want %d", byID.HouseholdID, h.ID)
	}

	byEmail, err := us.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail == nil || byEmail.ID != u.ID {
		t.Errorf("got %+v, want id %d", byEmail, u.ID)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := NewUserStore(db).GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestUserEmailUniqueAcrossHouseholds(t *testing.T) {
	db := setupTestDB(t)
	_, _ = seedUser(t, db, "Home", "alice@example.com")

	other, err := NewHouseholdStore(db).Create("Beach House")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}

	_, err = NewUserStore(db).Create(other.ID, "Other Alice", "alice@example.com", "hash", model.RoleMember)
	if err == nil {
		t.Error("expected duplicate email to fail even in a different household")
	}
}

func TestUserListByHousehold(t *testing.T) {
	db := setupTestDB(t)
	h, _ := seedUser(t, db, "Home", "zoe@example.com")

	us := NewUserStore(db)
	if _, err := us.Create(h.ID, "Adam", "adam@example.com", "hash", model.RoleMember); err != nil {
		t.Fatalf("create user: %v", err)
	}

	users, err := us.ListByHousehold(h.ID)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].Name != "Adam" {
		t.Errorf("first user = %q, want Adam (name order)", users[0].Name)
	}
}
