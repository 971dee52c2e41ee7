package store

import (
	"database/sql"
	"fmt"

	"hearth/internal/credential"
	"hearth/internal/model"
)

const (
	bootstrapHousehold  = "Home"
	bootstrapAdminName  = "Admin"
	bootstrapAdminEmail = "admin@example.com"
	bootstrapAdminPass  = "admin"
)

// Bootstrap seeds the default household and admin user on first run.
// It is a no-op when any household already exists, so exactly one
// bootstrap household exists after startup.
func Bootstrap(db *sql.DB) error {
	households := NewHouseholdStore(db)

	n, err := households.Count()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if n > 0 {
		return nil
	}

	h, err := households.Create(bootstrapHousehold)
	if err != nil {
		return fmt.Errorf("bootstrap household: %w", err)
	}

	hash, err := credential.Hash(bootstrapAdminPass)
	if err != nil {
		return fmt.Errorf("bootstrap admin hash: %w", err)
	}

	users := NewUserStore(db)
	if _, err := users.Create(h.ID, bootstrapAdminName, bootstrapAdminEmail, hash, model.RoleAdmin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}
