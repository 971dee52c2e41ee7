package handler

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hearth/internal/auth"
	"hearth/internal/credential"
	"hearth/internal/database"
	"hearth/internal/model"
	"hearth/internal/store"
	"hearth/internal/view"
)

// testEnv bundles the stores and handlers under test against one
// in-memory database.
type testEnv struct {
	db          *sql.DB
	households  *store.HouseholdStore
	users       *store.UserStore
	tasks       *store.TaskStore
	completions *store.CompletionStore
	ledger      *store.LedgerStore
	renderer    view.Renderer
	logger      *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	renderer, err := view.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	return &testEnv{
		db:          db,
		households:  store.NewHouseholdStore(db),
		users:       store.NewUserStore(db),
		tasks:       store.NewTaskStore(db),
		completions: store.NewCompletionStore(db),
		ledger:      store.NewLedgerStore(db),
		renderer:    renderer,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// seedMember creates a household with one member whose password is
// "password" and returns both.
func (e *testEnv) seedMember(t *testing.T, householdName, email string) (*model.Household, *model.User) {
	t.Helper()

	h, err := e.households.Create(householdName)
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	hash, err := credential.Hash("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := e.users.Create(h.ID, "Test User", email, hash, model.RoleMember)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return h, u
}

// formRequest builds a form-encoded request carrying the user's identity.
func formRequest(method, target string, form url.Values, u *model.User) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if u != nil {
		id := auth.Identity{UserID: u.ID, HouseholdID: u.HouseholdID, Email: u.Email, Role: u.Role}
		req = req.WithContext(auth.WithIdentity(req.Context(), id))
	}
	return req
}
