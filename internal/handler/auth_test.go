package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hearth/internal/middleware"
	"hearth/internal/session"
)

func newAuthHandler(e *testEnv) (*AuthHandler, *session.Codec) {
	codec := session.NewCodec("test-secret")
	return NewAuthHandler(e.users, codec, e.renderer, false, e.logger), codec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	_, user := env.seedMember(t, "Home", "alice@example.com")
	h, codec := newAuthHandler(env)

	rec := httptest.NewRecorder()
	h.Login(rec, formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"password"},
	}, nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if !cookie.HttpOnly {
		t.Error("cookie not http-only")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want lax", cookie.SameSite)
	}
	if cookie.MaxAge != sessionMaxAge {
		t.Errorf("MaxAge = %d, want %d", cookie.MaxAge, sessionMaxAge)
	}

	claims := codec.Decode(cookie.Value)
	if claims == nil {
		t.Fatal("cookie token does not decode")
	}
	if claims.UserID != user.ID || claims.HouseholdID != user.HouseholdID || claims.Email != user.Email {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginTrimsEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, "Home", "alice@example.com")
	h, _ := newAuthHandler(env)

	rec := httptest.NewRecorder()
	h.Login(rec, formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"  alice@example.com  "},
		"password": {"password"},
	}, nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func TestLoginBadCredentialsIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.seedMember(t, "Home", "alice@example.com")
	h, _ := newAuthHandler(env)

	// Wrong password for a real account
	wrongPW := httptest.NewRecorder()
	h.Login(wrongPW, formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"nope"},
	}, nil))

	// Account that does not exist
	noAccount := httptest.NewRecorder()
	h.Login(noAccount, formRequest(http.MethodPost, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"nope"},
	}, nil))

	for name, rec := range map[string]*httptest.ResponseRecorder{"wrong password": wrongPW, "unknown email": noAccount} {
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), invalidCredentials) {
			t.Errorf("%s: body missing generic error", name)
		}
		if sessionCookie(t, rec) != nil {
			t.Errorf("%s: session cookie set on failed login", name)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)
	h, _ := newAuthHandler(env)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}

	cookie := sessionCookie(t, rec)
	if cookie == nil {
		t.Fatal("no clearing cookie set")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", cookie.MaxAge)
	}
	if cookie.Value != "" {
		t.Errorf("Value = %q, want empty", cookie.Value)
	}
}
