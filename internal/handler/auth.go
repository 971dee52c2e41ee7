package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"hearth/internal/credential"
	"hearth/internal/middleware"
	"hearth/internal/session"
	"hearth/internal/store"
	"hearth/internal/view"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

// invalidCredentials is shown for unknown email and wrong password
// alike, so login responses cannot be used to enumerate accounts.
const invalidCredentials = "Invalid email or password"

type AuthHandler struct {
	users        *store.UserStore
	codec        *session.Codec
	renderer     view.Renderer
	secureCookie bool
	logger       *slog.Logger
}

func NewAuthHandler(us *store.UserStore, codec *session.Codec, renderer view.Renderer, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:        us,
		codec:        codec,
		renderer:     renderer,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type loginPage struct {
	Email string
	Error string
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, "login.html", loginPage{}); err != nil {
		h.logger.Error("render login", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.users.GetByEmail(email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if user == nil || !credential.Verify(password, user.HashPW) {
		if err := h.renderer.Render(w, "login.html", loginPage{Email: email, Error: invalidCredentials}); err != nil {
			h.logger.Error("render login", "error", err)
		}
		return
	}

	token, err := h.codec.Encode(session.Claims{
		UserID:      user.ID,
		HouseholdID: user.HouseholdID,
		Email:       user.Email,
		Role:        user.Role,
	})
	if err != nil {
		h.logger.Error("encode session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session cookie unconditionally. The token itself
// stays valid until the cookie would have expired; there is no
// server-side revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookie,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
