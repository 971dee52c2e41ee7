package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"hearth/internal/auth"
	"hearth/internal/session"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// RequireAuth decodes the session cookie and attaches the identity to
// the request context. Requests without a valid token are treated as
// anonymous: page routes get a redirect to the login form, API routes
// get a 401 JSON body.
func RequireAuth(codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				rejectAnonymous(w, r)
				return
			}

			claims := codec.Decode(cookie.Value)
			if claims == nil {
				rejectAnonymous(w, r)
				return
			}

			id := auth.Identity{
				UserID:      claims.UserID,
				HouseholdID: claims.HouseholdID,
				Email:       claims.Email,
				Role:        claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func rejectAnonymous(w http.ResponseWriter, r *http.Request) {
	if isAPIRequest(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func isAPIRequest(r *http.Request) bool {
	p := r.URL.Path
	return strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/tasks") || p == "/ws"
}
