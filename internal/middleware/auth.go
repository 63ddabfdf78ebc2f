package middleware

import (
	"net/http"
	"strings"

	"github.com/kevxviikw/noted/internal/service"
)

// RequireAuth rejects requests without a valid bearer token. When no API
// token is configured the API is open and the middleware passes everything
// through.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() {
				next(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			const prefix = "bearer "
			if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
				unauthorized(w, http.StatusUnauthorized, "missing or invalid Authorization header")
				return
			}

			token := strings.TrimSpace(auth[len(prefix):])
			err := authService.Verify(token)
			if err != nil {
				unauthorized(w, http.StatusForbidden, "invalid token")
				return
			}

			next(w, r)
		}
	}
}

func unauthorized(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
