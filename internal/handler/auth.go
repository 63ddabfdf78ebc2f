package handler

import (
	"net/http"
	"strings"

	"github.com/kevxviikw/noted/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token exchanges the static API token for a short-lived JWT.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
		return
	}

	err := h.authService.VerifyAPIToken(token)
	if err != nil {
		respondError(w, http.StatusForbidden, "invalid token")
		return
	}

	jwtToken, err := h.authService.IssueJWT()
	if err != nil {
		respondError(w, http.StatusBadRequest, "token exchange is not configured")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": jwtToken})
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(auth[len(prefix):]), true
}
