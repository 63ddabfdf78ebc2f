package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

type AuthService struct {
	apiToken  string
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(apiToken, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		apiToken:  apiToken,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Enabled reports whether requests must be authenticated at all.
func (s *AuthService) Enabled() bool {
	return s.apiToken != ""
}

// VerifyAPIToken checks a presented bearer token against the configured one
// in constant time.
func (s *AuthService) VerifyAPIToken(token string) error {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.apiToken)) != 1 {
		return ErrInvalidToken
	}
	return nil
}

// IssueJWT mints a short-lived signed token in exchange for the API token,
// so clients don't have to hold the long-lived secret.
func (s *AuthService) IssueJWT() (string, error) {
	if s.jwtSecret == "" {
		return "", fmt.Errorf("jwt secret not configured")
	}

	claims := jwt.MapClaims{
		"exp": time.Now().Add(s.jwtExpiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) error {
	if s.jwtSecret == "" {
		return ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	return nil
}

// Verify accepts either the raw API token or a JWT minted by IssueJWT.
func (s *AuthService) Verify(token string) error {
	if s.VerifyAPIToken(token) == nil {
		return nil
	}
	return s.VerifyJWT(token)
}
