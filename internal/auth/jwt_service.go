package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTokenLifetime is used when no lifetime is configured.
const DefaultTokenLifetime = 24 * time.Hour

// Claims represents the JWT claims carried by issued tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates signed, time-limited bearer tokens.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a JWT service signing with the given secret.
// A non-positive lifetime falls back to DefaultTokenLifetime.
func NewJWTService(secret string, lifetime time.Duration) *JWTService {
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &JWTService{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Lifetime returns the configured token validity duration.
func (s *JWTService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue builds a signed token with subject=username and a role claim.
func (s *JWTService) Issue(username, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the token signature and standard claims and returns the
// claims. Any malformed, mis-signed or expired token is rejected.
func (s *JWTService) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Verify reports whether the token is valid and was issued for the expected
// username. It fails closed: any parse or signature error yields false.
func (s *JWTService) Verify(tokenString, expectedUsername string) bool {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == expectedUsername
}

// ExtractUsername returns the subject claim of a valid token.
func (s *JWTService) ExtractUsername(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractRole returns the role claim of a valid token.
func (s *JWTService) ExtractRole(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
