package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// The token subject identifies the user session a request belongs to.
type TokenService interface {
	// GenerateAccessToken creates a new access token for a given user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetAccessTokenDuration returns the configured duration for access tokens.
	GetAccessTokenDuration() time.Duration
}
