// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"locator/config"
	"locator/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const accessTokenType = "access"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret []byte
	accessTTL    time.Duration
	now          func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	ttl := cfg.SecretKey.AccessTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &jwtService{
		accessSecret: []byte(cfg.SecretKey.Access),
		accessTTL:    ttl,
		now:          time.Now,
	}, nil
}

// GenerateAccessToken signs an HS256 access token whose subject is the user ID.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := service.Claims{
		UserID: userID,
		Type:   accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// ValidateToken parses an access token and returns its claims.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	if claims.Type != accessTokenType {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}
	if claims.UserID == uuid.Nil {
		return nil, errors.New("token has no user")
	}

	return claims, nil
}

// GetAccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) GetAccessTokenDuration() time.Duration {
	return s.accessTTL
}
