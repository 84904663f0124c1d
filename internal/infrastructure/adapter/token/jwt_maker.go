package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/helphub-app/helphub-server/internal/domain/error"
	"github.com/helphub-app/helphub-server/internal/domain/port/core"
)

const minSecretLength = 32

// JWTMaker issues and verifies HMAC-signed session tokens
type JWTMaker struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTMaker creates a new JWT token maker. The secret must be at least
// 32 bytes.
func NewJWTMaker(secret string, ttl time.Duration) (*JWTMaker, error) {
	if len(secret) < minSecretLength {
		return nil, errors.New("token secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTMaker{secret: []byte(secret), ttl: ttl}, nil
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed session token for the given identity
func (m *JWTMaker) CreateToken(userPublicID, role string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userPublicID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken validates a token and extracts its claims
func (m *JWTMaker) VerifyToken(tokenString string) (*core.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrUnauthenticated
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return nil, errs.ErrUnauthenticated
	}

	return &core.TokenClaims{
		UserPublicID: claims.Subject,
		Role:         claims.Role,
	}, nil
}
