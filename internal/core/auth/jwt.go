package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"farmbook/internal/domain"
)

// Token verification outcomes, in order of specificity. Expiry is checked
// before signature problems so an expired token is never reported as invalid.
var (
	ErrConfiguration      = errors.New("jwt secret or ttl not configured")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidToken       = errors.New("invalid token")
	ErrVerificationFailed = errors.New("token verification failed")
)

const bearerPrefix = "Bearer "

type Claims struct {
	UID    string      `json:"uid"`
	Email  string      `json:"email"`
	Mobile string      `json:"mobile"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTer issues and verifies HS256 bearer tokens. It holds no per-request
// state; verification is pure computation.
type JWTer struct {
	Secret []byte
	TTL    time.Duration
}

// NewJWTer fails with ErrConfiguration when the secret or TTL is unset.
// Callers treat that as fatal at startup, never as a request error.
func NewJWTer(secret string, ttl time.Duration) (*JWTer, error) {
	if secret == "" || ttl <= 0 {
		return nil, ErrConfiguration
	}
	return &JWTer{Secret: []byte(secret), TTL: ttl}, nil
}

func (j *JWTer) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:    u.ID,
		Email:  u.Email,
		Mobile: u.Mobile,
		Name:   u.Name,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Verify(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %q", token.Method.Alg())
		}
		return j.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalidToken
		default:
			return nil, ErrVerificationFailed
		}
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}

// ExtractToken returns the token after the literal "Bearer " prefix.
// A missing or differently shaped header is absence, not an error.
func ExtractToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return header[len(bearerPrefix):], true
}
