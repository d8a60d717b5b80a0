package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an issued token when none is configured.
const DefaultTokenTTL = time.Hour

var (
	// ErrUnauthorized is wrapped by every token rejection.
	ErrUnauthorized = errors.New("unauthorized")

	ErrTokenMissing = fmt.Errorf("%w: token missing or malformed", ErrUnauthorized)
	ErrTokenInvalid = fmt.Errorf("%w: token signature invalid", ErrUnauthorized)
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrUnauthorized)

	// ErrMissingSecret means the signing secret was not configured.
	ErrMissingSecret = errors.New("jwt: signing secret is empty")
)

// JWTManager issues and verifies HS256 account tokens.
// It is immutable after construction and safe for concurrent use.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// JWTOption configures a JWTManager.
type JWTOption func(*JWTManager)

// WithClock replaces time.Now, used for issuing and expiry checks.
func WithClock(now func() time.Time) JWTOption {
	return func(m *JWTManager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewJWTManager(secret string, ttl time.Duration, opts ...JWTOption) (*JWTManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL returns the lifetime of issued tokens.
func (m *JWTManager) TTL() time.Duration { return m.ttl }

type Claims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token for accountID that expires after the configured TTL.
func (m *JWTManager) Issue(accountID string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign token: %w", err)
	}
	return s, exp, nil
}

// Authorize verifies raw and returns the account ID it was issued for.
// Structure is checked first, then the signature, then expiry.
func (m *JWTManager) Authorize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrTokenMissing
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMissing
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	default:
		return "", ErrTokenInvalid
	}
	if claims.AccountID == "" {
		return "", ErrTokenInvalid
	}
	return claims.AccountID, nil
}

func (m *JWTManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return m.secret, nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the value does not use the Bearer scheme.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
