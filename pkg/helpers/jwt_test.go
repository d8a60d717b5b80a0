package helpers

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestManager(t *testing.T, secret string, now time.Time) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(secret, time.Hour, WithClock(fixedClock(now)))
	require.NoError(t, err)
	return m
}

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	for _, s := range []string{"", "   "} {
		m, err := NewJWTManager(s, time.Hour)
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ErrMissingSecret)
	}
}

func TestNewJWTManager_DefaultTTL(t *testing.T) {
	m, err := NewJWTManager("k", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, m.TTL())
}

func TestIssueAndAuthorize_Success(t *testing.T) {
	m := newTestManager(t, "super-secret", issuedAt)

	tok, exp, err := m.Issue("account-123")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), exp)

	id, err := m.Authorize(tok)
	require.NoError(t, err)
	assert.Equal(t, "account-123", id)
}

func TestAuthorize_Missing(t *testing.T) {
	m := newTestManager(t, "k", issuedAt)

	for _, raw := range []string{"", "   ", "not-a-jwt", "not.a.jwt", "a.b"} {
		_, err := m.Authorize(raw)
		assert.ErrorIs(t, err, ErrTokenMissing, "raw=%q", raw)
		assert.ErrorIs(t, err, ErrUnauthorized, "raw=%q", raw)
	}
}

func TestAuthorize_WrongSecret(t *testing.T) {
	issuer := newTestManager(t, "right-secret", issuedAt)
	verifier := newTestManager(t, "wrong-secret", issuedAt)

	tok, _, err := issuer.Issue("u1")
	require.NoError(t, err)

	_, err = verifier.Authorize(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthorize_ExpiredWithValidSignature(t *testing.T) {
	issuer := newTestManager(t, "k", issuedAt)
	tok, exp, err := issuer.Issue("u1")
	require.NoError(t, err)

	justBefore := newTestManager(t, "k", exp.Add(-time.Second))
	id, err := justBefore.Authorize(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	atExpiry := newTestManager(t, "k", exp)
	_, err = atExpiry.Authorize(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)

	later := newTestManager(t, "k", exp.Add(24*time.Hour))
	_, err = later.Authorize(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthorize_SignatureCheckedBeforeExpiry(t *testing.T) {
	issuer := newTestManager(t, "other", issuedAt)
	tok, _, err := issuer.Issue("u1")
	require.NoError(t, err)

	verifier := newTestManager(t, "k", issuedAt.Add(48*time.Hour))
	_, err = verifier.Authorize(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthorize_AlteredPayload(t *testing.T) {
	m := newTestManager(t, "k", issuedAt)
	tok, _, err := m.Issue("account-aaa")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	altered := strings.Replace(string(payload), "account-aaa", "account-bbb", 1)
	require.NotEqual(t, string(payload), altered)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(altered))

	_, err = m.Authorize(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthorize_FlippedByteRejected(t *testing.T) {
	m := newTestManager(t, "k", issuedAt)
	tok, _, err := m.Issue("account-aaa")
	require.NoError(t, err)

	dot := strings.IndexByte(tok, '.')
	b := []byte(tok)
	i := dot + 5
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	_, err = m.Authorize(string(b))
	assert.True(t, errors.Is(err, ErrUnauthorized), "got %v", err)
}

func TestAuthorize_RejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager(t, "k", issuedAt)
	claims := &Claims{
		AccountID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Authorize(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthorize_RequiresExpiryAndAccount(t *testing.T) {
	m := newTestManager(t, "k", issuedAt)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{AccountID: "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Authorize(noExp)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	noAccount, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = m.Authorize(noAccount)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer "))
	assert.Equal(t, "", BearerToken(""))
}
