package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"), "hash should be self-describing: %q", hash)

	assert.True(t, h.Verify("secret1", hash))
	assert.False(t, h.Verify("secret2", hash))
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifiesOlderCost(t *testing.T) {
	old := NewPasswordHasher(bcrypt.MinCost)
	hash, err := old.Hash("secret1")
	require.NoError(t, err)

	current := NewPasswordHasher(bcrypt.MinCost + 1)
	assert.True(t, current.Verify("secret1", hash))
	assert.True(t, current.NeedsRehash(hash))
	assert.False(t, old.NeedsRehash(hash))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, stored := range []string{"", "not-a-hash", "$2a$04$short"} {
		assert.False(t, h.Verify("secret1", stored), "stored=%q", stored)
		assert.True(t, h.NeedsRehash(stored), "stored=%q", stored)
	}
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).Cost())
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).Cost())
	assert.Equal(t, 12, NewPasswordHasher(12).Cost())
}
