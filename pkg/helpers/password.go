package helpers

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is the work factor used when none is configured.
const DefaultBcryptCost = 10

// ErrPasswordTooLong is returned by Hash for input over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher hashes and verifies passwords with bcrypt.
// The stored hash carries its own cost and salt, so hashes produced with an
// older cost keep verifying after the work factor is raised.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost clamped to bcrypt's range.
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost == 0:
		cost = DefaultBcryptCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int { return h.cost }

// Hash hashes the plain text password using bcrypt
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a bcrypt hash with a plain password.
// A malformed hash reports false.
func (h *PasswordHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// NeedsRehash reports whether hashed was produced with a different cost.
func (h *PasswordHasher) NeedsRehash(hashed string) bool {
	c, err := bcrypt.Cost([]byte(hashed))
	return err != nil || c != h.cost
}
