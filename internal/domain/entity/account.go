package entity

import (
	"time"
)

// Account is the aggregate root for the identity domain.
// PasswordHash holds the bcrypt hash; it never leaves the server.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string `json:"-"`
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicAccount is the outward representation of an Account.
type PublicAccount struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the credential material from a.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Avatar:    a.Avatar,
		CreatedAt: a.CreatedAt,
	}
}
