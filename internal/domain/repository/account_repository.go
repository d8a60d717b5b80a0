package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("account email already taken")
)

// AccountRepository defines the account store. Emails are stored normalized
// (trimmed, lower case) and are unique.
type AccountRepository interface {
	// Insert assigns ID and timestamps on success.
	Insert(ctx context.Context, a *entity.Account) error
	FindByID(ctx context.Context, id string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
}
