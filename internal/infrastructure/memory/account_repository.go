// Package memory provides an in-process account store for development and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

type AccountRepository struct {
	mu      sync.RWMutex
	byID    map[string]entity.Account
	byEmail map[string]string
	now     func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[string]entity.Account),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *AccountRepository) Insert(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return repository.ErrDuplicateEmail
	}
	now := r.now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.byID[a.ID] = *a
	r.byEmail[key] = a.ID
	return nil
}

func (r *AccountRepository) FindByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := r.byID[id]
	return &a, nil
}

// Len reports how many accounts are stored.
func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
