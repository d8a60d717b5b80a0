package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	"github.com/oksasatya/go-devconnector/internal/domain/repository"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Insert(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password_hash, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.PasswordHash, a.Avatar)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return insertError(err)
	}
	return nil
}

func insertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return fmt.Errorf("insert account: %w", err)
}

// FindByID reports ErrNotFound for ids that are not UUIDs.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`, uid)
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, avatar, created_at, updated_at
		FROM accounts
		WHERE lower(email) = lower($1)
	`, email)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Avatar,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, queryError(err)
	}
	return a, nil
}

func queryError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
		return repository.ErrNotFound
	}
	return fmt.Errorf("query account: %w", err)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
