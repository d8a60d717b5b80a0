package application

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	repo "github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

var (
	ErrAlreadyExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidPassword    = errors.New("password must be at least 6 characters and at most 72 bytes long")
	ErrInternal           = errors.New("internal error")
)

var (
	registrations  = expvar.NewInt("accounts_registered")
	sessions       = expvar.NewInt("sessions_issued")
	rejectedLogins = expvar.NewInt("sessions_rejected")
)

// PasswordHasher is satisfied by helpers.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

type rehashChecker interface {
	NeedsRehash(hashed string) bool
}

// TokenIssuer is satisfied by helpers.JWTManager.
type TokenIssuer interface {
	Issue(accountID string) (string, time.Time, error)
}

// AccountCache stores public account views; implementations may be no-ops.
type AccountCache interface {
	Get(ctx context.Context, id string) (*entity.PublicAccount, bool, error)
	Set(ctx context.Context, a entity.PublicAccount) error
}

// AccountIndex makes public accounts searchable.
type AccountIndex interface {
	Index(ctx context.Context, a entity.PublicAccount) error
	Search(ctx context.Context, q string, size int) ([]entity.PublicAccount, error)
}

// Notifier is told about new accounts (welcome mail).
type Notifier interface {
	AccountRegistered(ctx context.Context, a entity.PublicAccount) error
}

type Service struct {
	Repo     repo.AccountRepository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Avatar   func(email string) string
	Cache    AccountCache
	Index    AccountIndex
	Notifier Notifier
	Logger   *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService wires the account service. cache, index and notifier may be nil.
func NewService(accounts repo.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, avatar func(string) string, cache AccountCache, index AccountIndex, notifier Notifier, logger *logrus.Logger) *Service {
	return &Service{
		Repo:     accounts,
		Hasher:   hasher,
		Tokens:   tokens,
		Avatar:   avatar,
		Cache:    cache,
		Index:    index,
		Notifier: notifier,
		Logger:   logger,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	AccountID string    `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NormalizeEmail trims and lower-cases an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

// Register creates an account and returns a token for it.
// An existing email fails with ErrAlreadyExists and creates nothing.
// A password bcrypt cannot hash fails with ErrInvalidPassword.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := NormalizeEmail(in.Email)

	existing, err := s.Repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrAlreadyExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, internal("find account by email", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		return nil, ErrInvalidPassword
	}
	if err != nil {
		return nil, internal("hash password", err)
	}

	a := &entity.Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if s.Avatar != nil {
		a.Avatar = s.Avatar(email)
	}
	if err := s.Repo.Insert(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrAlreadyExists
		}
		return nil, internal("insert account", err)
	}

	res, err := s.issue(a.ID)
	if err != nil {
		return nil, err
	}
	registrations.Add(1)
	s.afterRegister(ctx, a.Public())
	return res, nil
}

// Authenticate checks email and password and returns a fresh token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	a, err := s.Repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, internal("find account by email", err)
		}
		// keep the miss path about as slow as a real comparison
		s.Hasher.Verify(password, s.dummy())
		rejectedLogins.Add(1)
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, a.PasswordHash) {
		rejectedLogins.Add(1)
		return nil, ErrInvalidCredentials
	}
	if r, ok := s.Hasher.(rehashChecker); ok && r.NeedsRehash(a.PasswordHash) && s.Logger != nil {
		s.Logger.WithField("account_id", a.ID).Info("password hash uses an outdated cost")
	}
	res, err := s.issue(a.ID)
	if err != nil {
		return nil, err
	}
	sessions.Add(1)
	return res, nil
}

// Current returns the public view of the account a token resolved to.
func (s *Service) Current(ctx context.Context, accountID string) (*entity.PublicAccount, error) {
	if s.Cache != nil {
		if p, ok, err := s.Cache.Get(ctx, accountID); err == nil && ok {
			return p, nil
		} else if err != nil {
			s.warn(err, "account cache read failed", logrus.Fields{"account_id": accountID})
		}
	}

	a, err := s.Repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, internal("find account by id", err)
	}
	p := a.Public()
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			s.warn(err, "account cache write failed", logrus.Fields{"account_id": accountID})
		}
	}
	return &p, nil
}

// Search looks accounts up by name or email in the search index.
func (s *Service) Search(ctx context.Context, q string, size int) ([]entity.PublicAccount, error) {
	if s.Index == nil {
		return []entity.PublicAccount{}, nil
	}
	hits, err := s.Index.Search(ctx, strings.TrimSpace(q), size)
	if err != nil {
		return nil, internal("search accounts", err)
	}
	return hits, nil
}

func (s *Service) issue(accountID string) (*AuthResult, error) {
	tok, exp, err := s.Tokens.Issue(accountID)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return &AuthResult{AccountID: accountID, Token: tok, ExpiresAt: exp}, nil
}

// afterRegister runs best-effort side effects; failures are only logged.
func (s *Service) afterRegister(ctx context.Context, p entity.PublicAccount) {
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, p); err != nil {
			s.warn(err, "account cache write failed", logrus.Fields{"account_id": p.ID})
		}
	}
	if s.Index != nil {
		if err := s.Index.Index(ctx, p); err != nil {
			s.warn(err, "account index failed", logrus.Fields{"account_id": p.ID})
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.AccountRegistered(ctx, p); err != nil {
			s.warn(err, "welcome mail enqueue failed", logrus.Fields{"account_id": p.ID})
		}
	}
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.Hasher.Hash("not-a-real-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *Service) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}
