package service

import (
	"context"
	"errors"
	"fmt"

	"ggsale/internal/domain"
	"ggsale/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// PrivilegedAccount is the single built-in administrator
type PrivilegedAccount struct {
	Username string
	Password string
}

// IdentityService defines the interface for credential checks and registration.
// There are no sessions: every call is a fresh credential check.
type IdentityService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, bool, error)
	Register(ctx context.Context, username, password string) (bool, error)
}

type identityService struct {
	accountRepo repository.AccountRepository
	admin       PrivilegedAccount
	passwords   PasswordHasher
}

// NewIdentityService creates a new instance of IdentityService
func NewIdentityService(
	accountRepo repository.AccountRepository,
	admin PrivilegedAccount,
	passwords PasswordHasher,
) IdentityService {
	return &identityService{
		accountRepo: accountRepo,
		admin:       admin,
		passwords:   passwords,
	}
}

// Authenticate checks the privileged account first, then registered accounts.
// Registered accounts carrying the privileged username never match.
func (s *identityService) Authenticate(ctx context.Context, username, password string) (*domain.User, bool, error) {
	if username == s.admin.Username && password == s.admin.Password {
		return &domain.User{Username: username, IsAdmin: true}, true, nil
	}

	if username == s.admin.Username {
		return nil, false, nil
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load accounts: %w", err)
	}

	for _, a := range accounts {
		if a.Username == username && s.passwords.Verify(a.Password, password) {
			return &domain.User{Username: a.Username, IsAdmin: false}, true, nil
		}
	}

	return nil, false, nil
}

// Register appends a new account. It returns false when the username is the
// privileged one or already registered.
func (s *identityService) Register(ctx context.Context, username, password string) (bool, error) {
	if username == s.admin.Username {
		return false, nil
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Username == username {
			return false, nil
		}
	}

	stored, err := s.passwords.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.accountRepo.Create(ctx, domain.Account{Username: username, Password: stored})
	if err != nil {
		if errors.Is(err, repository.ErrAccountAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to register account: %w", err)
	}

	return true, nil
}
