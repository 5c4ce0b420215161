package repository

import (
	"context"
	"errors"

	"ggsale/internal/domain"
	"ggsale/internal/kvstore"

	"go.uber.org/zap"
)

var (
	ErrAccountAlreadyExists = errors.New("account with this username already exists")
)

// AccountRepository defines the interface for registered account data access
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, account domain.Account) error
}

type accountRepository struct {
	accounts *collection[domain.Account]
}

// NewAccountRepository creates a new instance of AccountRepository stored under key
func NewAccountRepository(store kvstore.Store, key string, logger *zap.Logger) AccountRepository {
	return &accountRepository{
		accounts: newCollection[domain.Account](store, key, logger),
	}
}

// List returns all registered accounts in registration order
func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	return r.accounts.load(ctx)
}

// Create appends the account unless its username (case-sensitive) is taken
func (r *accountRepository) Create(ctx context.Context, account domain.Account) error {
	return r.accounts.update(ctx, func(accounts []domain.Account) ([]domain.Account, error) {
		for _, a := range accounts {
			if a.Username == account.Username {
				return nil, ErrAccountAlreadyExists
			}
		}
		return append(accounts, account), nil
	})
}
