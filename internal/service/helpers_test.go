package service

import (
	"time"

	"ggsale/internal/kvstore"
	"ggsale/internal/repository"

	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type testRepositories struct {
	store      *kvstore.MemoryStore
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func newTestRepositories(capacity int) testRepositories {
	store := kvstore.NewMemoryStore(capacity)
	return testRepositories{
		store:      store,
		categories: repository.NewCategoryRepository(store, "ggsale_categories", zap.NewNop()),
		products:   repository.NewProductRepository(store, "ggsale_products", zap.NewNop()),
	}
}
