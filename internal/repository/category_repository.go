package repository

import (
	"context"

	"ggsale/internal/domain"
	"ggsale/internal/kvstore"

	"go.uber.org/zap"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Add(ctx context.Context, category domain.Category) error
	Remove(ctx context.Context, id string) error
}

type categoryRepository struct {
	categories *collection[domain.Category]
}

// NewCategoryRepository creates a new instance of CategoryRepository stored under key
func NewCategoryRepository(store kvstore.Store, key string, logger *zap.Logger) CategoryRepository {
	return &categoryRepository{
		categories: newCollection[domain.Category](store, key, logger),
	}
}

// List returns all categories in insertion order
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.categories.load(ctx)
}

// Add appends a category. Ids are not checked for uniqueness.
func (r *categoryRepository) Add(ctx context.Context, category domain.Category) error {
	return r.categories.update(ctx, func(categories []domain.Category) ([]domain.Category, error) {
		return append(categories, category), nil
	})
}

// Remove drops every category with the given id. Products are not touched.
func (r *categoryRepository) Remove(ctx context.Context, id string) error {
	return r.categories.update(ctx, func(categories []domain.Category) ([]domain.Category, error) {
		kept := categories[:0]
		for _, c := range categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		return kept, nil
	})
}
