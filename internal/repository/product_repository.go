package repository

import (
	"context"
	"errors"

	"ggsale/internal/domain"
	"ggsale/internal/kvstore"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access.
// Lookups by id return the first listed match.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Add(ctx context.Context, product domain.Product) error
	Remove(ctx context.Context, id string) error
	Modify(ctx context.Context, id string, fn func(product *domain.Product) error) (*domain.Product, error)
}

type productRepository struct {
	products *collection[domain.Product]
}

// NewProductRepository creates a new instance of ProductRepository stored under key
func NewProductRepository(store kvstore.Store, key string, logger *zap.Logger) ProductRepository {
	return &productRepository{
		products: newCollection[domain.Product](store, key, logger),
	}
}

// List returns all products in insertion order
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.products.load(ctx)
}

// FindByID returns the first product with the given id
func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	products, err := r.products.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, ErrProductNotFound
}

// Add appends a product and persists the whole sequence
func (r *productRepository) Add(ctx context.Context, product domain.Product) error {
	return r.products.update(ctx, func(products []domain.Product) ([]domain.Product, error) {
		return append(products, product), nil
	})
}

// Remove drops every product with the given id; a missing id is a no-op
func (r *productRepository) Remove(ctx context.Context, id string) error {
	return r.products.update(ctx, func(products []domain.Product) ([]domain.Product, error) {
		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		return kept, nil
	})
}

// Modify applies fn to the first product with the given id and persists the
// whole sequence. Nothing is written if the product is missing or fn fails.
func (r *productRepository) Modify(ctx context.Context, id string, fn func(product *domain.Product) error) (*domain.Product, error) {
	var updated *domain.Product

	err := r.products.update(ctx, func(products []domain.Product) ([]domain.Product, error) {
		for i := range products {
			if products[i].ID != id {
				continue
			}
			if err := fn(&products[i]); err != nil {
				return nil, err
			}
			p := products[i].Clone()
			updated = &p
			return products, nil
		}
		return nil, ErrProductNotFound
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
