package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"ggsale/internal/domain"
	"ggsale/internal/repository"
)

// AllCategories selects every product in ListProductsByCategory
const AllCategories = "all"

// FallbackCategoryName is used when a category id does not resolve
const FallbackCategoryName = "Digital Good"

// ProductInput is the raw product form as submitted by an administrator.
// ImageURLs and Features are newline-delimited.
type ProductInput struct {
	Title              string
	Price              string
	OldPrice           string
	CategoryID         string
	ImageURLs          string
	UploadedImages     []string
	Description        string
	Features           string
	SystemRequirements string
}

// CatalogService defines the interface for catalog business logic
type CatalogService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	RemoveCategory(ctx context.Context, id string) error
	FindCategoryName(ctx context.Context, id string) (string, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, bool, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	RemoveProduct(ctx context.Context, id string) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewCatalogService creates a new instance of CatalogService.
// now defaults to time.Now and drives generated ids.
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
) CatalogService {
	if now == nil {
		now = time.Now
	}
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		now:          now,
	}
}

// ListCategories returns all categories in insertion order
func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category named name with a timestamp id
func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "category name is required")
	}

	category := domain.Category{
		ID:   timestampID(s.now()),
		Name: name,
	}

	if err := s.categoryRepo.Add(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// RemoveCategory deletes the category; products keep their categoryId
func (s *catalogService) RemoveCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove category: %w", err)
	}
	return nil
}

// FindCategoryName resolves a category id to its name, or FallbackCategoryName
func (s *catalogService) FindCategoryName(ctx context.Context, id string) (string, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range categories {
		if c.ID == id {
			return c.Name, nil
		}
	}

	return FallbackCategoryName, nil
}

// ListProducts returns all products in insertion order
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListProductsByCategory filters products by categoryId, keeping stored order.
// An empty id or AllCategories returns everything.
func (s *catalogService) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if categoryID == "" || categoryID == AllCategories {
		return products, nil
	}

	filtered := []domain.Product{}
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProduct returns the first product with the given id; ok is false when absent
func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, bool, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get product: %w", err)
	}
	return product, true, nil
}

// CreateProduct validates raw form input, builds the product and appends it
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	product, err := NewProduct(input, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Add(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// RemoveProduct deletes every product with the given id
func (s *catalogService) RemoveProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}
	return nil
}

// NewProduct builds a product from raw form input created at now
func NewProduct(input ProductInput, now time.Time) (domain.Product, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Product{}, newValidationError("title", "title is required")
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return domain.Product{}, newValidationError("price", err.Error())
	}

	if strings.TrimSpace(input.CategoryID) == "" {
		return domain.Product{}, newValidationError("categoryId", "category is required")
	}

	var oldPrice *float64
	if strings.TrimSpace(input.OldPrice) != "" {
		v, err := parsePrice(input.OldPrice)
		if err != nil {
			return domain.Product{}, newValidationError("oldPrice", err.Error())
		}
		oldPrice = &v
	}

	images := splitLines(input.ImageURLs)
	for _, img := range input.UploadedImages {
		if img != "" {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		images = []string{domain.PlaceholderImageURL}
	}

	salesCount := 0

	return domain.Product{
		ID:                 timestampID(now),
		Title:              input.Title,
		Description:        input.Description,
		Price:              price,
		OldPrice:           oldPrice,
		Images:             images,
		CategoryID:         input.CategoryID,
		Features:           splitLines(input.Features),
		SalesCount:         &salesCount,
		Rating:             domain.DefaultRating,
		SystemRequirements: input.SystemRequirements,
	}, nil
}

// parsePrice accepts any finite number; negative amounts become zero
func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("price is required")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("price must be a number")
	}

	return math.Max(v, 0), nil
}

// splitLines returns the trimmed, non-empty lines of text
func splitLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func timestampID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
