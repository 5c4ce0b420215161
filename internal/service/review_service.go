package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ggsale/internal/domain"
	"ggsale/internal/repository"

	"github.com/google/uuid"
)

const (
	// ReviewDateLayout is the display format of Review.Date
	ReviewDateLayout = "02.01.2006"

	// AnonymousUserName replaces an empty reviewer name
	AnonymousUserName = "Anonymous"

	MinReviewRating = 1
	MaxReviewRating = 5
)

// ReviewService defines the interface for review aggregation
type ReviewService interface {
	NewReview(userName string, rating int, comment, imageURL string) (domain.Review, error)
	AddReview(ctx context.Context, productID string, review domain.Review) (*domain.Product, bool, error)
}

type reviewService struct {
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(productRepo repository.ProductRepository, now func() time.Time) ReviewService {
	if now == nil {
		now = time.Now
	}
	return &reviewService{
		productRepo: productRepo,
		now:         now,
	}
}

// NewReview builds a review dated now
func (s *reviewService) NewReview(userName string, rating int, comment, imageURL string) (domain.Review, error) {
	if err := validateRating(rating); err != nil {
		return domain.Review{}, err
	}

	userName = strings.TrimSpace(userName)
	if userName == "" {
		userName = AnonymousUserName
	}

	return domain.Review{
		ID:       uuid.NewString(),
		UserName: userName,
		Rating:   rating,
		Comment:  comment,
		Date:     s.now().Format(ReviewDateLayout),
		ImageURL: imageURL,
	}, nil
}

// AddReview prepends review to the product's reviews and recomputes its rating.
// ok is false when no product has the given id; nothing is written then.
func (s *reviewService) AddReview(ctx context.Context, productID string, review domain.Review) (*domain.Product, bool, error) {
	if err := validateRating(review.Rating); err != nil {
		return nil, false, err
	}

	product, err := s.productRepo.Modify(ctx, productID, func(p *domain.Product) error {
		reviews := make([]domain.Review, 0, len(p.Reviews)+1)
		reviews = append(reviews, review)
		reviews = append(reviews, p.Reviews...)

		p.Reviews = reviews
		p.Rating = AverageRating(reviews)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to add review: %w", err)
	}

	return product, true, nil
}

// AverageRating is the mean review rating rounded half-up to one decimal.
// It is computed on integers so that e.g. 4.35 rounds to 4.4.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return domain.DefaultRating
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	n := len(reviews)
	tenths := (20*sum + n) / (2 * n)
	return float64(tenths) / 10
}

func validateRating(rating int) error {
	if rating < MinReviewRating || rating > MaxReviewRating {
		return newValidationError("rating", fmt.Sprintf("rating must be between %d and %d", MinReviewRating, MaxReviewRating))
	}
	return nil
}
