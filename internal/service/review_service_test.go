package service

import (
	"context"
	"errors"
	"testing"

	"ggsale/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 5.0},
		{"single", []int{3}, 3.0},
		{"exact half", []int{1, 2}, 1.5},
		{"rounds down", []int{5, 4, 4}, 4.3},
		{"rounds up", []int{5, 5, 4}, 4.7},
		{"half up at second decimal", []int{5, 5, 5, 5, 5, 5, 5, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, 4.4},
		{"sequence step", []int{4, 3, 5}, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]domain.Review, len(tt.ratings))
			for i, r := range tt.ratings {
				reviews[i] = domain.Review{Rating: r}
			}
			if got := AverageRating(reviews); got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

// Property: The average always lies within the rating range
func TestProperty_AverageRatingWithinBounds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("1 <= average <= 5", prop.ForAll(
		func(ratings []int) bool {
			if len(ratings) == 0 {
				return true
			}
			reviews := make([]domain.Review, len(ratings))
			for i, r := range ratings {
				reviews[i] = domain.Review{Rating: r}
			}
			avg := AverageRating(reviews)
			if avg < MinReviewRating || avg > MaxReviewRating {
				t.Logf("FAIL: average %v out of range for %v", avg, ratings)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(MinReviewRating, MaxReviewRating)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestReviewService_AddReviewSequence(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(0)
	if err := repos.products.Add(ctx, domain.Product{ID: "p1", Title: "Game", Rating: domain.DefaultRating}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	service := NewReviewService(repos.products, fixedClock)

	steps := []struct {
		rating     int
		wantRating float64
	}{
		{5, 5.0},
		{3, 4.0},
		{4, 4.0},
	}

	for _, step := range steps {
		review, err := service.NewReview("alice", step.rating, "ok", "")
		if err != nil {
			t.Fatalf("NewReview(%d) error = %v", step.rating, err)
		}
		product, ok, err := service.AddReview(ctx, "p1", review)
		if err != nil || !ok {
			t.Fatalf("AddReview(%d) = %v, %v", step.rating, ok, err)
		}
		if product.Rating != step.wantRating {
			t.Errorf("after %d rating = %v, want %v", step.rating, product.Rating, step.wantRating)
		}
	}

	stored, err := repos.products.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	var order []int
	for _, r := range stored.Reviews {
		order = append(order, r.Rating)
	}
	if len(order) != 3 || order[0] != 4 || order[1] != 3 || order[2] != 5 {
		t.Errorf("stored review order = %v, want [4 3 5]", order)
	}
	if stored.Rating != 4.0 {
		t.Errorf("stored rating = %v, want 4.0", stored.Rating)
	}
}

func TestReviewService_NewReview(t *testing.T) {
	service := NewReviewService(newTestRepositories(0).products, fixedClock)

	review, err := service.NewReview("  ", 4, "nice", "data:image/png;base64,AAA")
	if err != nil {
		t.Fatalf("NewReview() error = %v", err)
	}
	if review.UserName != AnonymousUserName {
		t.Errorf("UserName = %q, want %q", review.UserName, AnonymousUserName)
	}
	if review.Date != "09.03.2024" {
		t.Errorf("Date = %q, want 09.03.2024", review.Date)
	}
	if review.ID == "" {
		t.Error("review id is empty")
	}

	other, _ := service.NewReview("bob", 4, "", "")
	if other.ID == review.ID {
		t.Error("review ids collide")
	}

	for _, rating := range []int{0, 6, -1} {
		_, err := service.NewReview("bob", rating, "", "")
		var vErr *ValidationError
		if !errors.As(err, &vErr) || vErr.Field != "rating" {
			t.Errorf("NewReview(rating=%d) error = %v, want rating validation error", rating, err)
		}
	}
}

func TestReviewService_AddReviewUnknownProduct(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepositories(0)
	if err := repos.products.Add(ctx, domain.Product{ID: "p1", Rating: domain.DefaultRating}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	before, _, _ := repos.store.Get(ctx, "ggsale_products")

	service := NewReviewService(repos.products, fixedClock)
	review, _ := service.NewReview("alice", 5, "", "")

	product, ok, err := service.AddReview(ctx, "missing", review)
	if err != nil || ok || product != nil {
		t.Fatalf("AddReview(missing) = %v, %v, %v; want nil, false, nil", product, ok, err)
	}

	after, _, _ := repos.store.Get(ctx, "ggsale_products")
	if before != after {
		t.Error("AddReview for an unknown product changed the stored collection")
	}
}

func TestReviewService_AddReviewRejectsInvalidRating(t *testing.T) {
	service := NewReviewService(newTestRepositories(0).products, fixedClock)

	_, _, err := service.AddReview(context.Background(), "p1", domain.Review{Rating: 9})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("AddReview(rating=9) error = %v, want ValidationError", err)
	}
}
