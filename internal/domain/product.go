package domain

import "slices"

// PlaceholderImageURL is used when a product is created without any image
const PlaceholderImageURL = "https://picsum.photos/400/300"

// DefaultRating is the rating of a product that has no reviews yet
const DefaultRating = 5.0

// Product represents a digital good in the catalog.
// Images hold either URLs or embedded data URLs and are never empty.
type Product struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	OldPrice           *float64 `json:"oldPrice,omitempty"`
	Images             []string `json:"images"`
	CategoryID         string   `json:"categoryId"`
	Features           []string `json:"features"`
	SalesCount         *int     `json:"salesCount,omitempty"`
	Rating             float64  `json:"rating"`
	SystemRequirements string   `json:"systemRequirements,omitempty"`
	Reviews            []Review `json:"reviews,omitempty"`
}

// Category groups products. Deleting a category leaves products that
// reference it untouched.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// Review is immutable once created. Rating is an integer from 1 to 5.
type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Clone returns a deep copy so callers cannot mutate repository state
func (p Product) Clone() Product {
	c := p
	c.Images = slices.Clone(p.Images)
	c.Features = slices.Clone(p.Features)
	c.Reviews = slices.Clone(p.Reviews)
	if p.OldPrice != nil {
		v := *p.OldPrice
		c.OldPrice = &v
	}
	if p.SalesCount != nil {
		v := *p.SalesCount
		c.SalesCount = &v
	}
	return c
}
