package transport

import (
	"net/http"

	"ggsale/internal/middleware"
	"ggsale/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductRequest is the admin product form. Prices are sent as typed
// into the form; imageUrls and features are newline-delimited.
type CreateProductRequest struct {
	Title              string   `json:"title"`
	Price              string   `json:"price"`
	OldPrice           string   `json:"oldPrice"`
	CategoryID         string   `json:"categoryId"`
	ImageURLs          string   `json:"imageUrls"`
	UploadedImages     []string `json:"uploadedImages"`
	Description        string   `json:"description"`
	Features           string   `json:"features"`
	SystemRequirements string   `json:"systemRequirements"`
}

// AddReviewRequest represents the review form payload
type AddReviewRequest struct {
	UserName string `json:"userName" validate:"max=100"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment"`
	ImageURL string `json:"imageUrl"`
}

// ProductHandler handles HTTP requests for products and their reviews
type ProductHandler struct {
	catalog service.CatalogService
	reviews service.ReviewService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, reviews service.ReviewService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		reviews: reviews,
		logger:  logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/reviews", h.AddReview)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.Create)
			r.Delete("/{id}", h.Remove)
		})
	})
}

// List returns products, optionally filtered by ?categoryId=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProductsByCategory(r.Context(), r.URL.Query().Get("categoryId"))
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, ok, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create adds a product from the admin form
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.ProductInput{
		Title:              req.Title,
		Price:              req.Price,
		OldPrice:           req.OldPrice,
		CategoryID:         req.CategoryID,
		ImageURLs:          req.ImageURLs,
		UploadedImages:     req.UploadedImages,
		Description:        req.Description,
		Features:           req.Features,
		SystemRequirements: req.SystemRequirements,
	})
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("category_id", product.CategoryID),
		zap.Int("images", len(product.Images)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Remove deletes a product; missing ids are not an error
func (h *ProductHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.RemoveProduct(r.Context(), id); err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("Product removed", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// AddReview attaches a review and returns the updated product.
// An empty userName falls back to the authenticated user.
func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	var req AddReviewRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	userName := req.UserName
	if user, ok := middleware.GetUser(r.Context()); ok && userName == "" {
		userName = user.Username
	}

	review, err := h.reviews.NewReview(userName, req.Rating, req.Comment, req.ImageURL)
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}

	productID := chi.URLParam(r, "id")
	product, ok, err := h.reviews.AddReview(r.Context(), productID, review)
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.logger.Info("Review added",
		zap.String("product_id", productID),
		zap.Int("rating", review.Rating),
		zap.Float64("product_rating", product.Rating),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}
