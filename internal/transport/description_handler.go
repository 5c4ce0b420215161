package transport

import (
	"context"
	"net/http"

	"ggsale/internal/middleware"
	"ggsale/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DescriptionGenerator writes marketing copy for a product
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, productName, categoryName, keywords string) string
}

// GenerateDescriptionRequest represents the description request payload
type GenerateDescriptionRequest struct {
	ProductName string `json:"productName" validate:"required,max=200"`
	CategoryID  string `json:"categoryId"`
	Keywords    string `json:"keywords" validate:"max=1000"`
}

// GenerateDescriptionResponse carries the generated text or a fallback message
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

// DescriptionHandler handles AI description requests from the admin form
type DescriptionHandler struct {
	catalog   service.CatalogService
	generator DescriptionGenerator
	logger    *zap.Logger
}

// NewDescriptionHandler creates a new DescriptionHandler
func NewDescriptionHandler(catalog service.CatalogService, generator DescriptionGenerator, logger *zap.Logger) *DescriptionHandler {
	return &DescriptionHandler{
		catalog:   catalog,
		generator: generator,
		logger:    logger,
	}
}

// RegisterRoutes registers the description route
func (h *DescriptionHandler) RegisterRoutes(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.With(requireAdmin).Post("/api/admin/descriptions", h.Generate)
}

// Generate resolves the category name and asks the generator for a description
func (h *DescriptionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateDescriptionRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	categoryName, err := h.catalog.FindCategoryName(r.Context(), req.CategoryID)
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}

	description := h.generator.GenerateDescription(r.Context(), req.ProductName, categoryName, req.Keywords)
	middleware.RespondWithJSON(w, http.StatusOK, GenerateDescriptionResponse{Description: description})
}
