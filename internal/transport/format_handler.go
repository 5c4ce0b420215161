package transport

import (
	"math"
	"net/http"
	"strconv"

	"ggsale/internal/format"
	"ggsale/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// FormattedPriceResponse is the display form of an amount
type FormattedPriceResponse struct {
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// FormatHandler exposes the display formatting helpers
type FormatHandler struct{}

// NewFormatHandler creates a new FormatHandler
func NewFormatHandler() *FormatHandler {
	return &FormatHandler{}
}

// RegisterRoutes registers the formatting routes
func (h *FormatHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/format/price", h.Price)
}

// Price formats ?amount= as rubles
func (h *FormatHandler) Price(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "amount", Message: "Must be a number"},
		})
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, FormattedPriceResponse{
		Amount:    amount,
		Formatted: format.FormatPrice(amount),
	})
}
