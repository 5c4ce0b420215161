package transport

import (
	"net/http"

	"ggsale/internal/middleware"

	"go.uber.org/zap"
)

// decodeRequest decodes and validates the body into dst. On failure it has
// already written the 400 response.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, logger *zap.Logger) bool {
	err := middleware.DecodeAndValidate(w, r, dst)
	if err == nil {
		return true
	}

	logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

	if middleware.IsValidationError(err) {
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return false
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
	return false
}
