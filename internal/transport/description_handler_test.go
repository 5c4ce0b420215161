package transport

import (
	"net/http"
	"testing"

	"ggsale/internal/domain"
	"ggsale/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionHandler_ResolvesCategory(t *testing.T) {
	api := newTestAPI(t, 0)

	w := api.do(t, http.MethodPost, "/api/categories", CreateCategoryRequest{Name: "Games"}, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)
	category := decode[domain.Category](t, w)

	w = api.do(t, http.MethodPost, "/api/admin/descriptions", GenerateDescriptionRequest{
		ProductName: "Cyber Quest",
		CategoryID:  category.ID,
		Keywords:    "rpg",
	}, asAdmin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Generated copy", decode[GenerateDescriptionResponse](t, w).Description)
	assert.Equal(t, "Games", api.generator.gotCategory)
	assert.Equal(t, "Cyber Quest", api.generator.gotName)
	assert.Equal(t, "rpg", api.generator.gotKeywords)

	w = api.do(t, http.MethodPost, "/api/admin/descriptions", GenerateDescriptionRequest{ProductName: "X", CategoryID: "gone"}, asAdmin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FallbackCategoryName, api.generator.gotCategory)
}

func TestDescriptionHandler_RequiresAdminAndName(t *testing.T) {
	api := newTestAPI(t, 0)

	w := api.do(t, http.MethodPost, "/api/admin/descriptions", GenerateDescriptionRequest{ProductName: "X"}, anonymous)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/admin/descriptions", GenerateDescriptionRequest{}, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
