package transport

import (
	"net/http"
	"strings"
	"testing"

	"ggsale/internal/domain"
	"ggsale/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProduct(t *testing.T, api *testAPI, req CreateProductRequest) domain.Product {
	t.Helper()

	w := api.do(t, http.MethodPost, "/api/products", req, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Product](t, w)
}

func TestProductHandler_CreateGetRemove(t *testing.T) {
	api := newTestAPI(t, 0)

	product := createProduct(t, api, CreateProductRequest{
		Title:      "Cyber Quest",
		Price:      "500",
		OldPrice:   "799",
		CategoryID: "games",
		Features:   "Co-op\nRay tracing",
	})
	assert.Equal(t, []string{domain.PlaceholderImageURL}, product.Images)
	assert.Equal(t, []string{"Co-op", "Ray tracing"}, product.Features)
	assert.Equal(t, domain.DefaultRating, product.Rating)
	require.NotNil(t, product.OldPrice)
	assert.Equal(t, 799.0, *product.OldPrice)

	w := api.do(t, http.MethodGet, "/api/products/"+product.ID, nil, anonymous)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cyber Quest", decode[domain.Product](t, w).Title)

	w = api.do(t, http.MethodDelete, "/api/products/"+product.ID, nil, asAdmin)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/products/"+product.ID, nil, anonymous)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// removing again is a no-op
	w = api.do(t, http.MethodDelete, "/api/products/"+product.ID, nil, asAdmin)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProductHandler_ListByCategory(t *testing.T) {
	api := newTestAPI(t, 0)

	for _, category := range []string{"games", "keys", "games"} {
		createProduct(t, api, CreateProductRequest{Title: "P", Price: "1", CategoryID: category})
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?categoryId=all", 3},
		{"?categoryId=games", 2},
		{"?categoryId=keys", 1},
		{"?categoryId=none", 0},
	}

	for _, tt := range tests {
		w := api.do(t, http.MethodGet, "/api/products"+tt.query, nil, anonymous)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.Product](t, w), tt.want, tt.query)
	}
}

func TestProductHandler_EmptyCatalogIsEmptyArray(t *testing.T) {
	api := newTestAPI(t, 0)

	w := api.do(t, http.MethodGet, "/api/products", nil, anonymous)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProductHandler_CreateRequiresAdmin(t *testing.T) {
	api := newTestAPI(t, 0)
	req := CreateProductRequest{Title: "P", Price: "1", CategoryID: "c"}

	w := api.do(t, http.MethodPost, "/api/products", req, anonymous)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.do(t, http.MethodPost, "/api/users/register", RegisterRequest{Username: "alice", Password: "p1p1", ConfirmPassword: "p1p1"}, anonymous)
	w = api.do(t, http.MethodPost, "/api/products", req, &credentials{"alice", "p1p1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductHandler_CreateValidation(t *testing.T) {
	api := newTestAPI(t, 0)

	w := api.do(t, http.MethodPost, "/api/products", CreateProductRequest{Title: "P", Price: "abc", CategoryID: "c"}, asAdmin)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[struct {
		Error struct {
			Details struct {
				ValidationErrors []middleware.ValidationError `json:"validation_errors"`
			} `json:"details"`
		} `json:"error"`
	}](t, w)
	require.Len(t, resp.Error.Details.ValidationErrors, 1)
	assert.Equal(t, "price", resp.Error.Details.ValidationErrors[0].Field)
}

func TestProductHandler_QuotaExceeded(t *testing.T) {
	api := newTestAPI(t, 4096)

	createProduct(t, api, CreateProductRequest{Title: "P", Price: "1", CategoryID: "c"})

	w := api.do(t, http.MethodPost, "/api/products", CreateProductRequest{
		Title:          "Big",
		Price:          "1",
		CategoryID:     "c",
		UploadedImages: []string{"data:image/png;base64," + strings.Repeat("A", 8192)},
	}, asAdmin)
	require.Equal(t, http.StatusInsufficientStorage, w.Code)

	resp := decode[middleware.ErrorResponse](t, w)
	assert.Equal(t, middleware.QuotaExceededMessage, resp.Error.Message)

	w = api.do(t, http.MethodGet, "/api/products", nil, anonymous)
	assert.Len(t, decode[[]domain.Product](t, w), 1)
}

func TestProductHandler_ReviewSequence(t *testing.T) {
	api := newTestAPI(t, 0)
	product := createProduct(t, api, CreateProductRequest{Title: "P", Price: "1", CategoryID: "c"})

	for _, step := range []struct {
		rating int
		want   float64
	}{{5, 5.0}, {3, 4.0}, {4, 4.0}} {
		w := api.do(t, http.MethodPost, "/api/products/"+product.ID+"/reviews", AddReviewRequest{Rating: step.rating, Comment: "ok"}, anonymous)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, step.want, decode[domain.Product](t, w).Rating)
	}

	w := api.do(t, http.MethodGet, "/api/products/"+product.ID, nil, anonymous)
	stored := decode[domain.Product](t, w)
	require.Len(t, stored.Reviews, 3)
	assert.Equal(t, []int{4, 3, 5}, []int{stored.Reviews[0].Rating, stored.Reviews[1].Rating, stored.Reviews[2].Rating})
	assert.Equal(t, "Anonymous", stored.Reviews[0].UserName)
	assert.Equal(t, "09.03.2024", stored.Reviews[0].Date)
}

func TestProductHandler_ReviewUsesAuthenticatedName(t *testing.T) {
	api := newTestAPI(t, 0)
	product := createProduct(t, api, CreateProductRequest{Title: "P", Price: "1", CategoryID: "c"})

	w := api.do(t, http.MethodPost, "/api/products/"+product.ID+"/reviews", AddReviewRequest{Rating: 4}, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testAdminName, decode[domain.Product](t, w).Reviews[0].UserName)

	w = api.do(t, http.MethodPost, "/api/products/"+product.ID+"/reviews", AddReviewRequest{UserName: "Guest", Rating: 4}, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Guest", decode[domain.Product](t, w).Reviews[0].UserName)
}

func TestProductHandler_ReviewErrors(t *testing.T) {
	api := newTestAPI(t, 0)

	w := api.do(t, http.MethodPost, "/api/products/missing/reviews", AddReviewRequest{Rating: 5}, anonymous)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/products/missing/reviews", AddReviewRequest{Rating: 7}, anonymous)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
