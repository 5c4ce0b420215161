package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ggsale/internal/config"
	"ggsale/internal/kvstore"
	"ggsale/internal/middleware"
	"ggsale/internal/repository"
	"ggsale/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAdminName     = "Sherni134356"
	testAdminPassword = "Sherni134356"
)

type fakeGenerator struct {
	gotName, gotCategory, gotKeywords string
}

func (f *fakeGenerator) GenerateDescription(ctx context.Context, productName, categoryName, keywords string) string {
	f.gotName, f.gotCategory, f.gotKeywords = productName, categoryName, keywords
	return "Generated copy"
}

type testAPI struct {
	router    http.Handler
	store     *kvstore.MemoryStore
	catalog   service.CatalogService
	generator *fakeGenerator
}

func newTestAPI(t *testing.T, capacity int) *testAPI {
	t.Helper()

	logger := zap.NewNop()
	store := kvstore.NewMemoryStore(capacity)
	now := func() time.Time { return time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC) }

	categories := repository.NewCategoryRepository(store, "ggsale_categories", logger)
	products := repository.NewProductRepository(store, "ggsale_products", logger)
	accounts := repository.NewAccountRepository(store, "ggsale_users", logger)

	hasher, err := service.NewPasswordHasher(config.PasswordModePlain)
	require.NoError(t, err)

	catalog := service.NewCatalogService(categories, products, now)
	reviews := service.NewReviewService(products, now)
	identity := service.NewIdentityService(accounts, service.PrivilegedAccount{
		Username: testAdminName,
		Password: testAdminPassword,
	}, hasher)
	generator := &fakeGenerator{}

	requireUser := middleware.RequireUser(logger)
	requireAdmin := middleware.RequireAdmin(logger)
	accountHandler := NewAccountHandler(identity, logger)

	r := chi.NewRouter()
	accountHandler.RegisterPublicRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(identity, logger))

		NewCategoryHandler(catalog, logger).RegisterRoutes(r, requireAdmin)
		NewProductHandler(catalog, reviews, logger).RegisterRoutes(r, requireAdmin)
		accountHandler.RegisterRoutes(r, requireUser)
		NewDescriptionHandler(catalog, generator, logger).RegisterRoutes(r, requireAdmin)
		NewFormatHandler().RegisterRoutes(r)
	})

	return &testAPI{router: r, store: store, catalog: catalog, generator: generator}
}

type credentials struct {
	username, password string
}

var (
	asAdmin   = &credentials{testAdminName, testAdminPassword}
	anonymous *credentials
)

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, creds *credentials) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if creds != nil {
		req.SetBasicAuth(creds.username, creds.password)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}
