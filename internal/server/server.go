package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ggsale/internal/config"
	"ggsale/internal/database"
	"ggsale/internal/kvstore"
	custommiddleware "ggsale/internal/middleware"
	"ggsale/internal/repository"
	"ggsale/internal/service"
	"ggsale/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the external clients opened by main. DB is required by
// the postgres backend and Redis by the redis backend and the rate limiter.
type Dependencies struct {
	DB        *sql.DB
	Redis     *redis.Client
	Generator transport.DescriptionGenerator
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	deps   Dependencies
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) (*Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if deps.Generator == nil {
		return nil, errors.New("description generator is required")
	}

	backend, err := newStore(cfg, deps)
	if err != nil {
		return nil, err
	}

	store, err := kvstore.Instrument(backend, registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register store metrics: %w", err)
	}

	hasher, err := service.NewPasswordHasher(cfg.Identity.PasswordMode)
	if err != nil {
		return nil, err
	}

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger.Named("http")))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "ok",
			"backend": cfg.Store.Backend,
		}
		if deps.DB != nil {
			health["database"] = database.Health(r.Context(), deps.DB)
		}
		custommiddleware.RespondWithJSON(w, http.StatusOK, health)
	})
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	// Initialize repositories
	repoLogger := logger.Named("repository")
	categoryRepo := repository.NewCategoryRepository(store, cfg.Store.CategoriesKey, repoLogger)
	productRepo := repository.NewProductRepository(store, cfg.Store.ProductsKey, repoLogger)
	accountRepo := repository.NewAccountRepository(store, cfg.Store.UsersKey, repoLogger)

	// Initialize services
	catalogService := service.NewCatalogService(categoryRepo, productRepo, time.Now)
	reviewService := service.NewReviewService(productRepo, time.Now)
	identityService := service.NewIdentityService(accountRepo, service.PrivilegedAccount{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, hasher)

	// Initialize handlers
	categoryHandler := transport.NewCategoryHandler(catalogService, logger)
	productHandler := transport.NewProductHandler(catalogService, reviewService, logger)
	accountHandler := transport.NewAccountHandler(identityService, logger)
	descriptionHandler := transport.NewDescriptionHandler(catalogService, deps.Generator, logger)
	formatHandler := transport.NewFormatHandler()

	requireUser := custommiddleware.RequireUser(logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)

	// Register routes. The limiter runs ahead of authentication so failed
	// credential checks are counted too.
	router.Group(func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			if deps.Redis == nil {
				logger.Warn("Rate limiting enabled without a Redis client, skipping")
			} else {
				r.Use(custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
					RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
					Window:            cfg.RateLimit.Window,
					KeyPrefix:         "ggsale_rate_limit",
				}, logger))
			}
		}

		accountHandler.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.OptionalAuth(identityService, logger))

			categoryHandler.RegisterRoutes(r, requireAdmin)
			productHandler.RegisterRoutes(r, requireAdmin)
			accountHandler.RegisterRoutes(r, requireUser)
			descriptionHandler.RegisterRoutes(r, requireAdmin)
			formatHandler.RegisterRoutes(r)
		})
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.GenAI.Timeout + 10*time.Second,
		},
		config: cfg,
		logger: logger,
		deps:   deps,
	}

	return server, nil
}

func newStore(cfg *config.Config, deps Dependencies) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(cfg.Store.MemoryCapacity), nil
	case config.BackendRedis:
		if deps.Redis == nil {
			return nil, errors.New("redis backend requires a redis client")
		}
		return kvstore.NewRedisStore(deps.Redis, cfg.Store.RedisPrefix), nil
	case config.BackendPostgres:
		if deps.DB == nil {
			return nil, errors.New("postgres backend requires a database")
		}
		return kvstore.NewPostgresStore(deps.DB), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	var errs []error

	// Close database connection
	if s.deps.DB != nil {
		if err := s.deps.DB.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
			errs = append(errs, err)
		}
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
			errs = append(errs, err)
		}
	}

	s.logger.Sync()
	return errors.Join(errs...)
}
