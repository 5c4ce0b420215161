package transport

import (
	"net/http"

	"ggsale/internal/middleware"
	"ggsale/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload.
// bcrypt ignores input beyond 72 bytes, hence the upper bound.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,max=64"`
	Password        string `json:"password" validate:"required,min=4,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountHandler handles HTTP requests for accounts
type AccountHandler struct {
	identity service.IdentityService
	logger   *zap.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(identity service.IdentityService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		identity: identity,
		logger:   logger,
	}
}

// RegisterPublicRoutes registers the routes that take credentials in the
// request body. They must stay outside Basic authentication so stale
// credentials cannot block a fresh login.
func (h *AccountHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/api/users/register", h.Register)
	r.Post("/api/users/login", h.Login)
}

// RegisterRoutes registers the authenticated account routes
func (h *AccountHandler) RegisterRoutes(r chi.Router, requireUser func(http.Handler) http.Handler) {
	r.With(requireUser).Get("/api/users/me", h.Me)
}

// Register creates an account and signs it in
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	username := req.Username
	ok, err := h.identity.Register(r.Context(), username, req.Password)
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}
	if !ok {
		middleware.RespondWithError(w, http.StatusConflict, "username already taken")
		return
	}

	user, ok, err := h.identity.Authenticate(r.Context(), username, req.Password)
	if err != nil || !ok {
		h.logger.Error("Registered account failed to authenticate",
			zap.String("username", username),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.logger.Info("User registered successfully", zap.String("username", user.Username))
	middleware.RespondWithJSON(w, http.StatusCreated, user)
}

// Login checks credentials and returns the user they belong to
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req, h.logger) {
		return
	}

	user, ok, err := h.identity.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondWithServiceError(w, err, h.logger)
		return
	}
	if !ok {
		h.logger.Debug("Login failed", zap.String("username", req.Username))
		middleware.RespondWithError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		return
	}

	h.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin),
	)
	middleware.RespondWithJSON(w, http.StatusOK, user)
}

// Me returns the authenticated user
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	middleware.RespondWithJSON(w, http.StatusOK, user)
}
