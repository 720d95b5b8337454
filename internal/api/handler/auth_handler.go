package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"leet_tracker/internal/api/middleware"
	"leet_tracker/internal/app/service"
	"leet_tracker/internal/common"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user", h.currentUser) // GET /api/auth/user
}

func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), identity)
	if err != nil {
		common.RespondWithServiceError(w, r, h.logger, err, "Failed to fetch user")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
