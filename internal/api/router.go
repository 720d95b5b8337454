package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"

	"leet_tracker/internal/api/handler"
	"leet_tracker/internal/api/middleware"
	"leet_tracker/internal/app/service"
	"leet_tracker/internal/common/security"
)

// RouterOptions carries the request-pipeline settings taken from config.
type RouterOptions struct {
	DevUserID      string
	RequestTimeout time.Duration
}

// NewRouter expects security.InitJWT to have been called.
func NewRouter(
	authService *service.AuthService,
	problemService *service.ProblemService,
	chatService *service.ChatService,
	analysisService *service.AnalysisService,
	logger *zap.Logger,
	opts RouterOptions,
) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(opts.RequestTimeout))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		// Searches "Authorization: Bearer T" and puts the verified token in context.
		api.Use(jwtauth.Verifier(security.TokenAuth))
		api.Use(middleware.Authenticator(opts.DevUserID))
		api.Use(middleware.ProvisionUser(authService, logger))

		authHandler := handler.NewAuthHandler(authService, logger)
		api.Route("/auth", authHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(problemService, logger)
		chatHandler := handler.NewChatHandler(chatService, analysisService, logger)
		api.Route("/problems", func(problems chi.Router) {
			problemHandler.RegisterRoutes(problems)
			chatHandler.RegisterRoutes(problems)
		})
		problemHandler.RegisterStatsRoutes(api)
	})

	return r
}
