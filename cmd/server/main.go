package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leet_tracker/internal/api"
	"leet_tracker/internal/app/service"
	"leet_tracker/internal/common/security"
	"leet_tracker/internal/domain/repository"
	"leet_tracker/internal/platform/cache"
	"leet_tracker/internal/platform/config"
	"leet_tracker/internal/platform/database"
	"leet_tracker/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
	log.Info("Server stopped gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey)
	if cfg.AuthDevUserID != "" {
		log.Warn("Requests without a token run as the development user", zap.String("user_id", cfg.AuthDevUserID))
	}

	// 3. Initialize Database
	dialect, ok := repository.DialectFor(cfg.DBDriver)
	if !ok {
		return errors.New("unsupported DB_DRIVER " + cfg.DBDriver)
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Database connected", zap.String("driver", cfg.DBDriver))

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
			return err
		}
		log.Info("Schema migrated")
	}

	// 4. Initialize Redis (optional)
	var analysisCache cache.AnalysisCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.AnalysisCacheTTL, log)
		if err != nil {
			return err
		}
		analysisCache = redisCache
	}
	defer analysisCache.Close()

	// 5. Initialize Repositories
	userRepo := repository.NewUserRepository(db, dialect)
	problemRepo := repository.NewProblemRepository(db, dialect)
	chatRepo := repository.NewChatRepository(db, dialect)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	problemService := service.NewProblemService(problemRepo, cfg.DefaultPageLimit, cfg.MaxPageLimit)
	chatService := service.NewChatService(chatRepo, problemRepo, log)
	analysisService := service.NewAnalysisService(problemRepo, analysisCache, log)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, problemService, chatService, analysisService, log, api.RouterOptions{
		DevUserID:      cfg.AuthDevUserID,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Serve until a signal arrives, then shut down gracefully
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("port", cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
