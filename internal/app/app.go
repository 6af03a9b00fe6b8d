// Package app wires configuration, storage, services, and the HTTP server
// into a running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ideaboard/api/internal/adapter/postgres"
	commentrepo "github.com/ideaboard/api/internal/adapter/postgres/comment"
	idearepo "github.com/ideaboard/api/internal/adapter/postgres/idea"
	likerepo "github.com/ideaboard/api/internal/adapter/postgres/like"
	profilerepo "github.com/ideaboard/api/internal/adapter/postgres/profile"
	tokenrepo "github.com/ideaboard/api/internal/adapter/postgres/token"
	topicrepo "github.com/ideaboard/api/internal/adapter/postgres/topic"
	"github.com/ideaboard/api/internal/adapter/provider/google"
	"github.com/ideaboard/api/internal/adapter/redis/viewcache"
	jwtauth "github.com/ideaboard/api/internal/auth"
	"github.com/ideaboard/api/internal/config"
	authsvc "github.com/ideaboard/api/internal/service/auth"
	commentsvc "github.com/ideaboard/api/internal/service/comment"
	ideasvc "github.com/ideaboard/api/internal/service/idea"
	topicsvc "github.com/ideaboard/api/internal/service/topic"
	"github.com/ideaboard/api/internal/transport/middleware"
	"github.com/ideaboard/api/internal/transport/rest"
	"github.com/ideaboard/api/internal/view"
	"github.com/ideaboard/api/migrations"
)

// Run is the application entry point. It loads configuration, runs
// migrations, wires repositories and services, and serves HTTP until the
// context is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := postgres.Migrate(ctx, cfg.Database.DSN, migrations.FS); err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	var cache *viewcache.Store
	if cfg.Cache.RedisURL != "" {
		cache, err = viewcache.New(cfg.Cache.RedisURL, cfg.Cache.ViewTTL)
		if err != nil {
			return fmt.Errorf("connect view cache: %w", err)
		}
		defer cache.Close()
		logger.Info("view cache enabled", slog.Duration("ttl", cfg.Cache.ViewTTL))
	} else {
		logger.Info("view cache disabled")
	}

	profiles := profilerepo.New(pool)
	topics := topicrepo.New(pool)
	ideas := idearepo.New(pool)
	likes := likerepo.New(pool)
	comments := commentrepo.New(pool)
	tokens := tokenrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	views := &view.Repos{
		Profile: profiles,
		Idea:    ideas,
		Like:    likes,
		Comment: comments,
	}

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := google.NewVerifier(
		cfg.Auth.GoogleClientID,
		cfg.Auth.GoogleClientSecret,
		cfg.Auth.GoogleRedirectURI,
		logger,
	)

	authService := authsvc.NewService(logger, verifier, profiles, tokens, jwtManager, cfg.Auth.RefreshTokenTTL)
	topicService := topicsvc.NewService(logger, topics, views, cfg.Board)
	ideaService := ideasvc.NewService(logger, ideas, topics, likes, txManager, views, cfg.Board)
	commentService := commentsvc.NewService(logger, comments, ideas, views, cfg.Board)

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(authService, logger),
		Topics:   rest.NewTopicsHandler(topicService, cache, logger),
		Ideas:    rest.NewIdeasHandler(ideaService, cache, logger),
		Comments: rest.NewCommentsHandler(commentService, cache, logger),
		Health:   rest.NewHealthHandler(pool, cachePinger(cache), BuildVersion()),
	})

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// cachePinger keeps the health handler's pinger argument nil when the
// cache is disabled; a typed nil *Store would defeat its nil check.
func cachePinger(cache *viewcache.Store) interface{ Ping(context.Context) error } {
	if cache == nil {
		return nil
	}
	return cache
}
