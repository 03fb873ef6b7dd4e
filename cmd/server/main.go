package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirpyerre/blog-site/internal/api"
	"github.com/sirpyerre/blog-site/internal/api/handler"
	"github.com/sirpyerre/blog-site/internal/api/session"
	"github.com/sirpyerre/blog-site/internal/core/service"
	"github.com/sirpyerre/blog-site/internal/infrastructure/config"
	"github.com/sirpyerre/blog-site/internal/infrastructure/db/mongo"
	"github.com/sirpyerre/blog-site/internal/infrastructure/db/redis"
	"github.com/sirpyerre/blog-site/internal/infrastructure/security"
	"github.com/sirpyerre/blog-site/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "blog",
	})

	if cfg.SecretKey == "YOUR_SECRET_KEY" {
		log.Warn().Msg("SECRET_KEY is the built-in default; session cookies can be forged")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	store := mongo.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}
	log.Info().Str("database", db.Name()).Msg("mongodb connected")

	readiness := map[string]handler.Pinger{"mongodb": store}

	// --- Redis (optional) ---
	var guard service.SubmissionGuard
	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, duplicate post guard disabled")
		} else {
			defer rdb.Close()
			g := redis.NewSubmissionGuard(rdb)
			guard = g
			readiness["redis"] = g
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Users:      mongo.NewUserRepository(store),
		Blogs:      mongo.NewBlogRepository(store),
		Hasher:     security.NewBcryptHasher(cfg.BcryptCost),
		Guard:      guard,
		Sessions:   session.NewManager(session.Options{Secret: cfg.SecretKey, TTL: cfg.SessionTTL, Secure: !cfg.IsDevelopment()}),
		FlashStore: session.NewFlashStore(cfg.SecretKey, !cfg.IsDevelopment()),
		Readiness:  readiness,
		Log:        logger.Component("http"),
		Metrics:    true,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
