package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/insightloop/rules-backend/config"
	"github.com/insightloop/rules-backend/internal/bootstrap"
	rulecache "github.com/insightloop/rules-backend/internal/rules/cache"
	cronjob "github.com/insightloop/rules-backend/internal/rules/cron"
	"github.com/insightloop/rules-backend/internal/rules/repository"
	"github.com/insightloop/rules-backend/internal/rules/templates"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	repo := repository.NewRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if err := templates.Seed(ctx, repo); err != nil {
		log.Fatalf("templates: %v", err)
	}

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// The service works without the cache, just slower.
		log.Printf("[warn] operation=redis_connect error=%v (catalog cache disabled)", err)
		redisClient = nil
	}

	var catalogCache *rulecache.CatalogCache
	if redisClient != nil {
		catalogCache = rulecache.NewCatalogCache(redisClient, cfg.Rules.CatalogCacheTTL)

		scheduler := cronjob.NewScheduler(catalogCache, cfg.Rules.TemplateRefreshSpec)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:        "custom-rules",
		Version:            cfg.App.Version,
		DB:                 pool,
		Redis:              redisClient,
		CatalogCache:       catalogCache,
		WriteRatePerSecond: cfg.Rules.WriteRatePerSecond,
		WriteRateBurst:     cfg.Rules.WriteRateBurst,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] operation=shutdown error=%v", err)
	}
}
