package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biowearth/internal/config"
	"biowearth/internal/infra"
	"biowearth/internal/middleware"
	"biowearth/internal/repository"
	"biowearth/internal/router"
	"biowearth/internal/service"
	"biowearth/internal/store"
	"biowearth/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Biowearth OS API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Infrastructure ───────────────────────────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
	}

	backend, err := infra.OpenBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open document store")
	}

	var broadcaster store.Broadcaster = store.NewLocalBroadcaster()
	if rdb != nil {
		broadcaster, err = store.NewRedisBroadcaster(ctx, rdb)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to subscribe to change feed")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	feed := store.NewFeed(backend, broadcaster, store.WithWriteObserver(metrics.ObserveWrite))
	defer feed.Close()
	writer := infra.NewGuardedAdapter(feed, infra.NewCircuitBreaker(infra.DefaultCBConfig()))

	// ── Repository and seeding ───────────────────────────────────────────────
	repo := repository.New(feed)
	if err := repo.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to subscribe collections")
	}
	defer repo.Stop()

	boot := service.NewBootstrapper(writer, repo)
	if err := boot.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed defaults")
	}
	boot.Watch(repo)

	// ── Export workers ───────────────────────────────────────────────────────
	var (
		queue    worker.Queue       = worker.NewMemoryQueue()
		statuses worker.StatusStore = worker.NewMemoryStatusStore()
	)
	if rdb != nil {
		queue = worker.NewRedisQueue(rdb)
		statuses = worker.NewRedisStatusStore(rdb)
	}
	dispatcher := worker.NewDispatcher(queue, statuses)
	pool := worker.NewPool(queue, statuses)
	pool.Handle(worker.JobExport, worker.NewExportWorker(repo.Snapshot, cfg.PDFStoragePath).Process)
	pool.Start(ctx, cfg.WorkerPoolSize)

	r := router.New(cfg, router.Deps{
		Repo:       repo,
		Writer:     writer,
		Store:      feed,
		Breaker:    writer.Breaker(),
		Redis:      rdb,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Gatherer:   reg,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("store", cfg.StoreDriver).Bool("redis", rdb != nil).Msgf("Biowearth backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	cancel()
	pool.Wait()
	log.Info().Msg("server exited")
}
