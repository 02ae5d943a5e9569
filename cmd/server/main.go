package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/statsboard/internal/aggregation"
	"github.com/vytor/statsboard/internal/api"
	"github.com/vytor/statsboard/internal/cache"
	"github.com/vytor/statsboard/internal/config"
	"github.com/vytor/statsboard/internal/db"
	"github.com/vytor/statsboard/internal/jobs"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/metrics"
	"github.com/vytor/statsboard/internal/repository/sqldb"
	"github.com/vytor/statsboard/internal/services"
	"github.com/vytor/statsboard/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Statsboard Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("ranking_stat=%s", cfg.Ranking())
	log.Debug("request_timeout=%s", cfg.RequestTimeout)
	log.Debug("redis_addr=%s", cfg.RedisAddr)
	log.Debug("leaderboard_cache_ttl=%s", cfg.LeaderboardCacheTTL)
	log.Debug("ingest_worker_count=%d", cfg.IngestWorkerCount)
	log.Debug("ingest_queue_size=%d", cfg.IngestQueueSize)

	// Open database
	database, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	m := metrics.New()
	readyChecks := map[string]api.ReadyCheck{
		"database": database.PingContext,
	}

	var leaderboardCache cache.LeaderboardCache = cache.NewNoop()
	if cfg.CacheEnabled() {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedisCache(pingCtx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.LeaderboardCacheTTL,
		})
		pingCancel()
		if err != nil {
			log.Warn("leaderboard cache disabled: %v", err)
		} else {
			defer rc.Close()
			leaderboardCache = rc
			readyChecks["cache"] = rc.Ping
			log.Info("leaderboard cache enabled at %s", cfg.RedisAddr)
		}
	}

	dialect := database.Dialect()
	engine, err := aggregation.NewEngine(
		sqldb.NewExecutor(database.DB, m),
		cfg.Ranking(),
		aggregation.WithPlaceholder(dialect.Placeholder),
	)
	if err != nil {
		log.Error("failed to create stats engine: %v", err)
		os.Exit(1)
	}

	// Initialize worker pool and services
	ingestPool := worker.NewPool(cfg.IngestWorkerCount, cfg.IngestQueueSize)
	queue := jobs.NewWorkerQueue(ingestPool, nil)

	statsService := services.NewStatsService(engine, leaderboardCache, m)
	eventService := services.NewEventService(
		sqldb.NewStatEventRepository(database.DB, dialect.Placeholder),
		queue,
		leaderboardCache,
		m,
	)
	queue.SetRecorder(eventService)

	srv := &api.Server{
		StatsService:   statsService,
		EventService:   eventService,
		Metrics:        m,
		ReadyChecks:    readyChecks,
		RequestTimeout: cfg.RequestTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	ingestPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop accepting events before draining the queue
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("draining ingest pool (%d queued)", ingestPool.QueueSize())
	drained := make(chan struct{})
	go func() {
		ingestPool.Stop()
		close(drained)
	}()
	select {
	case <-drained:
	case <-shutdownCtx.Done():
		log.Warn("ingest drain timed out, abandoning queued events")
		cancel()
		<-drained
	}
	cancel()

	log.Info("===========================================")
	log.Info("Statsboard Server Stopped")
	log.Info("===========================================")
}
