package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/timerift/internal/config"
	"github.com/gokatarajesh/timerift/internal/events"
	"github.com/gokatarajesh/timerift/internal/game"
	"github.com/gokatarajesh/timerift/internal/logging"
	"github.com/gokatarajesh/timerift/internal/progression"
	"github.com/gokatarajesh/timerift/internal/question"
	"github.com/gokatarajesh/timerift/internal/server"
	"github.com/gokatarajesh/timerift/internal/session"
	"github.com/gokatarajesh/timerift/internal/session/scoring"
	"github.com/gokatarajesh/timerift/internal/storage"
	ws "github.com/gokatarajesh/timerift/pkg/http/ws"
)

// Application aggregates shared infrastructure (storage, event fan-out, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis        *redis.Client
	closeStorage func()
	dispatcher   *events.Dispatcher
	runner       *game.Runner
	http         *http.Server

	bgCancels []context.CancelFunc
	bgDone    chan struct{}
}

// New bootstraps logger, storage backend, event sinks, game runner and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("storage", cfg.Storage.Backend).Msg("starting application bootstrap")

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
	}

	kv, closeStorage, err := storage.Open(ctx, cfg, redisClient)
	if err != nil {
		closeRedis(redisClient, logger)
		return nil, fmt.Errorf("open storage: %w", err)
	}

	store := progression.NewStore(ctx, kv, progression.StoreOptions{
		Key: cfg.Storage.ProgressKey,
		Config: progression.Config{
			InitialHealth: cfg.Game.InitialHealth,
			XPPerCorrect:  cfg.Game.XPPerCorrect,
			MaxLevel:      cfg.Game.MaxLevel,
		},
	}, logger)

	engine, err := session.NewEngine(session.Config{
		BaseTime:      cfg.Game.BaseTime,
		InitialHealth: cfg.Game.InitialHealth,
		Scoring: scoring.ScoringConfig{
			BaseScore:      cfg.Game.BaseScore,
			TimeBonusRate:  cfg.Game.TimeBonusRate,
			ComboBonusRate: cfg.Game.ComboBonusRate,
			BaseCoins:      scoring.DefaultScoringConfig().BaseCoins,
			CoinsPerCombo:  scoring.DefaultScoringConfig().CoinsPerCombo,
		},
	}, question.Catalog(), newRand(cfg.Game.Seed))
	if err != nil {
		closeStorage()
		closeRedis(redisClient, logger)
		return nil, fmt.Errorf("build session engine: %w", err)
	}

	hub := ws.NewHub(logger)
	sinks := []events.Sink{events.NewHubSink(hub)}
	metrics, err := events.NewMetricsSink(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Warn().Err(err).Msg("metrics sink disabled")
	} else {
		sinks = append(sinks, metrics)
	}
	if cfg.Events.RedisChannel != "" {
		sinks = append(sinks, events.NewRedisSink(redisClient, cfg.Events.RedisChannel))
		logger.Info().Str("channel", cfg.Events.RedisChannel).Msg("publishing events to redis")
	}
	dispatcher := events.NewDispatcher(cfg.Events.QueueSize, logger, sinks...)

	runner := game.NewRunner(engine, store, dispatcher, game.Options{
		TickInterval: cfg.Game.TickInterval,
		TickStep:     cfg.Game.TickStep,
	}, logger)

	var deps []storage.Pinger
	if p, ok := kv.(storage.Pinger); ok {
		deps = append(deps, p)
	}
	if redisClient != nil && cfg.Storage.Backend != config.BackendRedis {
		deps = append(deps, storage.NewRedis(redisClient, ""))
	}

	apiServer := server.NewHTTPServer(cfg, logger, deps, game.NewHTTPHandler(runner, logger), hub)

	return &Application{
		cfg:          cfg,
		logger:       logger,
		redis:        redisClient,
		closeStorage: closeStorage,
		dispatcher:   dispatcher,
		runner:       runner,
		http:         apiServer,
		bgCancels:    make([]context.CancelFunc, 0, 1),
		bgDone:       make(chan struct{}),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.runner.Close()
	for _, cancel := range a.bgCancels {
		cancel()
	}
	select {
	case <-a.bgDone:
	case <-shutdownCtx.Done():
		a.logger.Warn().Msg("event dispatcher did not stop in time")
	}
	if dropped := a.dispatcher.Dropped(); dropped > 0 {
		a.logger.Warn().Int64("dropped", dropped).Msg("events dropped during run")
	}

	a.closeStorage()
	closeRedis(a.redis, a.logger)

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	bgCtx, cancel := context.WithCancel(ctx)
	a.bgCancels = append(a.bgCancels, cancel)
	go func() {
		defer close(a.bgDone)
		if err := a.dispatcher.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn().Err(err).Msg("event dispatcher stopped")
		}
	}()
}

// newRand seeds the question draw. Zero picks a random seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func closeRedis(client *redis.Client, logger zerolog.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.Error().Err(err).Msg("redis shutdown error")
	}
}
