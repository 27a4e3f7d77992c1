package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"timerift"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Game     Game
	Storage  Storage
	Postgres Postgres
	Redis    Redis
	Events   Events
}

// Game groups gameplay constants.
type Game struct {
	BaseTime       float64       `env:"GAME_BASE_TIME" envDefault:"15"`
	BaseScore      int           `env:"GAME_BASE_SCORE" envDefault:"100"`
	TimeBonusRate  int           `env:"GAME_TIME_BONUS_RATE" envDefault:"10"`
	ComboBonusRate float64       `env:"GAME_COMBO_BONUS_RATE" envDefault:"0.15"`
	InitialHealth  int           `env:"GAME_INITIAL_HEALTH" envDefault:"3"`
	XPPerCorrect   int           `env:"GAME_XP_PER_CORRECT" envDefault:"25"`
	MaxLevel       int           `env:"GAME_MAX_LEVEL" envDefault:"100"`
	TickInterval   time.Duration `env:"GAME_TICK_INTERVAL" envDefault:"100ms"`
	TickStep       float64       `env:"GAME_TICK_STEP" envDefault:"0.1"`
	Seed           uint64        `env:"GAME_SEED" envDefault:"0"` // 0 picks a random seed
}

// Storage selects where player progress lives.
type Storage struct {
	Backend     string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	ProgressKey string `env:"STORAGE_PROGRESS_KEY" envDefault:"time_rift_guardian_save"`
	SQLitePath  string `env:"STORAGE_SQLITE_PATH" envDefault:"data/timerift.db"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// URL renders a plain connection string for database/sql.
func (p Postgres) URL() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// DSN renders a pgxpool connection string. One save record needs few connections.
func (p Postgres) DSN() string {
	return p.URL() + " pool_max_conns=4"
}

// Redis holds storage + pub/sub configuration.
type Redis struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize  int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"timerift"`
}

// Events governs notification fan-out.
type Events struct {
	QueueSize    int    `env:"EVENTS_QUEUE_SIZE" envDefault:"256"`
	RedisChannel string `env:"EVENTS_REDIS_CHANNEL"` // empty disables Pub/Sub publishing
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements.
func (c *App) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis:
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite backend requires STORAGE_SQLITE_PATH")
		}
	case BackendPostgres:
		if c.Postgres.User == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres backend requires PG_USER and PG_DATABASE")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.Storage.ProgressKey == "" {
		return fmt.Errorf("STORAGE_PROGRESS_KEY must not be empty")
	}
	if c.Game.BaseTime <= 0 {
		return fmt.Errorf("GAME_BASE_TIME must be positive")
	}
	if c.Game.InitialHealth <= 0 {
		return fmt.Errorf("GAME_INITIAL_HEALTH must be positive")
	}
	if c.Game.MaxLevel < 1 {
		return fmt.Errorf("GAME_MAX_LEVEL must be at least 1")
	}
	if c.Game.TickStep <= 0 {
		return fmt.Errorf("GAME_TICK_STEP must be positive")
	}
	if c.Events.RedisChannel != "" && c.Redis.Addr == "" {
		return fmt.Errorf("EVENTS_REDIS_CHANNEL requires REDIS_ADDR")
	}
	return nil
}

// UsesRedis reports whether any component needs a Redis client.
func (c *App) UsesRedis() bool {
	return c.Storage.Backend == BackendRedis || c.Events.RedisChannel != ""
}
