// Package config loads runtime configuration from an optional config.yaml
// plus environment overrides.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the CLI needs to wire the pipeline.
type Config struct {
	// DatabaseURL is the postgres connection string. Empty selects the
	// in-memory backend.
	DatabaseURL string

	// RedisURL selects the Redis subject lock when set; otherwise the
	// postgres advisory lock (or an in-process lock on the memory backend).
	RedisURL string

	// Concurrency is the number of import records processed in parallel.
	Concurrency int

	// LockTTL bounds how long a crashed worker can hold a subject.
	LockTTL time.Duration

	// Region is the default phone parsing region.
	Region string
}

// DefaultConfig returns sensible defaults for local use.
func DefaultConfig() Config {
	return Config{
		Concurrency: 2,
		LockTTL:     30 * time.Second,
		Region:      "US",
	}
}

// Load reads config.yaml from configPath, then applies environment
// overrides (IDENTITY_DATABASE_URL, IDENTITY_WORKER_CONCURRENCY, ...).
// A missing file is not an error; defaults plus env apply.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("IDENTITY")

	// Map nested keys to flat env vars
	v.BindEnv("database.url")
	v.BindEnv("redis.url")
	v.BindEnv("worker.concurrency")
	v.BindEnv("worker.lock_ttl")
	v.BindEnv("worker.region")

	// Config file not found is fine; defaults and env vars still apply
	_ = v.ReadInConfig()

	if v.IsSet("database.url") {
		cfg.DatabaseURL = v.GetString("database.url")
	}
	if v.IsSet("redis.url") {
		cfg.RedisURL = v.GetString("redis.url")
	}
	if v.IsSet("worker.concurrency") {
		cfg.Concurrency = v.GetInt("worker.concurrency")
	}
	if v.IsSet("worker.lock_ttl") {
		cfg.LockTTL = v.GetDuration("worker.lock_ttl")
	}
	if v.IsSet("worker.region") {
		cfg.Region = v.GetString("worker.region")
	}

	return cfg, nil
}
