package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/filingworks/identity-core/internal/adapters/driven/memdb"
	"github.com/filingworks/identity-core/internal/adapters/driven/postgres"
	redisadapter "github.com/filingworks/identity-core/internal/adapters/driven/redis"
	"github.com/filingworks/identity-core/internal/adapters/driven/tabular"
	"github.com/filingworks/identity-core/internal/config"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
	"github.com/filingworks/identity-core/internal/core/services"
	"github.com/filingworks/identity-core/internal/ingest"
	"github.com/filingworks/identity-core/internal/platform/metrics"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: identity-core <records.json>")
	}
	recordsPath := os.Args[1]

	cfg, err := config.Load(getEnv("IDENTITY_CONFIG_PATH", "."))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("identity-core %s starting", version)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		cancel()
	}()

	// ===== Metrics endpoint (optional) =====
	if addr := getEnv("IDENTITY_METRICS_ADDR", ""); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Printf("Metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// ===== Stores (PostgreSQL if configured, otherwise in-memory) =====
	var (
		entityStore   driven.EntityStore
		relationStore driven.RelationStore
		snapshotStore driven.SnapshotStore
		historyStore  driven.HistoryStore
		changeStore   driven.ChangeLogStore
		subjectLock   driven.SubjectLock
	)

	if cfg.DatabaseURL != "" {
		log.Println("Connecting to PostgreSQL...")
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Initialize schema (idempotent)
		if err := db.InitSchema(ctx); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("PostgreSQL connected and schema initialized")

		entityStore = postgres.NewEntityStore(db)
		relationStore = postgres.NewRelationStore(db)
		snapshotStore = postgres.NewSnapshotStore(db)
		historyStore = postgres.NewHistoryStore(db)
		changeStore = postgres.NewChangeLogStore(db)
		subjectLock = postgres.NewAdvisoryLock(db)
	} else {
		log.Println("No database configured, using in-memory store")
		backend, err := memdb.New(tabular.Tables()...)
		if err != nil {
			log.Fatalf("Failed to create in-memory store: %v", err)
		}

		entityStore = tabular.NewEntityStore(backend)
		relationStore = tabular.NewRelationStore(backend)
		snapshotStore = tabular.NewSnapshotStore(backend)
		historyStore = tabular.NewHistoryStore(backend)
		changeStore = tabular.NewChangeLogStore(backend)
		subjectLock = memdb.NewSubjectLock()
	}

	// ===== Subject lock (Redis when available) =====
	if cfg.RedisURL != "" {
		log.Println("Connecting to Redis...")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		subjectLock = redisadapter.NewSubjectLock(redisClient)
		log.Println("Using Redis subject lock")
	}

	// ===== Services and worker =====
	identityService := services.NewIdentityService(entityStore, relationStore)
	versionService := services.NewVersionService(snapshotStore, historyStore, changeStore)

	worker := ingest.NewWorker(ingest.WorkerConfig{
		Identity:    identityService,
		Versions:    versionService,
		Lock:        subjectLock,
		Logger:      slog.Default(),
		Metrics:     metrics.New(),
		Concurrency: cfg.Concurrency,
		LockTTL:     cfg.LockTTL,
		Region:      cfg.Region,
	})

	records, err := readRecords(recordsPath)
	if err != nil {
		log.Fatalf("Failed to read records: %v", err)
	}
	log.Printf("Loaded %d import records from %s", len(records), recordsPath)

	result, err := worker.Run(ctx, records)
	if err != nil {
		log.Fatalf("Ingest run aborted: %v", err)
	}

	log.Printf("Batch %s finished: processed=%d skipped=%d failed=%d",
		result.BatchID, result.Processed, result.Skipped, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}

// readRecords loads a JSON array of import records.
func readRecords(path string) ([]ingest.ImportRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []ingest.ImportRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
