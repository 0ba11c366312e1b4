package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/filingworks/identity-core/internal/canonical"
	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
	"github.com/filingworks/identity-core/internal/core/ports/driving"
	"github.com/filingworks/identity-core/internal/platform/metrics"
)

// errNothingToStore marks a record whose every mention normalized to
// absent. Absent input is not a failure, only "nothing to store."
var errNothingToStore = errors.New("nothing to store")

const (
	lockAttempts   = 5
	lockRetryDelay = 100 * time.Millisecond
)

// Worker drives batch ingestion: canonicalize mentions, upsert entities,
// link relations, and save versioned snapshots. Records for different
// subjects run concurrently; same-subject writes serialize through the
// subject lock. Cancellation is honored between records, never mid-save.
type Worker struct {
	identity driving.IdentityService
	versions driving.VersionService
	lock     driven.SubjectLock
	logger   *slog.Logger
	metrics  *metrics.Metrics

	concurrency int
	lockTTL     time.Duration
	region      string
}

// WorkerConfig holds configuration for the ingestion worker.
type WorkerConfig struct {
	Identity driving.IdentityService
	Versions driving.VersionService
	Lock     driven.SubjectLock
	Logger   *slog.Logger
	Metrics  *metrics.Metrics

	// Concurrency is the number of records processed in parallel.
	Concurrency int

	// LockTTL bounds how long a crashed holder can block a subject.
	LockTTL time.Duration

	// Region is the default phone parsing region.
	Region string
}

// NewWorker creates a new ingestion worker.
func NewWorker(cfg WorkerConfig) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}

	region := cfg.Region
	if region == "" {
		region = canonical.DefaultRegion
	}

	return &Worker{
		identity:    cfg.Identity,
		versions:    cfg.Versions,
		lock:        cfg.Lock,
		logger:      logger,
		metrics:     cfg.Metrics,
		concurrency: concurrency,
		lockTTL:     lockTTL,
		region:      region,
	}
}

// RunResult summarizes one batch run.
type RunResult struct {
	BatchID   string
	Processed int
	Skipped   int
	Failed    int
}

// Run processes records through a bounded goroutine pool. Every versioned
// write of the run carries the same generated batch ID. Returns the
// context error when cancelled; records already handed out finish first.
func (w *Worker) Run(ctx context.Context, records []ImportRecord) (*RunResult, error) {
	batchID := uuid.NewString()
	logger := w.logger.With("batch_id", batchID)
	logger.Info("ingest run starting",
		"records", len(records),
		"concurrency", w.concurrency,
	)

	jobs := make(chan ImportRecord)
	var mu sync.Mutex
	result := &RunResult{BatchID: batchID}

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			wlog := logger.With("worker_id", workerID)

			for rec := range jobs {
				if ctx.Err() != nil {
					// Drain without processing once cancelled
					continue
				}

				err := w.processRecord(ctx, rec, batchID, wlog)
				mu.Lock()
				switch {
				case err == nil:
					result.Processed++
					w.metrics.IncrementProcessed()
				case errors.Is(err, errNothingToStore):
					result.Skipped++
					w.metrics.IncrementSkipped()
				default:
					result.Failed++
					w.metrics.IncrementFailed()
					wlog.Error("record failed", "subject_id", rec.SubjectID, "error", err)
				}
				mu.Unlock()
			}
		}(i)
	}

feed:
	for _, rec := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- rec:
		}
	}
	close(jobs)
	wg.Wait()

	logger.Info("ingest run finished",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (w *Worker) processRecord(ctx context.Context, rec ImportRecord, batchID string, logger *slog.Logger) error {
	subjectID := domain.SubjectID(rec.SubjectID)
	if err := subjectID.Validate(); err != nil {
		return fmt.Errorf("subject %d: %w", rec.SubjectID, err)
	}

	stored, err := w.storeMentions(ctx, rec, subjectID)
	if err != nil {
		return err
	}

	opts := driving.SaveOptions{BatchID: batchID}
	saved := 0

	if rec.Registrant != nil && strings.TrimSpace(rec.Registrant.Name) != "" {
		profile := buildProfile(subjectID, rec.Registrant, w.region)
		if err := w.saveLocked(ctx, profile, rec.Source, opts, logger); err != nil {
			return err
		}
		saved++
	}

	if rec.Offering != nil {
		offering := buildOffering(subjectID, rec.Offering)
		if err := w.saveLocked(ctx, offering, rec.Source, opts, logger); err != nil {
			return err
		}
		saved++
	}

	if stored == 0 && saved == 0 {
		return errNothingToStore
	}
	return nil
}

// storeMentions canonicalizes and persists the record's entity mentions.
// Absent mentions are dropped silently; returns the count stored.
func (w *Worker) storeMentions(ctx context.Context, rec ImportRecord, subjectID domain.SubjectID) (int, error) {
	stored := 0

	link := func(entity domain.Entity, tag string, roles []string) error {
		if err := w.identity.UpsertEntity(ctx, entity); err != nil {
			return err
		}
		if err := w.identity.Link(ctx, entity.EntityHash(), entity.EntityKind(), tag, subjectID, roles); err != nil {
			return err
		}
		stored++
		return nil
	}

	for _, m := range rec.Companies {
		company := canonical.NormalizeCompany(m.Raw)
		if company == nil {
			continue
		}
		if err := link(company, m.Tag, m.Roles); err != nil {
			return stored, err
		}
	}

	for _, m := range rec.People {
		person := canonical.NormalizePerson(m.Raw, m.Note)
		if person == nil {
			continue
		}
		if err := link(person, m.Tag, m.Roles); err != nil {
			return stored, err
		}
	}

	for _, m := range rec.Phones {
		region := m.Region
		if region == "" {
			region = w.region
		}
		phone := canonical.NormalizePhone(m.Raw, region)
		if phone == nil {
			continue
		}
		if err := link(phone, m.Tag, m.Roles); err != nil {
			return stored, err
		}
	}

	for _, m := range rec.Addresses {
		addr := canonical.NormalizeAddress(canonical.AddressInput{
			Street1: m.Street1,
			Street2: m.Street2,
			City:    m.City,
			State:   m.State,
			Zip:     m.Zip,
			Country: m.Country,
		})
		if addr == nil {
			continue
		}
		if err := link(addr, m.Tag, m.Roles); err != nil {
			return stored, err
		}
	}

	return stored, nil
}

// saveLocked serializes the versioned save through the per-subject lock.
// The version tracker's read-modify-write is not atomic on its own.
func (w *Worker) saveLocked(ctx context.Context, snap domain.Snapshot, source string, opts driving.SaveOptions, logger *slog.Logger) error {
	kind, subjectID := snap.Kind(), snap.Subject()

	acquired := false
	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := w.lock.Acquire(ctx, kind, subjectID, w.lockTTL)
		if err != nil {
			return fmt.Errorf("lock %s %s: %w", kind, subjectID, err)
		}
		if ok {
			acquired = true
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	if !acquired {
		return fmt.Errorf("subject %s %s: %w", kind, subjectID, domain.ErrLockNotAcquired)
	}
	defer func() {
		if err := w.lock.Release(ctx, kind, subjectID); err != nil {
			logger.Error("failed to release lock", "kind", kind, "subject_id", subjectID, "error", err)
		}
	}()

	result, err := w.versions.SaveWithHistory(ctx, snap, source, opts)
	if err != nil {
		return err
	}

	if result.Created {
		w.metrics.AddChangeEntries(string(domain.ChangeKindCreate), 1)
		logger.Info("subject created", "kind", kind, "subject_id", subjectID, "source", source)
	} else if n := len(result.Changes); n > 0 {
		w.metrics.AddChangeEntries(string(domain.ChangeKindUpdate), n)
		logger.Info("subject updated", "kind", kind, "subject_id", subjectID, "source", source, "fields", n)
	}
	return nil
}

func buildProfile(subjectID domain.SubjectID, raw *RawRegistrant, region string) *domain.RegistrantProfile {
	p := &domain.RegistrantProfile{
		SubjectID:    subjectID,
		Name:         strings.TrimSpace(raw.Name),
		Jurisdiction: optional(raw.Jurisdiction),
		EntityType:   optional(raw.EntityType),
		YearOfInc:    optional(raw.YearOfInc),
		FetchedAt:    raw.FetchedAt,
	}

	if addr := canonical.NormalizeAddress(canonical.AddressInput{
		Street1: raw.Street1,
		Street2: raw.Street2,
		City:    raw.City,
		State:   raw.State,
		Zip:     raw.Zip,
	}); addr != nil {
		p.Street1 = addr.Street1
		p.Street2 = optional(addr.Street2)
		p.City = addr.City
		p.State = addr.State
		p.Zip = addr.Zip
	}

	if phone := canonical.NormalizePhone(raw.Phone, region); phone != nil {
		p.Phone = domain.StringPtr(phone.International)
	}

	return p
}

func buildOffering(subjectID domain.SubjectID, raw *RawOffering) *domain.Offering {
	return &domain.Offering{
		SubjectID:         subjectID,
		RegistrantID:      subjectID,
		OfferingType:      optional(raw.OfferingType),
		IndustryGroup:     optional(raw.IndustryGroup),
		Exemptions:        optional(raw.Exemptions),
		TotalAmount:       optional(raw.TotalAmount),
		AmountSold:        optional(raw.AmountSold),
		MinimumInvestment: optional(raw.MinimumInvestment),
	}
}

// optional maps a blank feed value to nil. Nil means the filing omitted
// the field; the empty string would mean it was filed as empty.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
