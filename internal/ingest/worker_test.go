package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven/mocks"
	"github.com/filingworks/identity-core/internal/core/services"
)

type fixture struct {
	worker    *Worker
	entities  *mocks.MockEntityStore
	relations *mocks.MockRelationStore
	snapshots *mocks.MockSnapshotStore
	history   *mocks.MockHistoryStore
	changes   *mocks.MockChangeLogStore
}

func newFixture(t *testing.T, concurrency int) *fixture {
	t.Helper()

	f := &fixture{
		entities:  mocks.NewMockEntityStore(),
		relations: mocks.NewMockRelationStore(),
		snapshots: mocks.NewMockSnapshotStore(),
		history:   mocks.NewMockHistoryStore(),
		changes:   mocks.NewMockChangeLogStore(),
	}

	f.worker = NewWorker(WorkerConfig{
		Identity:    services.NewIdentityService(f.entities, f.relations),
		Versions:    services.NewVersionService(f.snapshots, f.history, f.changes),
		Lock:        mocks.NewMockSubjectLock(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Concurrency: concurrency,
	})
	return f
}

func sampleRecord(subjectID int64) ImportRecord {
	return ImportRecord{
		SubjectID: subjectID,
		Source:    "annual-report",
		Registrant: &RawRegistrant{
			Name:    "Acme Widgets, Inc.",
			Street1: "100 Main Street",
			City:    "Wilmington",
			State:   "Delaware",
			Zip:     "19801",
			Phone:   "(302) 555-0100",
		},
		Companies: []CompanyMention{
			{Raw: "Acme Widgets, Inc.", Tag: "annual-report:issuer", Roles: []string{"Issuer"}},
		},
		People: []PersonMention{
			{Raw: "John A. Smith Jr.", Tag: "annual-report:officers", Roles: []string{"CEO"}},
		},
	}
}

func TestWorkerRun_ProcessesRecord(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	result, err := f.worker.Run(ctx, []ImportRecord{sampleRecord(1000001)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 || result.Skipped != 0 || result.Failed != 0 {
		t.Fatalf("got %+v, want 1 processed", result)
	}

	// Mentions became canonical entities with relations
	if f.entities.Count() != 2 {
		t.Errorf("got %d entities, want 2", f.entities.Count())
	}
	if f.relations.Count() != 2 {
		t.Errorf("got %d relations, want 2", f.relations.Count())
	}

	// The registrant snapshot was versioned
	snap, err := f.snapshots.Get(ctx, domain.SubjectKindRegistrant, 1000001)
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	profile := snap.(*domain.RegistrantProfile)
	if profile.Name != "Acme Widgets, Inc." {
		t.Errorf("got name %q", profile.Name)
	}
	if profile.Street1 != "100 Main St" {
		t.Errorf("street not canonicalized: %q", profile.Street1)
	}
	if profile.State != "DE" {
		t.Errorf("state not canonicalized: %q", profile.State)
	}
	if profile.Phone == nil || *profile.Phone != "+1 302-555-0100" {
		t.Errorf("phone not canonicalized: %v", profile.Phone)
	}

	entries := f.changes.All()
	if len(entries) != 1 {
		t.Fatalf("got %d change entries, want 1", len(entries))
	}
	if entries[0].ChangeKind != domain.ChangeKindCreate || entries[0].Field != domain.FieldWildcard {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[0].BatchID == nil || *entries[0].BatchID != result.BatchID {
		t.Errorf("batch ID not stamped: %v", entries[0].BatchID)
	}
}

func TestWorkerRun_SkipsAbsentRecord(t *testing.T) {
	f := newFixture(t, 1)

	records := []ImportRecord{{
		SubjectID: 1000001,
		Source:    "annual-report",
		Companies: []CompanyMention{{Raw: "...", Tag: "annual-report:issuer"}},
		Phones:    []PhoneMention{{Raw: "000-000-0000", Tag: "annual-report:contact"}},
	}}

	result, err := f.worker.Run(context.Background(), records)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Skipped != 1 || result.Processed != 0 || result.Failed != 0 {
		t.Fatalf("got %+v, want 1 skipped", result)
	}
	if f.entities.Count() != 0 {
		t.Errorf("absent mentions must not be stored, got %d entities", f.entities.Count())
	}
	if len(f.changes.All()) != 0 {
		t.Errorf("absent record must not touch the audit trail")
	}
}

func TestWorkerRun_FailsInvalidSubject(t *testing.T) {
	f := newFixture(t, 1)

	result, err := f.worker.Run(context.Background(), []ImportRecord{sampleRecord(-1)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Failed != 1 || result.Processed != 0 {
		t.Fatalf("got %+v, want 1 failed", result)
	}
}

func TestWorkerRun_RepeatedRecordIsIdempotent(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	rec := sampleRecord(1000001)
	if _, err := f.worker.Run(ctx, []ImportRecord{rec}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := f.worker.Run(ctx, []ImportRecord{rec}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	// Same mentions resolve to the same hashes; no duplicates
	if f.entities.Count() != 2 {
		t.Errorf("got %d entities, want 2", f.entities.Count())
	}
	if f.relations.Count() != 2 {
		t.Errorf("got %d relations, want 2", f.relations.Count())
	}

	// Identical snapshot: no new interval, no new audit entries
	intervals, _ := f.history.List(ctx, domain.SubjectKindRegistrant, 1000001)
	if len(intervals) != 1 {
		t.Errorf("got %d intervals, want 1", len(intervals))
	}
	if len(f.changes.All()) != 1 {
		t.Errorf("got %d change entries, want 1", len(f.changes.All()))
	}
}

func TestWorkerRun_ConcurrentSubjects(t *testing.T) {
	f := newFixture(t, 4)
	ctx := context.Background()

	var records []ImportRecord
	for i := int64(0); i < 20; i++ {
		records = append(records, sampleRecord(1000001+i))
	}

	result, err := f.worker.Run(ctx, records)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 20 {
		t.Fatalf("got %+v, want 20 processed", result)
	}

	for i := int64(0); i < 20; i++ {
		intervals, _ := f.history.List(ctx, domain.SubjectKindRegistrant, domain.SubjectID(1000001+i))
		if len(intervals) != 1 {
			t.Errorf("subject %d: got %d intervals, want 1", 1000001+i, len(intervals))
		}
	}
}

func TestWorkerRun_CancelledBeforeStart(t *testing.T) {
	f := newFixture(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var records []ImportRecord
	for i := int64(0); i < 50; i++ {
		records = append(records, sampleRecord(1000001+i))
	}

	result, err := f.worker.Run(ctx, records)
	if err != context.Canceled {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if result.Processed != 0 {
		t.Errorf("cancelled run processed %d records", result.Processed)
	}
}

func TestWorkerRun_OfferingRecord(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	records := []ImportRecord{{
		SubjectID: 1000001,
		Source:    "form-d",
		Offering: &RawOffering{
			OfferingType:  "Equity",
			IndustryGroup: "Technology",
			TotalAmount:   "5000000",
		},
	}}

	result, err := f.worker.Run(ctx, records)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("got %+v, want 1 processed", result)
	}

	snap, err := f.snapshots.Get(ctx, domain.SubjectKindOffering, 1000001)
	if err != nil {
		t.Fatalf("offering snapshot missing: %v", err)
	}
	offering := snap.(*domain.Offering)
	if offering.RegistrantID != 1000001 {
		t.Errorf("registrant ID not stamped: %v", offering.RegistrantID)
	}
	if offering.OfferingType == nil || *offering.OfferingType != "Equity" {
		t.Errorf("offering type lost: %v", offering.OfferingType)
	}
	if offering.AmountSold != nil {
		t.Errorf("blank field must stay nil, got %v", *offering.AmountSold)
	}
}

func TestWorkerLockContention(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	// Hold the subject's lock so the save cannot acquire it
	lock := mocks.NewMockSubjectLock()
	if ok, _ := lock.Acquire(ctx, domain.SubjectKindRegistrant, 1000001, time.Minute); !ok {
		t.Fatal("setup acquire failed")
	}
	f.worker.lock = lock

	result, err := f.worker.Run(ctx, []ImportRecord{sampleRecord(1000001)})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("got %+v, want 1 failed", result)
	}
}
