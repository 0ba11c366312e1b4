package tabular

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/filingworks/identity-core/internal/adapters/driven/memdb"
	"github.com/filingworks/identity-core/internal/core/domain"
)

func newBackend(t *testing.T) *memdb.Store {
	t.Helper()
	s, err := memdb.New(Tables()...)
	if err != nil {
		t.Fatalf("memdb.New: %v", err)
	}
	return s
}

func TestEntityStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewEntityStore(newBackend(t))

	company := &domain.Company{Hash: "acme-widgets", Name: "Acme Widgets"}
	if err := store.Upsert(ctx, company); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := store.Get(ctx, domain.EntityKindCompany, "acme-widgets")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DisplayName() != "Acme Widgets" {
		t.Errorf("got %q, want Acme Widgets", got.DisplayName())
	}

	_, err = store.Get(ctx, domain.EntityKindCompany, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRelationStorePrefixListing(t *testing.T) {
	ctx := context.Background()
	store := NewRelationStore(newBackend(t))

	rels := []*domain.Relation{
		{EntityHash: "acme-widgets", EntityKind: domain.EntityKindCompany, Tag: "issuer", SubjectID: 1000001, Roles: []string{"Issuer"}},
		{EntityHash: "john-smith", EntityKind: domain.EntityKindPerson, Tag: "officers", SubjectID: 1000001, Roles: []string{"Executive Officer"}},
		{EntityHash: "acme-widgets", EntityKind: domain.EntityKindCompany, Tag: "issuer", SubjectID: 1000002, Roles: []string{"Issuer"}},
	}
	for _, rel := range rels {
		if err := store.Link(ctx, rel); err != nil {
			t.Fatalf("Link: %v", err)
		}
	}

	forSubject, err := store.ForSubject(ctx, 1000001)
	if err != nil {
		t.Fatalf("ForSubject: %v", err)
	}
	if len(forSubject) != 2 {
		t.Fatalf("got %d relations, want 2", len(forSubject))
	}

	tagged, err := store.ForSubjectAndTag(ctx, 1000001, "officers")
	if err != nil {
		t.Fatalf("ForSubjectAndTag: %v", err)
	}
	if len(tagged) != 1 || tagged[0].EntityHash != "john-smith" {
		t.Fatalf("got %+v, want the officers relation", tagged)
	}

	// Re-linking replaces the role list without adding a row
	rels[0].Roles = []string{"Issuer", "Depositor"}
	if err := store.Link(ctx, rels[0]); err != nil {
		t.Fatalf("Link: %v", err)
	}
	got, err := store.Get(ctx, "acme-widgets", "issuer", 1000001)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Roles) != 2 {
		t.Errorf("got roles %v, want 2", got.Roles)
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newBackend(t))

	snap := &domain.RegistrantProfile{
		SubjectID: 1000001,
		Name:      "Acme Widgets",
		Street1:   "100 Main St",
		City:      "Wilmington",
		State:     "DE",
		Zip:       "19801",
		Phone:     domain.StringPtr("+1 302-555-0100"),
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, domain.SubjectKindRegistrant, 1000001)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	profile := got.(*domain.RegistrantProfile)
	if profile.City != "Wilmington" || profile.Phone == nil || *profile.Phone != "+1 302-555-0100" {
		t.Errorf("round trip mismatch: %+v", profile)
	}

	if err := store.Delete(ctx, domain.SubjectKindRegistrant, 1000001); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, domain.SubjectKindRegistrant, 1000001); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestHistoryStoreOpenCloseList(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore(newBackend(t))

	t0 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(30 * 24 * time.Hour)

	snap := func(city string) domain.Snapshot {
		return &domain.RegistrantProfile{SubjectID: 1000001, Name: "Acme", Street1: "100 Main St", City: city, State: "DE", Zip: "19801"}
	}

	first := &domain.Interval{
		Kind: domain.SubjectKindRegistrant, SubjectID: 1000001,
		ValidFrom: t0, Snapshot: snap("Wilmington"), Source: "annual-report", RecordedAt: t0,
	}
	if err := store.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	open, err := store.Open(ctx, domain.SubjectKindRegistrant, 1000001)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !open.ValidFrom.Equal(t0) || open.ValidTo != nil {
		t.Fatalf("open interval mismatch: %+v", open)
	}

	if err := store.Close(ctx, domain.SubjectKindRegistrant, 1000001, t0, t1); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second := &domain.Interval{
		Kind: domain.SubjectKindRegistrant, SubjectID: 1000001,
		ValidFrom: t1, Snapshot: snap("Dover"), Source: "amendment", RecordedAt: t1,
	}
	if err := store.Insert(ctx, second); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	intervals, err := store.List(ctx, domain.SubjectKindRegistrant, 1000001)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if !intervals[0].ValidFrom.Equal(t1) {
		t.Errorf("newest first: got %v, want %v", intervals[0].ValidFrom, t1)
	}
	if intervals[1].ValidTo == nil || !intervals[1].ValidTo.Equal(t1) {
		t.Errorf("closed interval valid_to: got %v, want %v", intervals[1].ValidTo, t1)
	}
	if intervals[1].Snapshot.(*domain.RegistrantProfile).City != "Wilmington" {
		t.Errorf("snapshot not preserved through close")
	}

	// Only the new interval is open
	open, err = store.Open(ctx, domain.SubjectKindRegistrant, 1000001)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !open.ValidFrom.Equal(t1) {
		t.Errorf("got open at %v, want %v", open.ValidFrom, t1)
	}

	// Closing a nonexistent interval surfaces ErrNotFound
	err = store.Close(ctx, domain.SubjectKindRegistrant, 1000002, t0, t1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestChangeLogStoreAppendList(t *testing.T) {
	ctx := context.Background()
	store := NewChangeLogStore(newBackend(t))

	t0 := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	entries := []domain.ChangeEntry{
		{ID: uuid.NewString(), Kind: domain.SubjectKindRegistrant, SubjectID: "1000001", Field: domain.FieldWildcard, ChangeKind: domain.ChangeKindCreate, Source: "annual-report", Timestamp: t0},
		{ID: uuid.NewString(), Kind: domain.SubjectKindRegistrant, SubjectID: "1000001", Field: "city", Old: domain.StringPtr("Wilmington"), New: domain.StringPtr("Dover"), ChangeKind: domain.ChangeKindUpdate, Source: "amendment", Timestamp: t1},
		{ID: uuid.NewString(), Kind: domain.SubjectKindRegistrant, SubjectID: "1000002", Field: domain.FieldWildcard, ChangeKind: domain.ChangeKindCreate, Source: "annual-report", Timestamp: t0},
	}
	if err := store.Append(ctx, entries...); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.List(ctx, domain.SubjectKindRegistrant, "1000001")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Field != "city" || got[1].Field != domain.FieldWildcard {
		t.Errorf("wrong order: %q then %q", got[0].Field, got[1].Field)
	}
	if got[0].Old == nil || *got[0].Old != "Wilmington" {
		t.Errorf("old value lost: %+v", got[0])
	}
}
