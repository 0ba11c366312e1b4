package memdb

import (
	"context"
	"errors"
	"testing"

	"github.com/filingworks/identity-core/internal/core/domain"
	"github.com/filingworks/identity-core/internal/core/ports/driven"
)

func newStore(t *testing.T, tables ...string) *Store {
	t.Helper()
	s, err := New(tables...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStorePutGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "snapshots")

	rec := driven.TableRecord{Key: "registrant/1000001", Value: []byte(`{"name":"Acme"}`)}
	if err := s.Put(ctx, "snapshots", rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "snapshots", "registrant/1000001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key != rec.Key || string(got.Value) != string(rec.Value) {
		t.Errorf("got %q=%q, want %q=%q", got.Key, got.Value, rec.Key, rec.Value)
	}
}

func TestStorePutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "snapshots")

	s.Put(ctx, "snapshots", driven.TableRecord{Key: "k", Value: []byte("v1")})
	s.Put(ctx, "snapshots", driven.TableRecord{Key: "k", Value: []byte("v2")})

	got, err := s.Get(ctx, "snapshots", "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Value) != "v2" {
		t.Errorf("got %q, want v2", got.Value)
	}

	all, _ := s.GetAll(ctx, "snapshots")
	if len(all) != 1 {
		t.Errorf("got %d records, want 1", len(all))
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := newStore(t, "snapshots")

	_, err := s.Get(context.Background(), "snapshots", "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStoreUnknownTable(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "snapshots")

	if _, err := s.Get(ctx, "history", "k"); !errors.Is(err, domain.ErrTableNotInitialized) {
		t.Errorf("Get: got %v, want ErrTableNotInitialized", err)
	}
	if err := s.Put(ctx, "history", driven.TableRecord{Key: "k"}); !errors.Is(err, domain.ErrTableNotInitialized) {
		t.Errorf("Put: got %v, want ErrTableNotInitialized", err)
	}
	if _, err := s.Search(ctx, "history", "k"); !errors.Is(err, domain.ErrTableNotInitialized) {
		t.Errorf("Search: got %v, want ErrTableNotInitialized", err)
	}
	if err := s.Delete(ctx, "history", "k"); !errors.Is(err, domain.ErrTableNotInitialized) {
		t.Errorf("Delete: got %v, want ErrTableNotInitialized", err)
	}
}

func TestStoreSearchPrefix(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "history")

	keys := []string{
		"registrant/1000001/2024-01-01",
		"registrant/1000001/2024-06-01",
		"registrant/1000002/2024-01-01",
		"offering/1000001/2024-01-01",
	}
	for _, k := range keys {
		if err := s.Put(ctx, "history", driven.TableRecord{Key: k, Value: []byte("x")}); err != nil {
			t.Fatalf("Put %s: %v", k, err)
		}
	}

	recs, err := s.Search(ctx, "history", "registrant/1000001/")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Key != "registrant/1000001/2024-01-01" || recs[1].Key != "registrant/1000001/2024-06-01" {
		t.Errorf("wrong key order: %q, %q", recs[0].Key, recs[1].Key)
	}

	none, err := s.Search(ctx, "history", "person/")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d records, want 0", len(none))
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "snapshots")

	s.Put(ctx, "snapshots", driven.TableRecord{Key: "k", Value: []byte("v")})
	if err := s.Delete(ctx, "snapshots", "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "snapshots", "k"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op
	if err := s.Delete(ctx, "snapshots", "k"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestStoreGetAllOrdered(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, "entities")

	for _, k := range []string{"c", "a", "b"} {
		s.Put(ctx, "entities", driven.TableRecord{Key: k, Value: []byte(k)})
	}

	all, err := s.GetAll(ctx, "entities")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}
	for i, want := range []string{"a", "b", "c"} {
		if all[i].Key != want {
			t.Errorf("index %d: got %q, want %q", i, all[i].Key, want)
		}
	}
}
