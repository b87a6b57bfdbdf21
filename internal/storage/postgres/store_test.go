package postgres

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/journal"
)

func getTestDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres store tests")
	}
	return dsn
}

func mustOpen(t *testing.T, dsn string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func applyInitSQL(t *testing.T, dsn string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s := mustOpen(t, dsn)
	defer s.Close()
	// Resolve init SQL path relative to this test file so CWD doesn't matter
	_, thisFile, _, _ := runtime.Caller(0)
	repoRoot := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "../../../"))
	path := filepath.Join(repoRoot, "db", "migrations", "0001_init.sql")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, string(b)); err != nil {
		t.Fatalf("apply init sql: %v", err)
	}
	if _, err := s.pool.Exec(ctx, `truncate table entries`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func newEntry(t *testing.T, createdAt time.Time) journal.Entry {
	t.Helper()
	e, err := journal.New(journal.Input{
		Work:      "Studied FastAPI",
		Struggle:  "async",
		Intention: "Practice SQL",
		Metadata:  map[string]string{"mood": "focused"},
	})
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	e.CreatedAt = createdAt
	e.UpdatedAt = createdAt
	return e
}

func TestStore_EntryLifecycle(t *testing.T) {
	dsn := getTestDSN(t)
	applyInitSQL(t, dsn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := mustOpen(t, dsn)
	defer s.Close()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}

	day1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e := newEntry(t, day1)
	if _, err := s.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Round trip: columns win over blob copies.
	got, ok, err := s.Get(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Work != e.Work || got.Struggle != e.Struggle || got.Intention != e.Intention {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(day1) {
		t.Fatalf("created_at = %v", got.CreatedAt)
	}
	if v, _ := got.Metadata.Get("mood"); v != "focused" {
		t.Fatalf("metadata lost: %+v", got.Metadata)
	}

	// Same calendar day is rejected by the unique index on entry_day.
	dup := newEntry(t, day1.Add(2*time.Hour))
	if _, err := s.Create(ctx, dup); !errors.Is(err, errs.ErrDuplicateDay) {
		t.Fatalf("expected ErrDuplicateDay, got %v", err)
	}

	// Same id on a different day is a primary key conflict.
	clash := newEntry(t, day1.AddDate(0, 0, 1))
	clash.ID = e.ID
	if _, err := s.Create(ctx, clash); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// Partial update touches only the patched field and updated_at.
	work := "Read docs"
	updated, ok, err := s.Update(ctx, e.ID, journal.Patch{Work: &work})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if updated.Work != "Read docs" || updated.Struggle != e.Struggle {
		t.Fatalf("update mismatch: %+v", updated)
	}
	if !updated.CreatedAt.Equal(day1) || !updated.UpdatedAt.After(day1) {
		t.Fatalf("timestamps wrong: %+v", updated)
	}

	// Update on a missing id must not create a row.
	if _, ok, err := s.Update(ctx, "does-not-exist", journal.Patch{Work: &work}); err != nil || ok {
		t.Fatalf("update missing: ok=%v err=%v", ok, err)
	}

	list, err := s.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: n=%d err=%v", len(list), err)
	}

	existed, err := s.Delete(ctx, e.ID)
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if _, ok, _ := s.Get(ctx, e.ID); ok {
		t.Fatalf("entry still present after delete")
	}

	// Reseed two days and clear everything.
	if _, err := s.Create(ctx, newEntry(t, day1)); err != nil {
		t.Fatalf("reseed day1: %v", err)
	}
	if _, err := s.Create(ctx, newEntry(t, day1.AddDate(0, 0, 1))); err != nil {
		t.Fatalf("reseed day2: %v", err)
	}
	n, err := s.DeleteAll(ctx)
	if err != nil || n != 2 {
		t.Fatalf("delete all: n=%d err=%v", n, err)
	}
	if list, _ := s.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty list")
	}
}
