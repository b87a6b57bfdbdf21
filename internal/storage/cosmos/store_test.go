package cosmos

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/tinoosan/journal/internal/journal"
)

// The Cosmos tests need a reachable account (or emulator) and ambient
// Azure credentials, so they run only when the environment provides one.
func getTestStore(t *testing.T) *Store {
	t.Helper()
	endpoint := os.Getenv("TEST_COSMOS_ENDPOINT")
	database := os.Getenv("TEST_COSMOS_DATABASE_NAME")
	if endpoint == "" || database == "" {
		t.Skip("TEST_COSMOS_ENDPOINT / TEST_COSMOS_DATABASE_NAME not set; skipping Cosmos store tests")
	}
	container := os.Getenv("TEST_COSMOS_CONTAINER_NAME")
	if container == "" {
		container = "entries"
	}
	s, err := Open(endpoint, database, container)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestStore_EntryLifecycle(t *testing.T) {
	s := getTestStore(t)
	defer s.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Ready(ctx); err != nil {
		t.Fatalf("ready: %v", err)
	}
	if _, err := s.DeleteAll(ctx); err != nil {
		t.Fatalf("clear container: %v", err)
	}

	e, err := journal.New(journal.Input{Work: "Studied FastAPI", Struggle: "async", Intention: "Practice SQL"})
	if err != nil {
		t.Fatalf("new entry: %v", err)
	}
	if _, err := s.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok, err := s.Get(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Work != e.Work || got.ID != e.ID {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	work := "Read docs"
	updated, ok, err := s.Update(ctx, e.ID, journal.Patch{Work: &work})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if updated.Work != "Read docs" || updated.Struggle != e.Struggle {
		t.Fatalf("update mismatch: %+v", updated)
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
	if existed, _ := s.Delete(ctx, e.ID); existed {
		t.Fatalf("second delete should report absent")
	}
}
