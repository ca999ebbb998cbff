package state

import (
	"context"
	"testing"
	"time"
)

// exerciseStore runs the shared Store contract against s.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := KeyFor("session-1")

	got, err := s.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load(missing): %v", err)
	}
	if got.CSVDone || len(got.Orders) != 0 {
		t.Errorf("Load(missing) = %+v, want Default", got)
	}

	want := Default().WithOrders("x.csv", map[string]int{"choco": 5})
	if err := s.Save(ctx, key, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = s.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.CSVDone || got.Orders["choco"] != 5 {
		t.Errorf("Load = %+v, want saved state", got)
	}

	// overwrite
	if err := s.Save(ctx, key, got.WithStock(map[string]int{"choco": 2})); err != nil {
		t.Fatalf("Save(overwrite): %v", err)
	}
	got, _ = s.Load(ctx, key)
	if got.Stock["choco"] != 2 {
		t.Errorf("Stock[choco] = %d, want 2", got.Stock["choco"])
	}

	// other sessions are untouched
	other, _ := s.Load(ctx, KeyFor("session-2"))
	if other.CSVDone {
		t.Error("state leaked across sessions")
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ = s.Load(ctx, key)
	if got.CSVDone {
		t.Error("Load after Delete returned saved state")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Corrupt(t *testing.T) {
	m := NewMemoryStore()
	m.Put(Key, []byte("not json"))

	got, err := m.Load(context.Background(), Key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CSVDone || len(got.Orders) != 0 {
		t.Errorf("Load(corrupt) = %+v, want Default", got)
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMemoryStore().Load(ctx, Key); err == nil {
		t.Error("Load with canceled context returned nil error")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	exerciseStore(t, s)
}

func TestSQLiteStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if err := s.putRaw(ctx, Key, "{broken"); err != nil {
		t.Fatalf("putRaw: %v", err)
	}
	got, err := s.Load(ctx, Key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CSVDone || len(got.Orders) != 0 {
		t.Errorf("Load(corrupt) = %+v, want Default", got)
	}
}

func exercisePurge(t *testing.T, s interface {
	Store
	Purger
}) {
	t.Helper()
	ctx := context.Background()

	if err := s.Save(ctx, KeyFor("a"), Default().WithStockDone(true)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	n, err := s.PurgeBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("PurgeBefore(past): %v", err)
	}
	if n != 0 {
		t.Errorf("PurgeBefore(past) removed %d, want 0", n)
	}

	n, err = s.PurgeBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PurgeBefore(future): %v", err)
	}
	if n != 1 {
		t.Errorf("PurgeBefore(future) removed %d, want 1", n)
	}
	got, _ := s.Load(ctx, KeyFor("a"))
	if got.StockDone {
		t.Error("purged state still loads")
	}
}

func TestMemoryStore_Purge(t *testing.T) {
	exercisePurge(t, NewMemoryStore())
}

func TestSQLiteStore_Purge(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	exercisePurge(t, s)
}
