package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/store"
)

// SampleRecords returns three records in non-id order.
//
//	101 Alice [90 80]        average 85
//	102 Bob   [70.5 88 91]   average 83.17
//	103 Carol []             average 0
func SampleRecords() []record.Record {
	return []record.Record{
		record.New(103, "Carol", nil),
		record.New(101, "Alice", []float64{90, 80}),
		record.New(102, "Bob", []float64{70.5, 88, 91}),
	}
}

// NewStore creates a store seeded with recs, failing the test on a duplicate id.
func NewStore(t testing.TB, recs ...record.Record) *store.Store {
	t.Helper()
	st := store.New()
	for _, r := range recs {
		if _, err := st.Add(r.ID, r.Name, r.Grades); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
	return st
}

// SampleStore is NewStore(t, SampleRecords()...).
func SampleStore(t testing.TB) *store.Store {
	t.Helper()
	return NewStore(t, SampleRecords()...)
}

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
