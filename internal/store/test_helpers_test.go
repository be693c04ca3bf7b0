package store

import (
	"testing"

	"github.com/roach88/gradebook/internal/record"
)

// createTestStore creates a store seeded with the given records.
// Fails the test if any seed id is duplicated.
func createTestStore(t *testing.T, seed ...record.Record) *Store {
	t.Helper()
	s := New()
	for _, r := range seed {
		if _, err := s.Add(r.ID, r.Name, r.Grades); err != nil {
			t.Fatalf("Add(%d) failed: %v", r.ID, err)
		}
	}
	return s
}

// assertInvariants fails the test if ordering or index lockstep is broken.
func assertInvariants(t *testing.T, s *Store) {
	t.Helper()
	if err := s.checkInvariants(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

// ids returns the ids of records in order.
func ids(recs []record.Record) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}
