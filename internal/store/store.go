package store

import (
	"fmt"

	"github.com/roach88/gradebook/internal/record"
)

// Store holds student records ordered by id with id and name indices.
type Store struct {
	byID      []*record.Record
	idIndex   map[int]*record.Record
	nameIndex map[string]*record.Record
}

// New creates an empty store.
func New() *Store {
	return &Store{
		byID:      []*record.Record{},
		idIndex:   make(map[int]*record.Record),
		nameIndex: make(map[string]*record.Record),
	}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.byID)
}

// All returns copies of every record in storage order (ascending id).
func (s *Store) All() []record.Record {
	out := make([]record.Record, len(s.byID))
	for i, r := range s.byID {
		out[i] = r.Clone()
	}
	return out
}

// checkInvariants verifies ordering and index lockstep.
// Used for testing.
func (s *Store) checkInvariants() error {
	if len(s.idIndex) != len(s.byID) {
		return fmt.Errorf("idIndex has %d entries, byID has %d", len(s.idIndex), len(s.byID))
	}
	for i, r := range s.byID {
		if i > 0 && s.byID[i-1].ID >= r.ID {
			return fmt.Errorf("byID not strictly ascending at %d: %d >= %d", i, s.byID[i-1].ID, r.ID)
		}
		if s.idIndex[r.ID] != r {
			return fmt.Errorf("idIndex[%d] does not point at byID[%d]", r.ID, i)
		}
		if r.Average != record.Average(r.Grades) {
			return fmt.Errorf("record %d: stale average %v", r.ID, r.Average)
		}
	}
	for key, r := range s.nameIndex {
		if s.idIndex[r.ID] != r {
			return fmt.Errorf("nameIndex[%q] points at removed record %d", key, r.ID)
		}
		if r.Key() != key {
			return fmt.Errorf("nameIndex[%q] points at record %d named %q", key, r.ID, r.Name)
		}
	}
	return nil
}
