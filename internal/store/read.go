package store

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/gradebook/internal/record"
)

// Criterion selects a display ordering for OrderedView.
type Criterion string

const (
	// ByID orders by id ascending (storage order).
	ByID Criterion = "id"

	// ByName orders by normalized name ascending.
	ByName Criterion = "name"

	// ByAverage orders by average descending.
	ByAverage Criterion = "average"
)

// Criteria lists the accepted orderings.
var Criteria = []Criterion{ByID, ByName, ByAverage}

// ParseCriterion converts a user-supplied ordering name to a Criterion.
// Matching is case-insensitive.
func ParseCriterion(s string) (Criterion, error) {
	c := Criterion(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Criteria, c) {
		return c, nil
	}
	return "", fmt.Errorf("invalid sort criterion %q: must be one of %v", s, Criteria)
}

// Get returns the record with the given id using the id index.
func (s *Store) Get(id int) (record.Record, bool) {
	rec, ok := s.idIndex[id]
	if !ok {
		return record.Record{}, false
	}
	return rec.Clone(), true
}

// FindOrdered returns the record with the given id by binary search over
// the id-ordered slice. It agrees with Get for every id.
func (s *Store) FindOrdered(id int) (record.Record, bool) {
	lo, hi := 0, len(s.byID)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch midID := s.byID[mid].ID; {
		case midID == id:
			return s.byID[mid].Clone(), true
		case midID > id:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	return record.Record{}, false
}

// LookupName returns the record holding the name index slot for name.
// When several records share a normalized name only the most recently
// added or renamed one is returned; use FindByName to see all of them.
func (s *Store) LookupName(name string) (record.Record, bool) {
	rec, ok := s.nameIndex[record.Normalize(name)]
	if !ok {
		return record.Record{}, false
	}
	return rec.Clone(), true
}

// FindByName searches by id or by name.
//
// A query that parses as an integer is treated as an id and looked up with
// FindOrdered, even if some record's name is that same digit string.
// Any other query is normalized and matched against every normalized name:
// equal names and names starting with the query are returned in id order.
//
// The result is never nil; no match yields an empty slice.
func (s *Store) FindByName(query string) []record.Record {
	q := strings.TrimSpace(query)
	if id, err := strconv.Atoi(q); err == nil {
		if r, ok := s.FindOrdered(id); ok {
			return []record.Record{r}
		}
		return []record.Record{}
	}

	key := record.Normalize(q)
	out := []record.Record{}
	for _, rec := range s.byID {
		if strings.HasPrefix(rec.Key(), key) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// OrderedView returns copies of all records sorted for display.
// Storage order is never changed. Sorting is stable, so records that
// compare equal keep their id order.
func (s *Store) OrderedView(c Criterion) []record.Record {
	out := s.All()
	switch c {
	case ByName:
		slices.SortStableFunc(out, func(a, b record.Record) int {
			return strings.Compare(a.Key(), b.Key())
		})
	case ByAverage:
		slices.SortStableFunc(out, func(a, b record.Record) int {
			return cmp.Compare(b.Average, a.Average)
		})
	}
	return out
}
