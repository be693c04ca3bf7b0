package store

import (
	"cmp"
	"slices"

	"github.com/roach88/gradebook/internal/record"
)

// Add creates a record and inserts it in id order.
//
// Returns *DuplicateKeyError, with no state change, if id already exists.
// The name index slot for the record's normalized name is overwritten even
// if another record currently holds it.
func (s *Store) Add(id int, name string, grades []float64) (record.Record, error) {
	if _, exists := s.idIndex[id]; exists {
		return record.Record{}, &DuplicateKeyError{ID: id}
	}

	r := record.New(id, name, grades)
	rec := &r

	pos, _ := s.insertPos(id)
	s.byID = slices.Insert(s.byID, pos, rec)
	s.idIndex[id] = rec
	s.nameIndex[rec.Key()] = rec

	return rec.Clone(), nil
}

// Remove deletes the record with the given id.
// Removing an absent id is a no-op.
func (s *Store) Remove(id int) {
	rec, ok := s.idIndex[id]
	if !ok {
		return
	}

	if pos, found := s.insertPos(id); found {
		s.byID = slices.Delete(s.byID, pos, pos+1)
	}
	delete(s.idIndex, id)
	s.unlinkName(rec)
}

// Update replaces the name and grades of an existing record and recomputes
// its average. The record keeps its id and therefore its position.
//
// Returns false if no record has the given id.
func (s *Store) Update(id int, name string, grades []float64) bool {
	rec, ok := s.idIndex[id]
	if !ok {
		return false
	}

	s.unlinkName(rec)
	rec.Name = name
	rec.SetGrades(grades)
	s.nameIndex[rec.Key()] = rec

	return true
}

// unlinkName drops rec's name index entry if rec still owns the slot.
// A slot taken over by a later record with the same normalized name is left alone.
func (s *Store) unlinkName(rec *record.Record) {
	key := rec.Key()
	if s.nameIndex[key] == rec {
		delete(s.nameIndex, key)
	}
}

// insertPos returns the position of id in byID, or where it would be inserted.
func (s *Store) insertPos(id int) (int, bool) {
	return slices.BinarySearchFunc(s.byID, id, func(r *record.Record, target int) int {
		return cmp.Compare(r.ID, target)
	})
}
