package record

import (
	"slices"
	"strconv"
)

// Record is one student: identity, display name, grade series, and the
// average derived from the grades.
//
// Average is only written by New and SetGrades so it always matches Grades.
type Record struct {
	ID      int       `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Grades  []float64 `json:"grades" yaml:"grades"`
	Average float64   `json:"average" yaml:"average"`
}

// New creates a record and computes its average from grades.
// No validation is performed; an empty name or grade list is accepted.
func New(id int, name string, grades []float64) Record {
	r := Record{ID: id, Name: name}
	r.SetGrades(grades)
	return r
}

// SetGrades replaces the grade series and recomputes Average.
// The slice is copied so later changes by the caller do not leak in.
func (r *Record) SetGrades(grades []float64) {
	r.Grades = slices.Clone(grades)
	if r.Grades == nil {
		r.Grades = []float64{}
	}
	r.Average = Average(r.Grades)
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.Grades = slices.Clone(r.Grades)
	if r.Grades == nil {
		r.Grades = []float64{}
	}
	return r
}

// Key returns the normalized name used by name indices and searches.
func (r Record) Key() string {
	return Normalize(r.Name)
}

// Average returns the mean of grades rounded to two decimal places,
// or 0 for an empty series.
//
// Rounding is applied to the exact binary value of the mean, with exact
// halves going to the even digit: 87.625 becomes 87.62, 0.125 becomes 0.12.
func Average(grades []float64) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g
	}
	mean := sum / float64(len(grades))
	v, _ := strconv.ParseFloat(strconv.FormatFloat(mean, 'f', 2, 64), 64)
	return v
}
