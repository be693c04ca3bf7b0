package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/gradebook/internal/store"
)

// Format identifies an on-disk encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatFor picks the format for a path by extension.
// Unknown extensions fall back to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Entry is the persisted form of one record.
// Field names match the files written by earlier versions of the tool.
type Entry struct {
	ID      int       `json:"student_id" yaml:"student_id"`
	Name    string    `json:"name" yaml:"name"`
	Grades  []float64 `json:"grades" yaml:"grades"`
	Average float64   `json:"average" yaml:"average"`
}

// Snapshot converts the store contents to entries in id order.
func Snapshot(st *store.Store) []Entry {
	all := st.All()
	entries := make([]Entry, 0, len(all))
	for _, r := range all {
		entries = append(entries, Entry{
			ID:      r.ID,
			Name:    r.Name,
			Grades:  r.Grades,
			Average: r.Average,
		})
	}
	return entries
}

// Build creates a store by adding entries in order.
// Entry averages are ignored. A duplicate id fails the whole build.
func Build(entries []Entry) (*store.Store, error) {
	st := store.New()
	for i, e := range entries {
		if _, err := st.Add(e.ID, e.Name, e.Grades); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return st, nil
}

// Save writes every record of st to path, replacing any existing content.
func Save(ctx context.Context, st *store.Store, path string) error {
	entries := Snapshot(st)

	var err error
	switch FormatFor(path) {
	case FormatSQLite:
		err = saveSQLite(ctx, path, entries)
	case FormatYAML:
		err = writeFile(ctx, path, entries, encodeYAML)
	default:
		err = writeFile(ctx, path, entries, encodeJSON)
	}
	if err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Load reads path and rebuilds a store from it.
// A missing file returns an empty store and no error.
func Load(ctx context.Context, path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.New(), nil
		}
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}

	entries, err := readEntries(ctx, path)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}

	st, err := Build(entries)
	if err != nil {
		return nil, &IOError{Op: "load", Path: path, Err: err}
	}
	return st, nil
}

// readEntries decodes all entries from an existing file.
func readEntries(ctx context.Context, path string) ([]Entry, error) {
	if FormatFor(path) == FormatSQLite {
		return loadSQLite(ctx, path)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if FormatFor(path) == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}
