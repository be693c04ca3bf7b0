package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// encodeFunc writes entries to w in one format.
type encodeFunc func(w io.Writer, entries []Entry) error

// writeFile replaces path with the encoded entries.
// The destination is only replaced if encoding and flushing both succeed.
func writeFile(ctx context.Context, path string, entries []Entry, encode encodeFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer func() { _ = f.Cleanup() }()

	if err := encode(f, entries); err != nil {
		return err
	}
	return f.CloseAtomicallyReplace()
}

// encodeJSON writes an indented JSON array with a trailing newline.
func encodeJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false) // names are written verbatim
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// decodeJSON parses a JSON array of entries.
// Unknown fields and any value after the array are rejected so a file in
// the wrong shape is not half-read.
func decodeJSON(data []byte) ([]Entry, error) {
	var entries []Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("decode json: trailing content after entries")
	}
	return entries, nil
}

// encodeYAML writes a YAML sequence of entries.
func encodeYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// decodeYAML parses a YAML sequence of entries with strict field checking.
// An empty document decodes to no entries; a second document is an error.
func decodeYAML(data []byte) ([]Entry, error) {
	var entries []Entry
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&entries); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("decode yaml: trailing content after entries")
	}
	return entries, nil
}
