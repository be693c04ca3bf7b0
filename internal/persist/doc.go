// Package persist saves and loads whole store snapshots.
//
// A snapshot is the list of records in ascending id order. Save always
// rewrites the entire destination; there is no append mode and no backup
// of the previous version. Load rebuilds a store by calling store.Add for
// each entry in file order, so ids must be unique in the file and the
// stored average is ignored (it is recomputed from grades).
//
// # Formats
//
// The format is chosen from the file extension:
//   - .json (and any unknown extension): indented JSON array, the canonical flat file
//   - .yaml, .yml: YAML sequence with the same field names
//   - .db, .sqlite, .sqlite3: SQLite database with a single records table
//
// JSON and YAML files are written through renameio: the new content is
// written to a temporary file and renamed over the destination, so a failed
// save leaves the old file in place.
//
// # Errors
//
// A missing file on Load is not an error and yields an empty store.
// Every other failure (permissions, malformed content, duplicate ids) is
// returned as *IOError.
package persist
