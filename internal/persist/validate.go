package persist

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one problem found in a data file.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // e.g. "entries.2.student_id"
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks a JSON or YAML data file against the entry schema and
// reports duplicate ids. It returns nil when the file is valid.
// SQLite files are not supported.
func Validate(path string) []ValidationError {
	if FormatFor(path) == FormatSQLite {
		return []ValidationError{{Message: "validate supports JSON and YAML files only"}}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return []ValidationError{{Message: fmt.Sprintf("read file: %v", err)}}
	}

	if FormatFor(path) == FormatYAML {
		data, err = yamlToJSON(data)
		if err != nil {
			return []ValidationError{{Message: err.Error()}}
		}
	}

	if errs := validateSchema(path, data); len(errs) > 0 {
		return errs
	}
	return checkDuplicateIDs(data)
}

// validateSchema unifies the document with the embedded CUE schema.
func validateSchema(path string, data []byte) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("compile schema: %v", err)}}
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return convertCUEErrors(err)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return convertCUEErrors(err)
	}

	v := schema.FillPath(cue.ParsePath("entries"), doc)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return convertCUEErrors(err)
	}
	return nil
}

// convertCUEErrors flattens a CUE error list into ValidationErrors.
func convertCUEErrors(err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		out = append(out, ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Message: err.Error()})
	}
	return out
}

// checkDuplicateIDs reports every id that appears more than once.
func checkDuplicateIDs(data []byte) []ValidationError {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("decode entries: %v", err)}}
	}

	var out []ValidationError
	seen := make(map[int]int, len(entries))
	for i, e := range entries {
		if first, dup := seen[e.ID]; dup {
			out = append(out, ValidationError{
				Path:    fmt.Sprintf("entries.%d.student_id", i),
				Message: fmt.Sprintf("duplicate id %d (first at entries.%d)", e.ID, first),
			})
			continue
		}
		seen[e.ID] = i
	}
	return out
}

// yamlToJSON re-encodes a YAML document as JSON so one schema covers both.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc == nil {
		doc = []any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}
