package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace formats a trace as the golden file text: a header line with
// the scenario name followed by one line per event.
func RenderTrace(scenarioName string, trace []TraceEvent) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", scenarioName)
	for _, e := range trace {
		fmt.Fprintf(&b, "%03d %s %s -> %s\n", e.Seq, e.Op, e.Args, formatOutcome(e))
	}
	return []byte(b.String())
}

// formatArgs renders the inputs a step uses.
func formatArgs(s Step) string {
	switch s.Op {
	case OpAdd, OpUpdate:
		return fmt.Sprintf("id=%d name=%q grades=%v", *s.ID, s.Name, s.Grades)
	case OpRemove, OpGet, OpFindOrdered:
		return fmt.Sprintf("id=%d", *s.ID)
	case OpLookup:
		return fmt.Sprintf("name=%q", s.Name)
	case OpFind:
		return fmt.Sprintf("query=%q", *s.Query)
	case OpList:
		sort := s.Sort
		if sort == "" {
			sort = "id"
		}
		return "sort=" + sort
	case OpReload:
		format := s.Format
		if format == "" {
			format = "json"
		}
		return "format=" + format
	}
	return ""
}

// formatOutcome renders outcome, returned record, returned ids and size.
func formatOutcome(e TraceEvent) string {
	var b strings.Builder
	b.WriteString(e.Outcome)
	if e.Record != nil {
		fmt.Fprintf(&b, " id=%d name=%q average=%s", e.Record.ID, e.Record.Name,
			strconv.FormatFloat(e.Record.Average, 'f', -1, 64))
	}
	if e.IDs != nil {
		fmt.Fprintf(&b, " ids=%v", e.IDs)
	}
	fmt.Fprintf(&b, " size=%d", e.Size)
	return b.String()
}

// GoldenPath returns the golden file for a scenario file: golden/<base>.golden
// next to the scenario.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// WriteGolden writes the rendered trace to goldenPath, creating the directory.
func WriteGolden(goldenPath string, scenario *Scenario, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, RenderTrace(scenario.Name, result.Trace), 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// MatchGolden reports whether the rendered trace equals goldenPath's content.
func MatchGolden(goldenPath string, scenario *Scenario, result *Result) (bool, error) {
	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return string(want) == string(RenderTrace(scenario.Name, result.Trace)), nil
}

// RunWithGolden executes a scenario and compares the trace against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, RenderTrace(scenarioName, result.Trace))
}
