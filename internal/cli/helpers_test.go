package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/persist"
	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/testutil"
)

// runCLI clears GRADEBOOK_* variables and executes the root command.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	return execute(t, args...)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GRADEBOOK_FILE", "GRADEBOOK_SORT", "GRADEBOOK_FORMAT", "GRADEBOOK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

// execute runs the root command with args and returns stdout, stderr and
// the error from Execute.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// sampleFile saves the sample records to a JSON data file in a temp dir.
func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, persist.Save(context.Background(), testutil.SampleStore(t), path))
	return path
}

// decodeRecords parses a JSON success response carrying a record list.
func decodeRecords(t *testing.T, out string) []record.Record {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   []record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

// decodeRecord parses a JSON success response carrying one record.
func decodeRecord(t *testing.T, out string) record.Record {
	t.Helper()
	var resp struct {
		Status string        `json:"status"`
		Data   record.Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

// decodeError parses a JSON error response.
func decodeError(t *testing.T, out string) CLIError {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	return *resp.Error
}

func recordIDs(recs []record.Record) []int {
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	return ids
}
