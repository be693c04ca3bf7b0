package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidFile(t *testing.T) {
	file := sampleFile(t)

	out, _, err := runCLI(t, "validate", file)
	require.NoError(t, err)
	assert.Equal(t, "✓ "+file+" is valid\n", out)
}

func TestValidateDefaultsToDataFile(t *testing.T) {
	file := sampleFile(t)

	out, _, err := runCLI(t, "--file", file, "--format", "json", "validate")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, file, resp.Data.Path)
}

func TestValidateInvalidFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bad.json")
	content := `[
    {"student_id": "101", "name": "Alice", "grades": [90], "average": 90},
    {"student_id": 102, "name": "Bob", "grades": [80], "average": 80},
    {"student_id": 102, "name": "Bobby", "grades": [], "average": 0}
]`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	out, _, err := runCLI(t, "validate", file)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "✗ Validation failed: "+file)
	assert.Contains(t, out, "E105")
	assert.Contains(t, out, "student_id")
}

func TestValidateInvalidFileJSON(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dupes.yaml")
	content := `
- student_id: 1
  name: A
  grades: [1]
  average: 1
- student_id: 1
  name: B
  grades: []
  average: 0
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	out, _, err := runCLI(t, "--format", "json", "validate", file)
	require.Error(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "entries.1.student_id", resp.Data.Errors[0].Path)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidData, resp.Error.Code)
}

func TestValidateMissingFile(t *testing.T) {
	out, _, err := runCLI(t, "validate", filepath.Join(t.TempDir(), "none.json"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "read file")
}
