package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gradebook/internal/persist"
)

func TestAddAndGet(t *testing.T) {
	file := filepath.Join(t.TempDir(), "students.json")

	out, _, err := runCLI(t, "--file", file, "add", "101", "Alice", "90", "80")
	require.NoError(t, err)
	assert.Equal(t, "Added record 101 (Alice), average 85.00\n", out)

	out, _, err = runCLI(t, "--file", file, "get", "101")
	require.NoError(t, err)
	assert.Equal(t, "ID:      101\nName:    Alice\nGrades:  90, 80\nAverage: 85.00\n", out)

	st, err := persist.Load(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())
}

func TestAddWithoutGrades(t *testing.T) {
	file := filepath.Join(t.TempDir(), "students.json")

	out, _, err := runCLI(t, "--file", file, "--format", "json", "add", "7", "Dana")
	require.NoError(t, err)

	rec := decodeRecord(t, out)
	assert.Equal(t, 7, rec.ID)
	assert.Empty(t, rec.Grades)
	assert.Equal(t, 0.0, rec.Average)
}

func TestAddDuplicate(t *testing.T) {
	file := sampleFile(t)
	before, err := os.ReadFile(file)
	require.NoError(t, err)

	out, _, err := runCLI(t, "--file", file, "add", "101", "Bob", "70")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "Error [E103]")
	assert.Contains(t, out, "record 101 already exists")

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "data file must be untouched")
}

func TestAddDuplicateJSON(t *testing.T) {
	out, _, err := runCLI(t, "--file", sampleFile(t), "--format", "json", "add", "102", "X")
	require.Error(t, err)
	assert.Equal(t, ErrCodeDuplicateID, decodeError(t, out).Code)
}

func TestBadArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut string
	}{
		{"id not a number", []string{"add", "abc", "Alice"}, `invalid id "abc"`},
		{"grade not a number", []string{"add", "1", "Alice", "90", "A+"}, `invalid grade "A+"`},
		{"grade NaN", []string{"add", "1", "Alice", "NaN"}, `invalid grade "NaN"`},
		{"grade infinite", []string{"add", "1", "Alice", "90", "Inf"}, `invalid grade "Inf"`},
		{"update grade infinite", []string{"update", "101", "Alice", "-inf"}, `invalid grade "-inf"`},
		{"update id", []string{"update", "1.5", "Alice"}, `invalid id "1.5"`},
		{"get id", []string{"get", "x"}, `invalid id "x"`},
		{"remove id", []string{"remove", ""}, `invalid id ""`},
		{"list sort", []string{"list", "--sort", "grade"}, "invalid --sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, append([]string{"--file", sampleFile(t)}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error [E101]")
			assert.Contains(t, out, tt.wantOut)
		})
	}
}

func TestNonFiniteGradeLeavesFileUntouched(t *testing.T) {
	file := sampleFile(t)
	before, err := os.ReadFile(file)
	require.NoError(t, err)

	out, _, err := runCLI(t, "--file", file, "--format", "json", "add", "104", "Dee", "nan")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeInvalidArg, decodeError(t, out).Code)

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestArgumentCount(t *testing.T) {
	for _, args := range [][]string{{"get"}, {"add", "1"}, {"remove", "1", "2"}, {"list", "extra"}, {"find"}} {
		_, _, err := runCLI(t, append([]string{"--file", sampleFile(t)}, args...)...)
		require.Error(t, err, "%v", args)
		assert.Equal(t, ExitCommandError, GetExitCode(err), "%v", args)
		assert.False(t, IsReported(err))
	}
}

func TestUpdate(t *testing.T) {
	file := sampleFile(t)

	out, _, err := runCLI(t, "--file", file, "update", "101", "Alice Smith", "100")
	require.NoError(t, err)
	assert.Equal(t, "Updated record 101 (Alice Smith), average 100.00\n", out)

	out, _, err = runCLI(t, "--file", file, "--format", "json", "get", "101")
	require.NoError(t, err)
	rec := decodeRecord(t, out)
	assert.Equal(t, "Alice Smith", rec.Name)
	assert.Equal(t, []float64{100}, rec.Grades)
	assert.Equal(t, 100.0, rec.Average)
}

func TestUpdateMissing(t *testing.T) {
	file := sampleFile(t)

	out, _, err := runCLI(t, "--file", file, "update", "999", "Nobody", "50")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E102]: record 999 not found")
}

func TestGetMissing(t *testing.T) {
	out, _, err := runCLI(t, "--file", sampleFile(t), "--format", "json", "get", "999")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	cliErr := decodeError(t, out)
	assert.Equal(t, ErrCodeRecordNotFound, cliErr.Code)
	assert.Equal(t, "record 999 not found", cliErr.Message)
}

func TestRemove(t *testing.T) {
	file := sampleFile(t)

	out, _, err := runCLI(t, "--file", file, "remove", "102")
	require.NoError(t, err)
	assert.Equal(t, "Removed record 102\n", out)

	// Idempotent: the second remove succeeds without touching the file.
	before, err := os.ReadFile(file)
	require.NoError(t, err)

	out, _, err = runCLI(t, "--file", file, "rm", "102")
	require.NoError(t, err)
	assert.Equal(t, "No record 102; nothing removed\n", out)

	after, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	out, _, err = runCLI(t, "--file", file, "--format", "json", "list")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 103}, recordIDs(decodeRecords(t, out)))
}

func TestFind(t *testing.T) {
	file := sampleFile(t)

	t.Run("id routing", func(t *testing.T) {
		out, _, err := runCLI(t, "--file", file, "--format", "json", "find", "102")
		require.NoError(t, err)
		recs := decodeRecords(t, out)
		require.Len(t, recs, 1)
		assert.Equal(t, "Bob", recs[0].Name)
	})

	t.Run("name prefix ignores case", func(t *testing.T) {
		out, _, err := runCLI(t, "--file", file, "--format", "json", "find", "CA")
		require.NoError(t, err)
		assert.Equal(t, []int{103}, recordIDs(decodeRecords(t, out)))
	})

	t.Run("no match", func(t *testing.T) {
		out, _, err := runCLI(t, "--file", file, "find", "zed")
		require.NoError(t, err)
		assert.Equal(t, "No records found.\n", out)

		out, _, err = runCLI(t, "--file", file, "--format", "json", "find", "999")
		require.NoError(t, err)
		assert.Empty(t, decodeRecords(t, out))
	})
}

func TestList(t *testing.T) {
	file := filepath.Join(t.TempDir(), "students.json")
	for _, args := range [][]string{
		{"add", "3", "carol", "85"},
		{"add", "1", "Alice", "90", "80"},
		{"add", "2", "Bob", "95"},
	} {
		_, _, err := runCLI(t, append([]string{"--file", file}, args...)...)
		require.NoError(t, err)
	}

	tests := []struct {
		sort string
		want []int
	}{
		{"", []int{1, 2, 3}},
		{"id", []int{1, 2, 3}},
		{"name", []int{1, 2, 3}},
		{"average", []int{2, 1, 3}},
		{"AVERAGE", []int{2, 1, 3}},
	}
	for _, tt := range tests {
		t.Run("sort_"+tt.sort, func(t *testing.T) {
			args := []string{"--file", file, "--format", "json", "list"}
			if tt.sort != "" {
				args = append(args, "--sort", tt.sort)
			}
			out, _, err := runCLI(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, recordIDs(decodeRecords(t, out)))
		})
	}
}

func TestListText(t *testing.T) {
	out, _, err := runCLI(t, "--file", sampleFile(t), "list")
	require.NoError(t, err)

	want := "" +
		"ID   NAME   AVERAGE  GRADES\n" +
		"101  Alice  85.00    90, 80\n" +
		"102  Bob    83.17    70.5, 88, 91\n" +
		"103  Carol  0.00     -\n"
	assert.Equal(t, want, out)
}

func TestListMissingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "none.json")

	out, _, err := runCLI(t, "--file", file, "list")
	require.NoError(t, err)
	assert.Equal(t, "No records found.\n", out)

	_, statErr := os.Stat(file)
	assert.True(t, os.IsNotExist(statErr), "read-only commands must not create the file")
}

func TestCorruptDataFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0644))

	out, _, err := runCLI(t, "--file", file, "--format", "json", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeIO, decodeError(t, out).Code)
}

func TestSaveConvertsFormats(t *testing.T) {
	src := sampleFile(t)
	dir := t.TempDir()

	for _, name := range []string{"copy.yaml", "copy.db", "copy.json"} {
		t.Run(name, func(t *testing.T) {
			dest := filepath.Join(dir, name)

			out, _, err := runCLI(t, "--file", src, "save", dest)
			require.NoError(t, err)
			assert.Equal(t, "Saved 3 record(s) to "+dest+"\n", out)

			out, _, err = runCLI(t, "--file", dest, "--format", "json", "list", "--sort", "average")
			require.NoError(t, err)
			recs := decodeRecords(t, out)
			assert.Equal(t, []int{101, 102, 103}, recordIDs(recs))
			assert.Equal(t, 83.17, recs[1].Average)
		})
	}
}

func TestSaveUnwritableDestination(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "dir", "out.json")

	out, _, err := runCLI(t, "--file", sampleFile(t), "save", dest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E104]")
}

// TestEndToEnd walks the add, duplicate, update, search, remove sequence
// through the command line.
func TestEndToEnd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "students.json")

	_, _, err := runCLI(t, "--file", file, "add", "101", "Alice", "90", "80")
	require.NoError(t, err)

	_, _, err = runCLI(t, "--file", file, "add", "101", "Bob", "70")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = runCLI(t, "--file", file, "update", "101", "Alice Smith", "100")
	require.NoError(t, err)

	out, _, err := runCLI(t, "--file", file, "--format", "json", "get", "101")
	require.NoError(t, err)
	rec := decodeRecord(t, out)
	assert.Equal(t, "Alice Smith", rec.Name)
	assert.Equal(t, 100.0, rec.Average)

	out, _, err = runCLI(t, "--file", file, "--format", "json", "find", "alice")
	require.NoError(t, err)
	assert.Equal(t, []int{101}, recordIDs(decodeRecords(t, out)))

	_, _, err = runCLI(t, "--file", file, "remove", "101")
	require.NoError(t, err)

	_, _, err = runCLI(t, "--file", file, "get", "101")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
