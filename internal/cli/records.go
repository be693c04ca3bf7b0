package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/persist"
	"github.com/roach88/gradebook/internal/record"
	"github.com/roach88/gradebook/internal/store"
)

// newFormatter builds the formatter every command writes through.
// Verbose logs go to stderr to avoid corrupting JSON.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute (tests calling RunE directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadStore reads the data file. A missing file yields an empty store.
func loadStore(ctx context.Context, opts *RootOptions, f *OutputFormatter) (*store.Store, error) {
	st, err := persist.Load(ctx, opts.File)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeIO, "failed to load data file", err)
	}
	slog.Debug("store loaded", "path", opts.File, "records", st.Len())
	return st, nil
}

// saveStore writes the full store back to the data file.
func saveStore(ctx context.Context, opts *RootOptions, st *store.Store, f *OutputFormatter) error {
	if err := persist.Save(ctx, st, opts.File); err != nil {
		return f.Fail(ExitCommandError, ErrCodeIO, "failed to save data file", err)
	}
	slog.Debug("store saved", "path", opts.File, "records", st.Len())
	return nil
}

// parseID parses a record id argument.
func parseID(arg string, f *OutputFormatter) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, f.Fail(ExitCommandError, ErrCodeInvalidArg, fmt.Sprintf("invalid id %q", arg), nil)
	}
	return id, nil
}

// parseGrades parses grade arguments. No arguments means no grades.
// Grades must be finite numbers.
func parseGrades(args []string, f *OutputFormatter) ([]float64, error) {
	grades := make([]float64, 0, len(args))
	for _, arg := range args {
		g, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil || math.IsNaN(g) || math.IsInf(g, 0) {
			return nil, f.Fail(ExitCommandError, ErrCodeInvalidArg, fmt.Sprintf("invalid grade %q", arg), nil)
		}
		grades = append(grades, g)
	}
	return grades, nil
}

// notFound reports a missing record (exit code 1).
func notFound(id int, f *OutputFormatter) error {
	return f.Fail(ExitFailure, ErrCodeRecordNotFound, fmt.Sprintf("record %d not found", id), nil)
}

// writeRecord prints one record in text form.
func writeRecord(w io.Writer, r record.Record) {
	fmt.Fprintf(w, "ID:      %d\n", r.ID)
	fmt.Fprintf(w, "Name:    %s\n", r.Name)
	fmt.Fprintf(w, "Grades:  %s\n", formatGrades(r.Grades))
	fmt.Fprintf(w, "Average: %.2f\n", r.Average)
}

// writeRecordTable prints records as aligned columns.
func writeRecordTable(w io.Writer, recs []record.Record) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAVERAGE\tGRADES")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", r.ID, r.Name, r.Average, formatGrades(r.Grades))
	}
	return tw.Flush()
}

// formatGrades renders grades as "90, 80", or "-" when there are none.
func formatGrades(grades []float64) string {
	if len(grades) == 0 {
		return "-"
	}
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.FormatFloat(g, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// usageArgs wraps a positional-args validator so argument count errors exit
// with ExitCommandError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}
