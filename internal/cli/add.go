package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/store"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id> <name> [grade...]",
		Short: "Add a student record",
		Long: `Add a student record and save the data file.

The average is computed from the grades. Fails with exit code 2 if a
record with the same id already exists.

Example:
  gradebook add 101 Alice 90 80`,
		Args:          usageArgs(cobra.MinimumNArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runAdd(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	id, err := parseID(args[0], f)
	if err != nil {
		return err
	}
	grades, err := parseGrades(args[2:], f)
	if err != nil {
		return err
	}

	st, err := loadStore(ctx, opts, f)
	if err != nil {
		return err
	}

	rec, err := st.Add(id, args[1], grades)
	if store.IsDuplicateKey(err) {
		return f.Fail(ExitCommandError, ErrCodeDuplicateID, fmt.Sprintf("record %d already exists", id), nil)
	}
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "add failed", err)
	}
	slog.Debug("record added", "id", rec.ID, "average", rec.Average)

	if err := saveStore(ctx, opts, st, f); err != nil {
		return err
	}

	if opts.Format == "json" {
		return f.Success(rec)
	}
	fmt.Fprintf(f.Writer, "Added record %d (%s), average %.2f\n", rec.ID, rec.Name, rec.Average)
	return nil
}
