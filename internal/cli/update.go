package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id> <name> [grade...]",
		Short: "Replace a record's name and grades",
		Long: `Replace the name and the full grade list of an existing record, then
save the data file. The average is recomputed.

Exits with code 1 if no record has the id.

Example:
  gradebook update 101 "Alice Smith" 100`,
		Args:          usageArgs(cobra.MinimumNArgs(2)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runUpdate(opts *RootOptions, args []string, cmd *cobra.Command) error {
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

	if !st.Update(id, args[1], grades) {
		return notFound(id, f)
	}
	rec, _ := st.Get(id)
	slog.Debug("record updated", "id", rec.ID, "average", rec.Average)

	if err := saveStore(ctx, opts, st, f); err != nil {
		return err
	}

	if opts.Format == "json" {
		return f.Success(rec)
	}
	fmt.Fprintf(f.Writer, "Updated record %d (%s), average %.2f\n", rec.ID, rec.Name, rec.Average)
	return nil
}
