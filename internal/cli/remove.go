package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// RemoveResult is the JSON payload of the remove command.
type RemoveResult struct {
	ID      int  `json:"id"`
	Removed bool `json:"removed"` // false when no record had the id
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a student record",
		Long: `Remove the record with the given id and save the data file.

Removing an id that does not exist succeeds and leaves the file untouched.`,
		Aliases:       []string{"rm"},
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	id, err := parseID(arg, f)
	if err != nil {
		return err
	}

	st, err := loadStore(ctx, opts, f)
	if err != nil {
		return err
	}

	_, exists := st.Get(id)
	if exists {
		st.Remove(id)
		slog.Debug("record removed", "id", id)
		if err := saveStore(ctx, opts, st, f); err != nil {
			return err
		}
	}

	if opts.Format == "json" {
		return f.Success(RemoveResult{ID: id, Removed: exists})
	}
	if exists {
		fmt.Fprintf(f.Writer, "Removed record %d\n", id)
	} else {
		fmt.Fprintf(f.Writer, "No record %d; nothing removed\n", id)
	}
	return nil
}
