package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/persist"
)

// SaveResult is the JSON payload of the save command.
type SaveResult struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <dest>",
		Short: "Write the records to another file",
		Long: `Load the data file and write every record to dest.

The format of dest follows its extension (.json, .yaml/.yml, .db/.sqlite),
so save also converts between formats. An existing dest is overwritten.

Example:
  gradebook --file students.json save backup.db`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSave(opts *RootOptions, dest string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	st, err := loadStore(ctx, opts, f)
	if err != nil {
		return err
	}

	if err := persist.Save(ctx, st, dest); err != nil {
		return f.Fail(ExitCommandError, ErrCodeIO, "failed to save", err)
	}
	slog.Info("records saved", "path", dest, "format", persist.FormatFor(dest), "records", st.Len())

	if opts.Format == "json" {
		return f.Success(SaveResult{Path: dest, Records: st.Len()})
	}
	fmt.Fprintf(f.Writer, "Saved %d record(s) to %s\n", st.Len(), dest)
	return nil
}
