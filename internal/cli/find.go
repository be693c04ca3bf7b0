package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search records by id or name",
		Long: `Search records by id or name.

A query that is an integer is looked up as an id. Any other query matches
records whose name starts with it, ignoring case. Results are in id order.
No match is not an error.

Examples:
  gradebook find 101
  gradebook find ali`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runFind(opts *RootOptions, query string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	st, err := loadStore(commandContext(cmd), opts, f)
	if err != nil {
		return err
	}

	recs := st.FindByName(query)
	slog.Debug("search finished", "query", query, "matches", len(recs))

	if opts.Format == "json" {
		return f.Success(recs)
	}
	return writeRecordTable(f.Writer, recs)
}
