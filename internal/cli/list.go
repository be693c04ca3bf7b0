package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Sort string // overrides the configured ordering
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all records",
		Long: `List all records in a display ordering.

Orderings:
  id       ascending id (storage order)
  name     ascending name, ignoring case
  average  descending average; ties keep id order

The default comes from the config file (display.sort).`,
		Aliases:       []string{"ls"},
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", "", "ordering (id|name|average)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	sort := opts.Sort
	if sort == "" {
		sort = opts.RootOptions.Sort
	}
	criterion := store.ByID
	if sort != "" {
		c, err := store.ParseCriterion(sort)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeInvalidArg, "invalid --sort", err)
		}
		criterion = c
	}

	st, err := loadStore(commandContext(cmd), opts.RootOptions, f)
	if err != nil {
		return err
	}

	recs := st.OrderedView(criterion)
	if opts.Format == "json" {
		return f.Success(recs)
	}
	return writeRecordTable(f.Writer, recs)
}
