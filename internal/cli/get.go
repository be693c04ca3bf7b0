package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "get <id>",
		Short:         "Show one student record",
		Long:          `Show the record with the given id. Exits with code 1 if it does not exist.`,
		Args:          usageArgs(cobra.ExactArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	id, err := parseID(arg, f)
	if err != nil {
		return err
	}

	st, err := loadStore(commandContext(cmd), opts, f)
	if err != nil {
		return err
	}

	rec, ok := st.Get(id)
	if !ok {
		return notFound(id, f)
	}

	if opts.Format == "json" {
		return f.Success(rec)
	}
	writeRecord(f.Writer, rec)
	return nil
}
