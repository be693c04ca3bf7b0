package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/config"
)

// RootOptions holds global flags for all commands.
//
// PersistentPreRunE resolves File, Format and Sort against the config file
// and environment, so subcommands read the final values from here.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	File       string // data file; format follows the extension
	ConfigPath string
	Sort       string // default list ordering
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the gradebook CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "gradebook",
		Short: "gradebook - student grade records",
		Long: `Manage a file of student records: id, name, grades and the derived average.

Records are kept ordered by id and indexed by id and by name. Every
mutating command loads the data file, applies the change, and writes the
whole file back.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "data file (.json, .yaml, .db); overrides config")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+config.DefaultPath+" if present)")

	// Add subcommands
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewUpdateCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewFindCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewSaveCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve merges flags over the config file and environment, validates the
// result, and installs the process logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	path, required := o.ConfigPath, true
	if path == "" {
		path, required = config.DefaultPath, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if o.File == "" {
		o.File = cfg.Data.File
	}
	if !cmd.Flags().Changed("format") {
		o.Format = cfg.Display.Format
	}
	o.Sort = cfg.Display.Sort

	// Validate format flag
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	// Configure logging based on config level and verbose flag
	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler).With("run_id", uuid.Must(uuid.NewV7()).String()))

	slog.Debug("configuration resolved", "config", path, "file", o.File, "format", o.Format, "sort", o.Sort)
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
