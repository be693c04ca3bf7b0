package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gradebook/internal/persist"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Path   string                    `json:"path"`
	Valid  bool                      `json:"valid"`
	Errors []persist.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a data file against the record schema",
		Long: `Check a JSON or YAML data file without loading it into the store.

Every entry needs an integer student_id, a string name, a list of numeric
grades and a numeric average. Duplicate ids are reported as well.
Defaults to the configured data file.`,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.File
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	formatter.VerboseLog("Validating %s (%s)", path, persist.FormatFor(path))

	errs := persist.Validate(path)
	if len(errs) > 0 {
		return outputValidationErrors(formatter, path, errs)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Path: path, Valid: true})
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, path string, errs []persist.ValidationError) error {
	exitErr := &ExitError{
		Code:     ExitFailure,
		Message:  fmt.Sprintf("validation failed with %d error(s)", len(errs)),
		Reported: true,
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Path:   path,
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    ErrCodeInvalidData,
				Message: errs[0].Error(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	// Text format
	fmt.Fprintf(formatter.Writer, "✗ Validation failed: %s\n", path)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeInvalidData, e.Error())
	}
	return exitErr
}
