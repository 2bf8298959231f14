package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/specbecause/internal/harness"
)

// ValidationIssue is one scenario file that failed to load.
type ValidationIssue struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Scenarios int               `json:"scenarios"`
	Errors    []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenarios without running them",
		Long: `Parse and validate every scenario file in a directory.

Rejects malformed YAML, unknown fields, unknown ops and outcomes, and
missing required fields. Nothing is executed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	files, err := FindScenarioFiles(dir, "")
	if err != nil {
		return loadErrorExit(formatter, err)
	}
	if len(files) == 0 {
		if err := formatter.Error(ErrCodeNoFiles, fmt.Sprintf("no scenario files found in %s", dir), nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, "no scenario files found")
	}

	formatter.VerboseLog("Found %d scenario file(s) in %s", len(files), dir)

	result := ValidationResult{Scenarios: len(files)}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		if _, err := harness.LoadScenario(file); err != nil {
			result.Errors = append(result.Errors, ValidationIssue{
				File:    filepath.Base(file),
				Code:    ErrCodeLoadFailed,
				Message: err.Error(),
			})
		}
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.Error(ErrCodeLoadFailed, fmt.Sprintf("%d scenario(s) invalid", len(result.Errors)), result.Errors); err != nil {
				return err
			}
		} else {
			w := cmd.OutOrStdout()
			for _, issue := range result.Errors {
				fmt.Fprintf(w, "✗ %s\n  [%s] %s\n", issue.File, issue.Code, issue.Message)
			}
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) invalid", len(result.Errors)))
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("✓ %d scenario(s) valid", result.Scenarios))
}
