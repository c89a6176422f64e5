package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qsafe/qloop/internal/compiler"
)

// ValidationResult is the output of the validate command.
type ValidationResult struct {
	File   string                     `json:"file"`
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command: static checks only,
// no evaluation and no assembly.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <loop.cue>",
		Short: "Statically validate a loop spec file",
		Long: "Compiles a CUE loop spec and runs the statically decidable checks:\n" +
			"registry membership, the iteration-count domain, and the\n" +
			"control-flow rule. Nothing is evaluated or assembled.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := LoadLoopFile(path)
	if err != nil {
		code := ErrCodeParse
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			code = loadErr.Code
		}
		formatter.Error(code, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	errs := compiler.Validate(spec)
	result := ValidationResult{File: path, Valid: len(errs) == 0, Errors: errs}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(w, "%s: valid\n", path)
		} else {
			fmt.Fprintf(w, "%s: invalid\n", path)
			for _, e := range errs {
				fmt.Fprintf(w, "  %s\n", e.Error())
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
	}
	return nil
}
