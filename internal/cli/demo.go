package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qsafe/qloop/internal/compiler"
	"github.com/qsafe/qloop/internal/loop"
)

// NewDemoCommand creates the demo command: the canonical end-to-end
// walkthrough with the builtin xor_one function.
func NewDemoCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in xor_one walkthrough",
		Long: "Wraps the builtin xor_one function, probes it on inputs 0 and 1,\n" +
			"assembles a bounded repetition of 3, and draws the result.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}
	return cmd
}

func runDemo(cmd *cobra.Command, opts *RootOptions) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	spec, err := compiler.LookupBuiltin("xor_one")
	if err != nil {
		return WrapExitError(ExitCommandError, "builtin registry", err)
	}

	formatter.VerboseLog("wrapping %s", spec.Name)
	safe, err := loop.Wrap(spec)
	if err != nil {
		formatter.Error(ErrCodeViolation, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	type probe struct {
		Input  int64 `json:"input"`
		Output int64 `json:"output"`
	}
	probes := []probe{}
	for _, x := range []int64{0, 1} {
		y, err := safe.Evaluate(x)
		if err != nil {
			formatter.Error(ErrCodeViolation, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		probes = append(probes, probe{Input: x, Output: y})
	}

	bounded, err := loop.NewBounded(3, safe)
	if err != nil {
		return WrapExitError(ExitCommandError, "bounded loop", err)
	}
	comp, err := bounded.Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "build composition", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"function":    safe.Name(),
			"probes":      probes,
			"iterations":  bounded.Iterations(),
			"composition": comp.Snapshot(),
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Function: %s\n", safe.Name())
	for _, p := range probes {
		fmt.Fprintf(w, "  %s(%d) = %d\n", safe.Name(), p.Input, p.Output)
	}
	fmt.Fprintf(w, "Repetitions: %d\n\n", bounded.Iterations())
	fmt.Fprint(w, comp.Draw())
	return nil
}
