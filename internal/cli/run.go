package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qsafe/qloop/internal/compiler"
	"github.com/qsafe/qloop/internal/loop"
	"github.com/qsafe/qloop/internal/rules"
	"github.com/qsafe/qloop/internal/store"
)

// RunResult is the output of the run command.
type RunResult struct {
	File        string         `json:"file"`
	Function    string         `json:"function"`
	Iterations  int            `json:"iterations"`
	RunToken    string         `json:"run_token,omitempty"`
	Outputs     []int64        `json:"outputs"`
	Composition map[string]any `json:"composition"`
}

// NewRunCommand creates the run command: the full pipeline from a CUE
// loop spec to an assembled composition.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var tracePath string

	cmd := &cobra.Command{
		Use:   "run <loop.cue>",
		Short: "Evaluate and assemble a loop spec",
		Long: "Loads a CUE loop spec, validates it, wraps the named builtin,\n" +
			"evaluates the probe inputs through the checked function, and\n" +
			"assembles the bounded repetition. With --trace, every probe\n" +
			"evaluation is recorded in a SQLite database under a fresh run\n" +
			"token.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, args[0], tracePath)
		},
	}

	cmd.Flags().StringVar(&tracePath, "trace", "", "SQLite database to record evaluations in")
	return cmd
}

func runRun(cmd *cobra.Command, opts *RootOptions, path, tracePath string) error {
	ctx := cmd.Context()
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

	if errs := compiler.Validate(spec); len(errs) > 0 {
		formatter.Error(ErrCodeValidation, fmt.Sprintf("%s failed validation", path), errs)
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
	}

	var db *store.Store
	var runToken string
	if tracePath != "" {
		db, err = store.Open(tracePath)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		defer db.Close()
		runToken = uuid.Must(uuid.NewV7()).String()
		formatter.VerboseLog("tracing run %s to %s", runToken, tracePath)
	}

	fnSpec, err := compiler.LookupBuiltin(spec.Function)
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	safe, err := loop.Wrap(fnSpec)
	if err != nil {
		formatter.Error(ErrCodeViolation, err.Error(), violationDetails(err))
		return NewExitError(ExitFailure, err.Error())
	}

	outputs := []int64{}
	for seq, x := range spec.Inputs {
		y, evalErr := safe.Evaluate(x)

		if db != nil {
			ev := store.Evaluation{
				RunToken: runToken,
				FuncName: safe.Name(),
				Input:    x,
				Seq:      int64(seq),
			}
			if evalErr == nil {
				ev.OutputCase = store.OutputCaseSuccess
				ev.Output = y
			} else if v, ok := rules.AsViolation(evalErr); ok {
				ev.OutputCase = string(v.Code)
				ev.Violation = v.Error()
			} else {
				ev.OutputCase = "Error"
				ev.Violation = evalErr.Error()
			}
			if err := db.WriteEvaluation(ctx, ev); err != nil {
				formatter.Error(ErrCodeStore, err.Error(), nil)
				return NewExitError(ExitCommandError, err.Error())
			}
		}

		if evalErr != nil {
			formatter.Error(ErrCodeViolation, evalErr.Error(), violationDetails(evalErr))
			return NewExitError(ExitFailure, evalErr.Error())
		}
		outputs = append(outputs, y)
	}

	loopOpts := []loop.LoopOption{}
	if spec.UnitName != "" {
		loopOpts = append(loopOpts, loop.WithUnitName(spec.UnitName))
	}
	bounded, err := loop.NewBounded(spec.Iterations, safe, loopOpts...)
	if err != nil {
		formatter.Error(ErrCodeValidation, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	comp, err := bounded.Build()
	if err != nil {
		return WrapExitError(ExitCommandError, "build composition", err)
	}

	if opts.Format == "json" {
		return formatter.Success(RunResult{
			File:        path,
			Function:    safe.Name(),
			Iterations:  bounded.Iterations(),
			RunToken:    runToken,
			Outputs:     outputs,
			Composition: comp.Snapshot(),
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Function: %s\n", safe.Name())
	for i, x := range spec.Inputs {
		fmt.Fprintf(w, "  %s(%d) = %d\n", safe.Name(), x, outputs[i])
	}
	fmt.Fprintf(w, "Repetitions: %d\n", bounded.Iterations())
	if runToken != "" {
		fmt.Fprintf(w, "Run token: %s\n", runToken)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, comp.Draw())
	return nil
}

// violationDetails extracts structured details when err is a physical
// rule violation.
func violationDetails(err error) any {
	if v, ok := rules.AsViolation(err); ok {
		return v.Details
	}
	return nil
}
