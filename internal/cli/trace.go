package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qsafe/qloop/internal/store"
)

// NewTraceCommand creates the trace command: inspection of a recorded
// evaluation trace database.
func NewTraceCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <trace.db> [run-token]",
		Short: "Inspect a recorded evaluation trace",
		Long: "Without a run token, lists the run tokens recorded in the database,\n" +
			"most recent first. With a run token, prints that run's evaluations\n" +
			"in order.",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runToken := ""
			if len(args) == 2 {
				runToken = args[1]
			}
			return runTrace(cmd, opts, args[0], runToken)
		},
	}
	return cmd
}

func runTrace(cmd *cobra.Command, opts *RootOptions, path, runToken string) error {
	ctx := cmd.Context()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		msg := fmt.Sprintf("trace database not found: %s", path)
		formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	db, err := store.Open(path)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	defer db.Close()

	if runToken == "" {
		runs, err := db.ListRuns(ctx)
		if err != nil {
			formatter.Error(ErrCodeStore, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}

		if opts.Format == "json" {
			return formatter.Success(map[string]any{"runs": runs})
		}
		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "no runs recorded")
			return nil
		}
		for _, token := range runs {
			fmt.Fprintln(w, token)
		}
		return nil
	}

	evaluations, err := db.ReadRun(ctx, runToken)
	if err != nil {
		formatter.Error(ErrCodeStore, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{
			"run_token":   runToken,
			"evaluations": evaluations,
		})
	}

	w := cmd.OutOrStdout()
	if len(evaluations) == 0 {
		fmt.Fprintf(w, "no evaluations for run %s\n", runToken)
		return nil
	}
	for _, ev := range evaluations {
		if ev.OutputCase == store.OutputCaseSuccess {
			fmt.Fprintf(w, "%3d  %s(%d) = %d\n", ev.Seq, ev.FuncName, ev.Input, ev.Output)
		} else {
			fmt.Fprintf(w, "%3d  %s(%d) -> %s\n", ev.Seq, ev.FuncName, ev.Input, ev.OutputCase)
		}
	}
	return nil
}
