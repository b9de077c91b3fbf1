package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/hephbuild/lockbench/internal/bench"
	"github.com/hephbuild/lockbench/internal/hcore/hlog"
	"github.com/spf13/cobra"
)

func init() {
	var runs int
	var warmup int
	var budget uint64
	var threads int
	var trace bool
	var lockOSThread bool
	var only protocols

	var runCmd = &cobra.Command{
		Use:   "run [trial...]",
		Short: "Run trials and report their timings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := hlog.From(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("runs") {
				cfg.Runs = runs
			}
			if flags.Changed("warmup") {
				cfg.Warmup = warmup
			}

			trials, err := cfg.Select(args)
			if err != nil {
				return err
			}

			if len(only) > 0 {
				trials = slices.DeleteFunc(trials, func(t bench.Trial) bool {
					return !slices.Contains(only, t.Protocol)
				})
			}

			for i := range trials {
				if flags.Changed("budget") {
					trials[i].Budget = budget
				}
				if flags.Changed("threads") {
					trials[i].Threads = threads
				}
				if flags.Changed("lock-os-thread") {
					trials[i].Options.LockOSThread = lockOSThread
				}
			}

			if len(trials) == 0 {
				return fmt.Errorf("no trial selected")
			}

			for _, t := range trials {
				logger.Info(fmt.Sprintf("%v: protocol=%v budget=%v threads=%v", t.Name, t.Protocol, t.Budget, t.Threads))
			}

			// trials only ever see the trace sink
			trialCtx := hlog.ContextWithLogger(ctx, hlog.NewTraceLogger(os.Stdout, trace))

			results, err := bench.Measure(trialCtx, cfg, trials)
			if err != nil {
				return err
			}

			return bench.WriteReport(os.Stdout, results, bench.ReportOptions{Plain: plain})
		},
	}

	runCmd.Flags().IntVar(&runs, "runs", 0, "measured runs per trial (default from config)")
	runCmd.Flags().IntVar(&warmup, "warmup", 0, "warmup runs per trial (default from config)")
	runCmd.Flags().Uint64Var(&budget, "budget", bench.DefaultBudget, "override the step budget of every trial")
	runCmd.Flags().IntVar(&threads, "threads", bench.DefaultThreads, "override the worker count of every trial")
	runCmd.Flags().BoolVar(&lockOSThread, "lock-os-thread", false, "pin every worker to an OS thread")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print timestamped trace lines for every attempt")
	runCmd.Flags().AddFlag(NewProtocolsFlag(&only, "protocol", "p", "only run trials using these protocols"))

	rootCmd.AddCommand(runCmd)
}
