package main

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/plystack/laminate/internal/applog"
)

// runCtx bundles the state every subcommand's RunE needs: the job-config
// path, the --verbose flag, and the resolved logger (which carries this
// invocation's run ID as a field).
type runCtx struct {
	configPath string
	verbose    bool
	logger     *logrus.Entry
}

func newRootCmd() *cobra.Command {
	rc := &runCtx{}

	root := &cobra.Command{
		Use:   "stacker",
		Short: "Composite laminate ply stacking sequence designer",
		Long: `stacker designs ply stacking sequences for multi-zone composite
laminate panels: it evaluates a sequence against eight aerospace
lamination rules, optimizes a single zone from target per-angle ply
counts, drops a parent sequence down to a smaller target, and schedules
a full multi-zone panel so adjacent zones stay ply-continuous.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.NewString()
			rc.logger = applog.New(runID, rc.verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&rc.configPath, "config", "c", "", "job configuration file (TOML): weights, seed, panel scale, root retry cap")
	root.PersistentFlags().BoolVarP(&rc.verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newEvaluateCmd(rc))
	root.AddCommand(newOptimizeCmd(rc))
	root.AddCommand(newDropoffCmd(rc))
	root.AddCommand(newMultizoneCmd(rc))

	return root
}
