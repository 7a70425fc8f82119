package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plystack/laminate/internal/jobconfig"
	"github.com/plystack/laminate/rules"
)

func newEvaluateCmd(rc *runCtx) *cobra.Command {
	var jobPath string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score an existing stacking sequence against the eight lamination rules",
		Long: `evaluate scores a stacking sequence given in a job file's "sequence"
field, returning the total score out of 100 and the per-rule breakdown
(spec.md §6's Evaluate call shape).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(jobPath)
			if err != nil {
				return err
			}
			cfg, err := jobconfig.Load(rc.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			seq, err := sequenceFromNames(j.Sequence)
			if err != nil {
				return err
			}

			fit := rules.Evaluate(seq, weightsOrDefault(cfg))
			printFitness(os.Stdout, fit)
			rc.logger.WithField("total", fmt.Sprintf("%.2f", fit.Total)).Info("evaluate complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job file (JSON or TOML) with a \"sequence\" field")
	cmd.MarkFlagRequired("job")
	return cmd
}
