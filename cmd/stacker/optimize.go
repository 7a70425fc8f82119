package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plystack/laminate/internal/jobconfig"
	"github.com/plystack/laminate/optimizer"
)

func newOptimizeCmd(rc *runCtx) *cobra.Command {
	var jobPath string
	var quick bool

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Build a single zone's best-scoring symmetric stacking sequence",
		Long: `optimize runs the three-phase single-zone optimizer (symmetric
skeleton, evolutionary search, hill-climb polish) against a job file's
"counts" field, a per-angle target ply count map (spec.md §6's
Single-zone optimize call shape).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(jobPath)
			if err != nil {
				return err
			}
			cfg, err := jobconfig.Load(rc.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			counts, err := countsFromMap(j.Counts)
			if err != nil {
				return err
			}

			opts := optimizer.Options{
				Weights: weightsOrDefault(cfg),
				Seed:    cfg.Seed,
				Logger:  rc.logger,
			}

			run := optimizer.Optimize
			if quick {
				run = optimizer.Quick
			}
			res, err := run(counts, opts)
			if err != nil {
				return fmt.Errorf("stacker: optimize: %w", err)
			}

			printSequence(os.Stdout, res.Sequence)
			printFitness(os.Stdout, res.Fitness)
			rc.logger.WithField("total", fmt.Sprintf("%.2f", res.Fitness.Total)).Info("optimize complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job file (JSON or TOML) with a \"counts\" field")
	cmd.Flags().BoolVar(&quick, "quick", false, "run a single restart instead of the default multi-restart pipeline")
	cmd.MarkFlagRequired("job")
	return cmd
}
