package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plystack/laminate/dropoff"
	"github.com/plystack/laminate/internal/jobconfig"
)

func newDropoffCmd(rc *runCtx) *cobra.Command {
	var jobPath string

	cmd := &cobra.Command{
		Use:   "dropoff",
		Short: "Drop a parent zone's sequence down to a smaller target",
		Long: `dropoff takes a job file's "sequence" (the parent) plus either a
"target_counts" per-angle map or a "target_length", and returns the
child sequence (spec.md §6's two Drop-off call shapes).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(jobPath)
			if err != nil {
				return err
			}
			cfg, err := jobconfig.Load(rc.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			parent, err := sequenceFromNames(j.Sequence)
			if err != nil {
				return err
			}

			opts := dropoff.Options{
				Weights: weightsOrDefault(cfg),
				Seed:    cfg.Seed,
				Logger:  rc.logger,
			}

			var res dropoff.Result
			switch {
			case len(j.TargetCounts) > 0:
				target, err := countsFromMap(j.TargetCounts)
				if err != nil {
					return err
				}
				res, err = dropoff.ToAngleCounts(parent, target, opts)
				if err != nil {
					return fmt.Errorf("stacker: dropoff: %w", err)
				}
			case j.TargetLength > 0:
				res, err = dropoff.ToLength(parent, j.TargetLength, opts)
				if err != nil {
					return fmt.Errorf("stacker: dropoff: %w", err)
				}
			default:
				return fmt.Errorf("stacker: dropoff: job file must set target_counts or target_length")
			}

			printSequence(os.Stdout, res.Sequence)
			printFitness(os.Stdout, res.Fitness)
			fmt.Fprintf(os.Stdout, "used_randomized_search: %t\n", res.UsedRandomized)
			rc.logger.WithField("total", fmt.Sprintf("%.2f", res.Fitness.Total)).Info("dropoff complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job file (JSON or TOML) with a parent \"sequence\" and a target")
	cmd.MarkFlagRequired("job")
	return cmd
}
