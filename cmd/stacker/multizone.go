package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/plystack/laminate/internal/jobconfig"
	"github.com/plystack/laminate/orchestrator"
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/zonegraph"
)

func newMultizoneCmd(rc *runCtx) *cobra.Command {
	var jobPath string

	cmd := &cobra.Command{
		Use:   "multizone",
		Short: "Schedule and optimize every zone of a full panel",
		Long: `multizone builds the zone adjacency graph, selects a root, and walks
the schedule from a job file's "zones" list (each with a "counts" map
and an optional "rect"), optimizing the root and drop-off'ing every
other zone from its scheduled parent (spec.md §6's Multi-zone optimize
call shape).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := loadJob(jobPath)
			if err != nil {
				return err
			}
			cfg, err := jobconfig.Load(rc.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if len(j.Zones) < 2 {
				return fmt.Errorf("stacker: multizone: job file must list at least 2 zones")
			}

			zoneCounts := make([]ply.PlyCounts, len(j.Zones))
			var rects []zonegraph.Rect
			haveRects := false
			for i, z := range j.Zones {
				counts, err := countsFromMap(z.Counts)
				if err != nil {
					return err
				}
				zoneCounts[i] = counts
				if z.Rect != nil {
					haveRects = true
				}
			}
			if haveRects {
				rects = make([]zonegraph.Rect, len(j.Zones))
				for i, z := range j.Zones {
					rects[i] = rectFromSpec(z.Rect)
				}
			}

			panelScale := j.PanelScaleMM
			if panelScale == 0 {
				panelScale = cfg.PanelScaleMM
			}

			progressCh := make(chan orchestrator.ProgressEvent, len(j.Zones)+1)
			bar := progressbar.NewOptions(len(j.Zones),
				progressbar.OptionSetDescription("scheduling zones"),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetPredictTime(true),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
			)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for ev := range progressCh {
					if ev.Stage == "zone" {
						bar.Add(1)
					}
				}
			}()

			req := orchestrator.Request{
				ZoneCounts:           zoneCounts,
				Rects:                rects,
				PanelScaleMM:         panelScale,
				Weights:              weightsOrDefault(cfg),
				Seed:                 cfg.Seed,
				AdjacencyTolerancePx: cfg.AdjacencyTolerancePx,
				MaxRootRetries:       cfg.MaxRootRetries,
				Progress:             progressCh,
				Logger:               rc.logger,
			}

			res, err := orchestrator.Optimize(req)
			close(progressCh)
			<-done

			if err != nil {
				return fmt.Errorf("stacker: multizone: %w", err)
			}

			fmt.Fprintf(os.Stdout, "success: %t  root: %d\n", res.Success, res.RootIndex)
			for _, zr := range res.Zones {
				fmt.Fprintf(os.Stdout, "zone %d (root=%t):\n", zr.Index, zr.IsRoot)
				printSequence(os.Stdout, zr.Sequence)
				printFitness(os.Stdout, zr.Fitness)
			}
			for _, tr := range res.Transitions {
				fmt.Fprintf(os.Stdout, "transition: zone %d <- zone %d\n", tr.Zone, tr.Parent)
			}
			fmt.Fprintf(os.Stdout, "weight: total=%.3fg has_geometry=%t\n", res.Weight.TotalMassG, res.Weight.HasGeometry)
			for _, rc2 := range res.RampChecks {
				fmt.Fprintf(os.Stdout, "ramp %d<->%d: required=%.2fmm available=%.2fmm pass=%t\n",
					rc2.ZoneA, rc2.ZoneB, rc2.RequiredRampMM, rc2.AvailableMM, rc2.Pass)
			}

			rc.logger.WithField("success", res.Success).Info("multizone complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "job file (JSON or TOML) with a \"zones\" list")
	cmd.MarkFlagRequired("job")
	return cmd
}
