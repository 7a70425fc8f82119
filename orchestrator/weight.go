package orchestrator

import (
	"github.com/plystack/laminate/ply"
	"github.com/plystack/laminate/zonegraph"
)

// computeWeightAndRamp implements spec.md §4.5's Weight and Ramp
// feasibility reporting, using each zone's finalized sequence length as
// its ply count.
func computeWeightAndRamp(req Request, g *zonegraph.Graph, sequences []ply.Sequence) (WeightReport, []RampCheck) {
	n := len(sequences)
	geoms, hasGeometry := scaleGeometry(req.Rects, req.PanelScaleMM)
	if !hasGeometry {
		geoms = unitGeometry(n)
	}

	masses := make([]float64, n)
	total := 0.0
	for i, seq := range sequences {
		m := geoms[i].AreaMM2 * float64(seq.Len()) * PlyThicknessMM * DensityGPerMM3
		masses[i] = m
		total += m
	}

	var ramps []RampCheck
	seenPair := make(map[[2]int]bool)
	for a := 0; a < n; a++ {
		neighbors, _ := g.Neighbors(a)
		for _, b := range neighbors {
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if seenPair[key] {
				continue
			}
			seenPair[key] = true

			diff := sequences[a].Len() - sequences[b].Len()
			if diff < 0 {
				diff = -diff
			}
			required := float64(diff) * RampRateMMPerPly
			available := geoms[a].MinEdgeMM
			if geoms[b].MinEdgeMM < available {
				available = geoms[b].MinEdgeMM
			}
			ramps = append(ramps, RampCheck{
				ZoneA:          key[0],
				ZoneB:          key[1],
				RequiredRampMM: required,
				AvailableMM:    available,
				Pass:           available >= required,
				MarginMM:       available - required,
			})
		}
	}

	return WeightReport{HasGeometry: hasGeometry, PerZoneMassG: masses, TotalMassG: total}, ramps
}
