package orchestrator

import "github.com/plystack/laminate/zonegraph"

// PlyThicknessMM and DensityGPerMM3 are the fixed material constants of
// spec.md §4.5.
const (
	PlyThicknessMM = 0.125
	DensityGPerMM3 = 1.58e-3
	// RampRateMMPerPly is the required ramp length per unit ply-count
	// difference between adjacent zones (spec.md §4.5).
	RampRateMMPerPly = 0.5
	// DefaultPanelScaleMM is the bounding-extent length a panel's pixel
	// geometry maps to when the caller does not override it.
	DefaultPanelScaleMM = 300.0
)

// zoneGeometryMM holds a zone's physical dimensions once pixel geometry
// has been scaled to millimeters.
type zoneGeometryMM struct {
	AreaMM2   float64
	MinEdgeMM float64
}

// scaleGeometry computes, for each zone, its area and minimum edge length
// in millimeters, by mapping the bounding extent of all supplied
// rectangles to panelScaleMM (spec.md §4.5). Returns hasGeometry=false
// (and unit-area zones) when rects is empty.
func scaleGeometry(rects []zonegraph.Rect, panelScaleMM float64) ([]zoneGeometryMM, bool) {
	n := len(rects)
	out := make([]zoneGeometryMM, n)
	if n == 0 {
		return out, false
	}
	if panelScaleMM <= 0 {
		panelScaleMM = DefaultPanelScaleMM
	}

	minX, minY := rects[0].X, rects[0].Y
	maxX, maxY := rects[0].Right(), rects[0].Bottom()
	for _, r := range rects[1:] {
		if r.X < minX {
			minX = r.X
		}
		if r.Y < minY {
			minY = r.Y
		}
		if r.Right() > maxX {
			maxX = r.Right()
		}
		if r.Bottom() > maxY {
			maxY = r.Bottom()
		}
	}
	extentPx := maxX - minX
	if maxY-minY > extentPx {
		extentPx = maxY - minY
	}
	if extentPx <= 0 {
		extentPx = 1
	}
	scale := panelScaleMM / float64(extentPx) // mm per pixel

	for i, r := range rects {
		wMM := float64(r.W) * scale
		hMM := float64(r.H) * scale
		minEdge := wMM
		if hMM < minEdge {
			minEdge = hMM
		}
		out[i] = zoneGeometryMM{AreaMM2: wMM * hMM, MinEdgeMM: minEdge}
	}
	return out, true
}

func unitGeometry(n int) []zoneGeometryMM {
	out := make([]zoneGeometryMM, n)
	for i := range out {
		out[i] = zoneGeometryMM{AreaMM2: 1, MinEdgeMM: 1}
	}
	return out
}
