package jobconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plystack/laminate/ply"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, ply.WeightMap{}, cfg.Weights)
	require.Equal(t, int64(0), cfg.Seed)
}

func TestLoad_FromTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")
	contents := `
seed = 42
panel_scale_mm = 250.0
adjacency_tolerance_px = 30
max_root_retries = 3
verbose = true

[weights]
r1 = 20.0
r2 = 12.0
r3 = 13.0
r4 = 12.0
r5 = 14.0
r6 = 18.5
r7 = 3.5
r8 = 7.0
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, 250.0, cfg.PanelScaleMM)
	require.Equal(t, 30, cfg.AdjacencyTolerancePx)
	require.Equal(t, 3, cfg.MaxRootRetries)
	require.True(t, cfg.Verbose)
	require.InDelta(t, 20.0, cfg.Weights[ply.R1Symmetry], 1e-9)
}

func TestLoad_InvalidWeightsSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	contents := `
[weights]
r1 = 50.0
r2 = 50.0
r3 = 50.0
r4 = 0.0
r5 = 0.0
r6 = 0.0
r7 = 0.0
r8 = 0.0
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path, nil)
	require.ErrorIs(t, err, ErrInvalidWeights)
}
