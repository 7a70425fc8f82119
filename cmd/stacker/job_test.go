package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plystack/laminate/ply"
)

func TestLoadJob_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	contents := `{
		"sequence": ["45", "0", "90", "-45", "-45", "90", "0", "45"],
		"target_length": 6
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	j, err := loadJob(path)
	require.NoError(t, err)
	require.Equal(t, 8, len(j.Sequence))
	require.Equal(t, 6, j.TargetLength)
}

func TestLoadJob_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")
	contents := `
counts = { "0" = 12, "90" = 8, "45" = 8, "-45" = 8 }
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	j, err := loadJob(path)
	require.NoError(t, err)
	require.Equal(t, 12, j.Counts["0"])
}

func TestCountsFromMap_BuildsPlyCounts(t *testing.T) {
	counts, err := countsFromMap(map[string]int{"0": 12, "90": 8, "45": 8, "-45": 8})
	require.NoError(t, err)
	require.Equal(t, 36, counts.Total())
	require.Equal(t, 12, counts.Get(ply.Angle0))
}

func TestCountsFromMap_UnknownAngle(t *testing.T) {
	_, err := countsFromMap(map[string]int{"30": 1})
	require.Error(t, err)
}

func TestSequenceFromNames_ParsesInOrder(t *testing.T) {
	seq, err := sequenceFromNames([]string{"45", "0", "90", "-45"})
	require.NoError(t, err)
	require.Equal(t, ply.Sequence{ply.AnglePlus45, ply.Angle0, ply.Angle90, ply.AngleMinus45}, seq)
}
