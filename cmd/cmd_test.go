package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gopic/InputParameters"
	"github.com/notargets/gopic/checkpoint"
	"github.com/notargets/gopic/types"
)

func smallInput(t *testing.T, dims int) *InputParameters.InputParametersPIC {
	ip := &InputParameters.InputParametersPIC{}
	data := `
Title: "small box"
Dimensions: 2
DomainCells: [8, 8]
Dx: [1.e-6, 1.e-6, 1.e-6]
NumPMLCells: 2
Steps: 4
MaxGridSize: 4
RefinementRatio: 2
ResampleIntervals: "2"
`
	if dims == 3 {
		data = strings.Replace(data, "Dimensions: 2", "Dimensions: 3", 1)
		data = strings.Replace(data, "[8, 8]", "[8, 8, 8]", 1)
	}
	require.NoError(t, ip.Parse([]byte(data)))
	return ip
}

func TestRunPML(t *testing.T) {
	{ // Unit fields are left alone inside the domain and damped in the layer
		ip := smallInput(t, 2)
		ip.CheckpointFile = filepath.Join(t.TempDir(), "ids.gpid")
		rpt, err := RunPML(ip)
		require.NoError(t, err)
		assert.Equal(t, 4, rpt.Steps)
		assert.Len(t, rpt.Stats, 21)
		var damped int
		for _, st := range rpt.Stats {
			assert.Equal(t, 1., st.Max, "%s[%d]", st.Field, st.Comp)
			assert.True(t, st.Min > 0 && st.Min <= 1, "%s[%d]", st.Field, st.Comp)
			if st.Min < 1 {
				damped++
			}
		}
		assert.Greater(t, damped, 0)
		// Ex component 0 has no damping term, component 1 is damped along z
		assert.Equal(t, 1., rpt.Stats[0].Min)
		assert.Less(t, rpt.Stats[1].Min, 1.)

		// 128 particles halved at steps 2 and 4
		assert.Equal(t, 2, rpt.Resamples)
		assert.Equal(t, 32, rpt.Particles)
		ids, err := checkpoint.ReadParticleIDFile(ip.CheckpointFile)
		require.NoError(t, err)
		require.Len(t, ids, 32)
		assert.Equal(t, types.LocalIDToGlobal(0, 0), ids[0])
		assert.Equal(t, types.LocalIDToGlobal(4, 0), ids[1])
	}
	{ // No resampling without intervals or a density limit
		ip := smallInput(t, 3)
		ip.ResampleIntervals = "0"
		rpt, err := RunPML(ip)
		require.NoError(t, err)
		assert.Equal(t, 0, rpt.Resamples)
		assert.Equal(t, 2*8*8*8, rpt.Particles)
	}
	{ // Density limit alone
		ip := smallInput(t, 2)
		ip.ResampleIntervals = "0"
		ip.MaxAvgPPC = 0.5
		rpt, err := RunPML(ip)
		require.NoError(t, err)
		// 128 and 64 particles exceed half a particle per cell on 64 cells, 32 does not
		assert.Equal(t, 2, rpt.Resamples)
		assert.Equal(t, 32, rpt.Particles)
	}
}

func TestRunInterp(t *testing.T) {
	for _, dims := range []int{2, 3} {
		for _, ratio := range []int{1, 2, 3} {
			ip := smallInput(t, dims)
			ip.RefinementRatio = ratio
			assert.Less(t, RunInterp(ip, false), 1.e-10, "dims %d ratio %d", dims, ratio)
			assert.Less(t, RunInterp(ip, true), 1.e-10, "dims %d ratio %d assembled", dims, ratio)
		}
	}
}

func TestRunPID(t *testing.T) {
	{ // Encode a range
		lines, err := RunPID(&PIDArgs{IDs: "0:3", CPU: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"8589934592 = 0@2",
			"8589934593 = 1@2",
			"8589934594 = 2@2",
		}, lines)
	}
	{ // Decode
		lines, err := RunPID(&PIDArgs{Decode: 3<<32 + 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"12884901889 = 1@3"}, lines)
	}
	{ // Through a file
		fileName := filepath.Join(t.TempDir(), "ids.gpid")
		written, err := RunPID(&PIDArgs{IDs: "7", CPU: 5, Out: fileName})
		require.NoError(t, err)
		read, err := RunPID(&PIDArgs{In: fileName})
		require.NoError(t, err)
		assert.Equal(t, written, read)
		assert.Equal(t, []string{"21474836487 = 7@5"}, read)
	}
	{ // Bad inputs
		for _, pa := range []*PIDArgs{
			{IDs: "5:2"},
			{IDs: "0:3", CPU: -1},
			{IDs: "0:4294967297"},
			{In: filepath.Join(t.TempDir(), "missing")},
		} {
			_, err := RunPID(pa)
			assert.Error(t, err, "%+v", pa)
		}
	}
}

func TestRunBench(t *testing.T) {
	ip := smallInput(t, 2)
	recs, err := RunBench(ip, 2, false)
	require.NoError(t, err)
	require.Len(t, recs, 6)
	for _, rec := range recs {
		assert.Greater(t, rec.Cells, 0)
		assert.GreaterOrEqual(t, rec.Seconds, 0.)
		assert.Zero(t, rec.Instructions)
	}
	assert.Equal(t, "pml", recs[0].Kernel)
	assert.Equal(t, "interp_assembled", recs[5].Kernel)
	assert.Equal(t, 1, recs[5].Rep)

	var buf bytes.Buffer
	require.NoError(t, WriteBenchCSV(&buf, recs))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "kernel,rep,cells,parallel_degree,seconds,ns_per_cell,instructions,cycles", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "pml,0,"))
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	{ // No file named
		_, err := readInput("")
		assert.Error(t, err)
	}
	{ // Missing file
		_, err := readInput(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	}
	{ // Invalid parameters
		fileName := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("Dimensions: 4\n"), 0644))
		_, err := readInput(fileName)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), fileName)
	}
	{ // The example parses
		fileName := filepath.Join(dir, "example.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte(exampleFile), 0644))
		ip, err := readInput(fileName)
		require.NoError(t, err)
		assert.Equal(t, 3, ip.Dimensions)
		assert.Equal(t, 8, ip.NumPMLCells)
	}
}
