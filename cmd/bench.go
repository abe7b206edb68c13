/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/hodgesds/perf-utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gopic/InputParameters"
	"github.com/notargets/gopic/interp"
	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/pml"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the PML and interpolation kernels",
	Long: `
Times one PML damping sweep over E, B and F and one vector interpolation per
repetition. With --counters the hardware instruction and cycle counts are
added, which needs perf_event access on Linux.

gopic bench -I params.yaml --reps 10 --csv bench.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		ip, err := inputFromFlags(cmd)
		if err != nil {
			logrus.Fatal(err)
		}
		var (
			reps, _     = cmd.Flags().GetInt("reps")
			counters, _ = cmd.Flags().GetBool("counters")
			csvFile, _  = cmd.Flags().GetString("csv")
			recs        []*BenchRecord
		)
		if recs, err = RunBench(ip, reps, counters); err != nil {
			logrus.Fatal(err)
		}
		if len(csvFile) == 0 {
			return
		}
		var file *os.File
		if file, err = os.Create(csvFile); err != nil {
			logrus.Fatal(err)
		}
		defer file.Close()
		if err = WriteBenchCSV(file, recs); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	BenchCmd.Flags().IntP("reps", "n", 5, "number of repetitions per kernel")
	BenchCmd.Flags().Bool("counters", false, "add hardware instruction and cycle counts")
	BenchCmd.Flags().String("csv", "", "write the timings to this CSV file")
}

type BenchRecord struct {
	Kernel       string  `csv:"kernel"`
	Rep          int     `csv:"rep"`
	Cells        int     `csv:"cells"`
	Parallel     int     `csv:"parallel_degree"`
	Seconds      float64 `csv:"seconds"`
	NsPerCell    float64 `csv:"ns_per_cell"`
	Instructions uint64  `csv:"instructions"`
	Cycles       uint64  `csv:"cycles"`
}

func WriteBenchCSV(w io.Writer, recs []*BenchRecord) error {
	return gocsv.Marshal(recs, w)
}

func RunBench(ip *InputParameters.InputParametersPIC, reps int, counters bool) (recs []*BenchRecord, err error) {
	var (
		dim    = ip.SpaceDim()
		domain = ip.Domain()
		ba, dm = newPMLLayout(ip)
		p      *pml.PML
		log    = logrus.WithField("command", "bench")
	)
	if p, err = pml.NewPML(ba, dm, domain, ip.NumPMLCells, ip.NGrow, ip.Dx, ip.Dt(), dim, ip.ProcLimit); err != nil {
		return
	}
	fields := make([]*mesh.MultiFab, mesh.F+1)
	for ft := mesh.Ex; ft <= mesh.F; ft++ {
		fields[ft] = p.NewField(ft)
		fields[ft].SetVal(1)
	}
	damp := func() error {
		if err := p.DampE(fields[mesh.Ex], fields[mesh.Ey], fields[mesh.Ez]); err != nil {
			return err
		}
		if err := p.DampB(fields[mesh.Bx], fields[mesh.By], fields[mesh.Bz]); err != nil {
			return err
		}
		return p.DampF(fields[mesh.F])
	}

	var (
		ratio     = mesh.UniformRatio(ip.RefinementRatio, dim)
		_, fine   = centrePatch(ip, ratio)
		fineDM    = mesh.NewDistributionMapping(len(fine), 1, 0)
		coarseBA  = domain.Chop(ip.MaxGridSize)
		coarseDM  = mesh.NewDistributionMapping(len(coarseBA), 1, 0)
		coarse    [3]*mesh.MultiFab
		fineBAs   [3]mesh.BoxArray
		it        = interp.NewInterpolator(dim, ip.ProcLimit)
		fineCells int
	)
	for d, ft := range []mesh.FieldType{mesh.Ex, mesh.Ey, mesh.Ez} {
		typ := mesh.YeeType(ft, dim)
		coarse[d] = mesh.NewMultiFab(coarseBA.Convert(typ), coarseDM, 1, 1, dim)
		coarse[d].SetVal(1)
		fineBAs[d] = fine.Convert(typ)
		fineCells += fineBAs[d].NumPts()
	}
	interpolate := func() error {
		it.Vector(coarse[0], coarse[1], coarse[2], fineBAs, fineDM, ratio, ip.NGrow)
		return nil
	}

	pmlCells := 3 * ba.NumPts() * 7
	for rep := 0; rep < reps; rep++ {
		for _, k := range []struct {
			name  string
			cells int
			f     func() error
		}{
			{"pml", pmlCells, damp},
			{"interp", fineCells, interpolate},
			{"interp_assembled", fineCells, func() error {
				it.Assembled = true
				defer func() { it.Assembled = false }()
				return interpolate()
			}},
		} {
			var rec *BenchRecord
			if rec, err = timeKernel(k.name, rep, k.cells, ip.ProcLimit, counters, k.f); err != nil {
				return
			}
			log.WithFields(logrus.Fields{
				"kernel":      rec.Kernel,
				"rep":         rep,
				"seconds":     rec.Seconds,
				"ns_per_cell": rec.NsPerCell,
			}).Info("timed kernel")
			recs = append(recs, rec)
		}
	}
	return
}

func timeKernel(name string, rep, cells, parallel int, counters bool, f func() error) (rec *BenchRecord, err error) {
	rec = &BenchRecord{Kernel: name, Rep: rep, Cells: cells, Parallel: parallel}
	start := time.Now()
	if err = f(); err != nil {
		return
	}
	rec.Seconds = time.Since(start).Seconds()
	if cells > 0 {
		rec.NsPerCell = 1.e9 * rec.Seconds / float64(cells)
	}
	if !counters {
		return
	}
	// Counters need their own runs, a missing perf_event permission is not fatal
	if pv, perr := perf.CPUInstructions(f); perr == nil {
		rec.Instructions = pv.Value
	} else {
		logrus.WithError(perr).Warn("instruction counter unavailable")
	}
	if pv, perr := perf.CPUCycles(f); perr == nil {
		rec.Cycles = pv.Value
	} else {
		logrus.WithError(perr).Warn("cycle counter unavailable")
	}
	return
}
