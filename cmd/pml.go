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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gopic/InputParameters"
	"github.com/notargets/gopic/checkpoint"
	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/pml"
	"github.com/notargets/gopic/resampling"
	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// PMLCmd represents the pml command
var PMLCmd = &cobra.Command{
	Use:   "pml",
	Short: "Damp unit fields in a PML surrounded domain",
	Long: `
Builds the domain grown by the PML layer, fills the split E, B and F fields
with ones and damps them for the requested number of steps.

gopic pml -I params.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		ip, err := inputFromFlags(cmd)
		if err != nil {
			logrus.Fatal(err)
		}
		if _, err = RunPML(ip); err != nil {
			logrus.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(PMLCmd)
	PMLCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
}

type FieldStats struct {
	Field    string
	Comp     int
	Min, Max float64
}

type PMLReport struct {
	Steps, Resamples int
	Particles        int
	Stats            []FieldStats
}

// decimate keeps every Stride'th particle and scales its weight to conserve
// the total
type decimate struct {
	Stride int
}

func (dc decimate) Resample(tile *resampling.ParticleTile) {
	var n int
	for i := 0; i < tile.NumParticles(); i += dc.Stride {
		tile.IDs[n] = tile.IDs[i]
		tile.Weights[n] = tile.Weights[i] * float64(dc.Stride)
		n++
	}
	tile.IDs, tile.Weights = tile.IDs[:n], tile.Weights[:n]
}

// newPMLLayout covers the domain grown by the PML layer with boxes of at most
// MaxGridSize cells
func newPMLLayout(ip *InputParameters.InputParametersPIC) (ba mesh.BoxArray, dm mesh.DistributionMapping) {
	var (
		dim    = ip.SpaceDim()
		domain = ip.Domain()
	)
	ba = domain.Grow(mesh.GrowVect(ip.NumPMLCells, dim)).Chop(ip.MaxGridSize)
	dm = mesh.NewDistributionMapping(len(ba), 1, 0)
	return
}

func RunPML(ip *InputParameters.InputParametersPIC) (rpt *PMLReport, err error) {
	var (
		dim    = ip.SpaceDim()
		domain = ip.Domain()
		ba, dm = newPMLLayout(ip)
		p      *pml.PML
		tr     resampling.Trigger
		rs     *resampling.Resampling
		log    = logrus.WithField("command", "pml")
	)
	if p, err = pml.NewPML(ba, dm, domain, ip.NumPMLCells, ip.NGrow, ip.Dx, ip.Dt(), dim, ip.ProcLimit); err != nil {
		return
	}
	fields := make([]*mesh.MultiFab, mesh.F+1)
	for ft := mesh.Ex; ft <= mesh.F; ft++ {
		fields[ft] = p.NewField(ft)
		fields[ft].SetVal(1)
	}
	if tr, err = resampling.NewTrigger(ip.ResampleIntervals, ip.MaxAvgPPC, float64(domain.NumPts())); err != nil {
		return
	}
	if rs, err = resampling.NewResampling(tr, decimate{Stride: 2}); err != nil {
		return
	}
	tile := &resampling.ParticleTile{}
	for i := 0; i < 2*domain.NumPts(); i++ {
		tile.IDs = append(tile.IDs, types.LocalIDToGlobal(uint32(i), 0))
		tile.Weights = append(tile.Weights, 1)
	}
	log.WithFields(logrus.Fields{
		"boxes": len(ba),
		"cells": ba.NumPts(),
		"dt":    ip.Dt(),
	}).Info("starting PML damping")

	rpt = &PMLReport{Steps: ip.Steps}
	for step := 0; step < ip.Steps; step++ {
		if err = p.DampE(fields[mesh.Ex], fields[mesh.Ey], fields[mesh.Ez]); err != nil {
			return
		}
		if err = p.DampB(fields[mesh.Bx], fields[mesh.By], fields[mesh.Bz]); err != nil {
			return
		}
		if err = p.DampF(fields[mesh.F]); err != nil {
			return
		}
		if rs.Triggered(step, float64(tile.NumParticles())) {
			removed := rs.Apply(tile)
			rpt.Resamples++
			log.WithFields(logrus.Fields{"step": step, "removed": removed}).Debug("resampled")
		}
	}
	rpt.Particles = tile.NumParticles()
	if len(ip.CheckpointFile) != 0 {
		if err = checkpoint.WriteParticleIDFile(ip.CheckpointFile, tile.IDs); err != nil {
			return
		}
		log.WithField("file", ip.CheckpointFile).Info("wrote particle ids")
	}
	for ft := mesh.Ex; ft <= mesh.F; ft++ {
		for c := 0; c < 3; c++ {
			if utils.IsNan(fields[ft].ValidValues(c)) {
				err = fmt.Errorf("NaN in %s component %d after %d steps", ft, c, ip.Steps)
				return
			}
			st := FieldStats{Field: ft.String(), Comp: c, Min: fields[ft].Min(c), Max: fields[ft].Max(c)}
			rpt.Stats = append(rpt.Stats, st)
			log.WithFields(logrus.Fields{
				"field": st.Field,
				"comp":  c,
				"min":   st.Min,
				"max":   st.Max,
			}).Info("damped field")
		}
	}
	log.WithField("mem", utils.GetMemUsage()).Info("done")
	return
}
