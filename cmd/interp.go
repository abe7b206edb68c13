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
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gopic/InputParameters"
	"github.com/notargets/gopic/interp"
	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
)

// InterpCmd represents the interp command
var InterpCmd = &cobra.Command{
	Use:   "interp",
	Short: "Interpolate a linear coarse field onto a refined patch",
	Long: `
Builds a linear field on the coarse Yee mesh and interpolates each component
onto the refined centre half of the domain. The error against the analytic
field is at round off level for a correct interpolator.

gopic interp -I params.yaml [--assembled]`,
	Run: func(cmd *cobra.Command, args []string) {
		ip, err := inputFromFlags(cmd)
		if err != nil {
			logrus.Fatal(err)
		}
		assembled, _ := cmd.Flags().GetBool("assembled")
		RunInterp(ip, assembled)
	},
}

func init() {
	rootCmd.AddCommand(InterpCmd)
	InterpCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters")
	InterpCmd.Flags().BoolP("assembled", "a", false, "interpolate with the assembled sparse operator")
}

// linearField is evaluated at a position in coarse cell units
func linearField(x, y, z float64) float64 { return 1 + 2*x - 3*y + 0.5*z }

// position of index i on a level with the given refinement ratio, in coarse
// cell units
func position(i, r int, nodal bool) float64 {
	if nodal {
		return float64(i) / float64(r)
	}
	return (float64(i) + 0.5) / float64(r)
}

// centrePatch returns the refined layout of the centre half of the domain
func centrePatch(ip *InputParameters.InputParametersPIC, ratio mesh.IntVect) (patch mesh.Box, fine mesh.BoxArray) {
	var (
		dim    = ip.SpaceDim()
		domain = ip.Domain()
	)
	patch = domain
	for d := 0; d < int(dim); d++ {
		n := domain.Length(d)
		patch.Lo[d], patch.Hi[d] = n/4, max(n/4, 3*n/4-1)
	}
	fine = patch.Refine(ratio).Chop(ip.MaxGridSize)
	return
}

// RunInterp returns the max error over the three components
func RunInterp(ip *InputParameters.InputParametersPIC, assembled bool) (maxErr float64) {
	var (
		dim       = ip.SpaceDim()
		domain    = ip.Domain()
		ratio     = mesh.UniformRatio(ip.RefinementRatio, dim)
		coarseBA  = domain.Chop(ip.MaxGridSize)
		coarseDM  = mesh.NewDistributionMapping(len(coarseBA), 1, 0)
		_, fine   = centrePatch(ip, ratio)
		fineDM    = mesh.NewDistributionMapping(len(fine), 1, 0)
		it        = interp.NewInterpolator(dim, ip.ProcLimit)
		coarse    [3]*mesh.MultiFab
		fineBAs   [3]mesh.BoxArray
		log       = logrus.WithField("command", "interp")
		zPosition = func(k, r int, nodal bool) float64 {
			if dim == types.Dim2 {
				return 0
			}
			return position(k, r, nodal)
		}
	)
	it.Assembled = assembled
	for d, ft := range []mesh.FieldType{mesh.Ex, mesh.Ey, mesh.Ez} {
		typ := mesh.YeeType(ft, dim)
		coarse[d] = mesh.NewMultiFab(coarseBA.Convert(typ), coarseDM, 1, 1, dim)
		coarse[d].SetFunc(0, func(i, j, k int) float64 {
			return linearField(position(i, 1, typ[0]), position(j, 1, typ[1]), zPosition(k, 1, typ[2]))
		})
		fineBAs[d] = fine.Convert(typ)
	}
	Ffp := it.Vector(coarse[0], coarse[1], coarse[2], fineBAs, fineDM, ratio, ip.NGrow)
	for d, mf := range Ffp {
		var (
			typ  = mf.IndexType()
			cerr float64
		)
		for _, n := range mf.LocalIndices() {
			a := mf.Fab(n).Array()
			mf.ValidBox(n).ForEach(func(i, j, k int) {
				exact := linearField(position(i, ratio[0], typ[0]), position(j, ratio[1], typ[1]),
					zPosition(k, ratio[2], typ[2]))
				cerr = math.Max(cerr, math.Abs(a.At(i, j, k, 0)-exact))
			})
		}
		log.WithFields(logrus.Fields{
			"comp":      d,
			"boxes":     len(mf.BA),
			"maxError":  cerr,
			"assembled": assembled,
		}).Info("interpolated component")
		maxErr = math.Max(maxErr, cerr)
	}
	return
}
