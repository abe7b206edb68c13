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
	"math"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/gopic/checkpoint"
	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// PIDCmd represents the pid command
var PIDCmd = &cobra.Command{
	Use:   "pid",
	Short: "Encode and decode global particle ids",
	Long: `
Encodes local particle ids created on a rank into global ids, or decodes a
global id. A range of local ids can be written as a compressed id column.

gopic pid --ids 0:10 --cpu 3 [--out ids.gpid]
gopic pid --decode 12884901889
gopic pid --in ids.gpid`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			pa  = &PIDArgs{}
			err error
		)
		pa.IDs, _ = cmd.Flags().GetString("ids")
		pa.CPU, _ = cmd.Flags().GetInt("cpu")
		pa.Decode, _ = cmd.Flags().GetUint64("decode")
		pa.Out, _ = cmd.Flags().GetString("out")
		pa.In, _ = cmd.Flags().GetString("in")
		var lines []string
		if lines, err = RunPID(pa); err != nil {
			logrus.Fatal(err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(PIDCmd)
	PIDCmd.Flags().String("ids", "", "local id or range of local ids, e.g. 7 or 0:100")
	PIDCmd.Flags().Int("cpu", 0, "rank that created the particles")
	PIDCmd.Flags().Uint64("decode", 0, "global id to decode")
	PIDCmd.Flags().StringP("out", "o", "", "write the encoded ids to this file")
	PIDCmd.Flags().StringP("in", "i", "", "decode the ids stored in this file")
}

const maxIDRange = 1 << 24

type PIDArgs struct {
	IDs     string
	CPU     int
	Decode  uint64
	Out, In string
}

// RunPID returns one "global = local@cpu" line per id
func RunPID(pa *PIDArgs) (lines []string, err error) {
	var (
		ids []types.ParticleID
	)
	switch {
	case len(pa.In) != 0:
		if ids, err = checkpoint.ReadParticleIDFile(pa.In); err != nil {
			return
		}
	case len(pa.IDs) != 0:
		i1, i2 := utils.ParseDim(pa.IDs, math.MaxUint32+1)
		if i1 < 0 || i2 > math.MaxUint32+1 || i2 <= i1 || i2-i1 > maxIDRange {
			err = fmt.Errorf("invalid local id range %q", pa.IDs)
			return
		}
		if pa.CPU < 0 || pa.CPU > math.MaxUint32 {
			err = fmt.Errorf("cpu %d does not fit in 32 bits", pa.CPU)
			return
		}
		for id := i1; id < i2; id++ {
			ids = append(ids, types.NewParticleID(id, pa.CPU))
		}
	default:
		ids = []types.ParticleID{types.ParticleID(pa.Decode)}
	}
	if len(pa.Out) != 0 {
		if err = checkpoint.WriteParticleIDFile(pa.Out, ids); err != nil {
			return
		}
	}
	for _, id := range ids {
		lines = append(lines, fmt.Sprintf("%d = %s", uint64(id), id))
	}
	return
}
