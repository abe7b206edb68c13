package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gopic/InputParameters"
)

const exampleFile = `
########################################
Title: "PML test box"
Dimensions: 3
DomainCells: [32, 32, 32]
Dx: [1.e-6, 1.e-6, 1.e-6]
NumPMLCells: 8
CFL: 0.99
Steps: 50
MaxGridSize: 16
RefinementRatio: 2
ResampleIntervals: "10:50:10"
########################################
`

func readInput(ICFile string) (ip *InputParameters.InputParametersPIC, err error) {
	if len(ICFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		fmt.Printf("Example File:%s\n", exampleFile)
		return
	}
	var data []byte
	if data, err = os.ReadFile(ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParametersPIC{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", ICFile, err)
	}
	return
}

// procLimit is the parallel degree asked for on the command line or config,
// falling back to the input file
func procLimit(ip *InputParameters.InputParametersPIC) int {
	if pd := viper.GetInt("parallelDegree"); pd > 0 {
		return pd
	}
	return ip.ProcLimit
}

func inputFromFlags(cmd *cobra.Command) (ip *InputParameters.InputParametersPIC, err error) {
	var ICFile string
	if ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
		return
	}
	if ip, err = readInput(ICFile); err != nil {
		return
	}
	ip.ProcLimit = procLimit(ip)
	ip.Print()
	return
}
