package InputParameters

import (
	"fmt"
	"math"

	"github.com/ghodss/yaml"

	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// Parameters obtained from the YAML input file
type InputParametersPIC struct {
	Title             string     `yaml:"Title"`
	Dimensions        int        `yaml:"Dimensions"`
	DomainCells       [3]int     `yaml:"DomainCells"` // Per logical axis, (x, z) in 2D
	Dx                [3]float64 `yaml:"Dx"`          // Per physical axis (x, y, z)
	NumPMLCells       int        `yaml:"NumPMLCells"`
	CFL               float64    `yaml:"CFL"`
	Steps             int        `yaml:"Steps"`
	MaxGridSize       int        `yaml:"MaxGridSize"`
	RefinementRatio   int        `yaml:"RefinementRatio"`
	NGrow             int        `yaml:"NGrow"`
	ProcLimit         int        `yaml:"ProcLimit"`
	ResampleIntervals string     `yaml:"ResampleIntervals"`
	MaxAvgPPC         float64    `yaml:"MaxAvgPPC"`
	CheckpointFile    string     `yaml:"CheckpointFile"`
}

func (ip *InputParametersPIC) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	ip.setDefaults()
	return ip.Validate()
}

func (ip *InputParametersPIC) setDefaults() {
	if ip.Dimensions == 0 {
		ip.Dimensions = 3
	}
	if ip.CFL == 0 {
		ip.CFL = 0.99
	}
	if ip.MaxGridSize == 0 {
		ip.MaxGridSize = 32
	}
	if ip.RefinementRatio == 0 {
		ip.RefinementRatio = 2
	}
	if len(ip.ResampleIntervals) == 0 {
		ip.ResampleIntervals = "0"
	}
}

func (ip *InputParametersPIC) Validate() (err error) {
	var (
		dim types.SpaceDim
	)
	if dim, err = types.NewSpaceDim(ip.Dimensions); err != nil {
		return
	}
	for d := 0; d < int(dim); d++ {
		if ip.DomainCells[d] < 1 {
			return fmt.Errorf("DomainCells must be positive on each axis, have %v", ip.DomainCells[:dim])
		}
		if ax := dim.PhysicalAxis(d); ip.Dx[ax] <= 0 {
			return fmt.Errorf("Dx along %s must be positive, have %g", ax, ip.Dx[ax])
		}
	}
	switch {
	case ip.NumPMLCells < 1:
		return fmt.Errorf("NumPMLCells must be positive, have %d", ip.NumPMLCells)
	case ip.CFL <= 0 || ip.CFL > 1:
		return fmt.Errorf("CFL must be in (0, 1], have %g", ip.CFL)
	case ip.Steps < 0:
		return fmt.Errorf("Steps must not be negative, have %d", ip.Steps)
	case ip.RefinementRatio < 1:
		return fmt.Errorf("RefinementRatio must be >= 1, have %d", ip.RefinementRatio)
	case ip.NGrow < 0:
		return fmt.Errorf("NGrow must not be negative, have %d", ip.NGrow)
	}
	if _, err = utils.NewIntervalsParser(ip.ResampleIntervals); err != nil {
		return fmt.Errorf("ResampleIntervals: %w", err)
	}
	return
}

func (ip *InputParametersPIC) SpaceDim() types.SpaceDim {
	return types.SpaceDim(ip.Dimensions)
}

// Domain returns the cell centred index space of the simulation
func (ip *InputParametersPIC) Domain() mesh.Box {
	return mesh.NewDomain(mesh.IntVect(ip.DomainCells), ip.SpaceDim())
}

// Dt is the CFL scaled Courant limit of the Yee scheme
func (ip *InputParametersPIC) Dt() float64 {
	var (
		dim = ip.SpaceDim()
		sum float64
	)
	for d := 0; d < int(dim); d++ {
		sum += 1. / utils.POW(ip.Dx[dim.PhysicalAxis(d)], 2)
	}
	return ip.CFL / (utils.SpeedOfLight * math.Sqrt(sum))
}

func (ip *InputParametersPIC) Print() {
	dim := ip.SpaceDim()
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Dimensions\n", dim)
	fmt.Printf("%v\t\t= Domain Cells\n", ip.DomainCells[:dim])
	fmt.Printf("%v\t= Dx\n", ip.Dx)
	fmt.Printf("[%d]\t\t\t= PML Cells\n", ip.NumPMLCells)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5g\t\t= Dt\n", ip.Dt())
	fmt.Printf("[%d]\t\t\t= Steps\n", ip.Steps)
	fmt.Printf("[%d]\t\t\t= Max Grid Size\n", ip.MaxGridSize)
	fmt.Printf("[%d]\t\t\t= Refinement Ratio\n", ip.RefinementRatio)
	fmt.Printf("[%s]\t\t\t= Resample Intervals\n", ip.ResampleIntervals)
	if len(ip.CheckpointFile) != 0 {
		fmt.Printf("[%s]\t= Checkpoint File\n", ip.CheckpointFile)
	}
}
