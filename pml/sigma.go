package pml

import (
	"fmt"
	"math"

	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// SigmaTable holds damping factors along one axis, addressed by global
// logical index. Lo is the global index of Fac[0].
type SigmaTable struct {
	Lo  int
	Fac []float64
}

// At returns the factor at global index idx. The index is not checked
// against the table extent beyond Go's slice bounds.
func (st SigmaTable) At(idx int) float64 { return st.Fac[idx-st.Lo] }

func (st SigmaTable) Len() int { return len(st.Fac) }

/*
SigmaBox holds the per axis damping factor tables for one grown box. SigmaFac
is sampled on nodes and SigmaStarFac on cell centres. Both are indexed by
physical axis; in 2D the second logical axis fills the Z tables and the Y
tables stay empty.
*/
type SigmaBox struct {
	Box          mesh.Box
	Dim          types.SpaceDim
	SigmaFac     [3]SigmaTable
	SigmaStarFac [3]SigmaTable
}

/*
NewSigmaBox computes the damping factors for the grown box gbox. Sigma grows
quadratically with the distance d outside domain, reaching its maximum after
ncell cells:

	sigma(d) = 4c/(dx*ncell^2) * d^2

Nodal entries use the distance of the node, star entries the distance of the
cell centre. The stored factor is exp(-sigma*dt), exactly 1 inside the domain.
*/
func NewSigmaBox(gbox, domain mesh.Box, ncell int, dx [3]float64, dt float64,
	dim types.SpaceDim) (sb *SigmaBox, err error) {
	if ncell < 1 {
		err = fmt.Errorf("number of PML cells must be positive, have %d", ncell)
		return
	}
	if dt <= 0 {
		err = fmt.Errorf("time step must be positive, have %g", dt)
		return
	}
	sb = &SigmaBox{Box: gbox, Dim: dim}
	for d := 0; d < int(dim); d++ {
		ax := dim.PhysicalAxis(d)
		if dx[ax] <= 0 {
			err = fmt.Errorf("cell size along %s must be positive, have %g", ax, dx[ax])
			return
		}
		var (
			fac     = 4. * utils.SpeedOfLight / (dx[ax] * float64(ncell*ncell))
			n       = gbox.Length(d) + 1
			sig     = utils.ConstArray(n, 1.)
			sigStar = utils.ConstArray(n, 1.)
			lo, hi  = domain.Lo[d], domain.Hi[d]
			maxD    = float64(ncell)
		)
		for ii := 0; ii < n; ii++ {
			i := gbox.Lo[d] + ii
			var nodeD, cellD float64
			switch {
			case i < lo:
				nodeD, cellD = float64(lo-i), float64(lo-i)-0.5
			case i > hi:
				nodeD, cellD = float64(i-hi-1), float64(i-hi)-0.5
			}
			sig[ii] = damping(fac, math.Min(nodeD, maxD), dt)
			sigStar[ii] = damping(fac, math.Min(cellD, maxD), dt)
		}
		sb.SigmaFac[ax] = SigmaTable{Lo: gbox.Lo[d], Fac: sig}
		sb.SigmaStarFac[ax] = SigmaTable{Lo: gbox.Lo[d], Fac: sigStar}
	}
	return
}

func damping(fac, depth, dt float64) float64 {
	if depth <= 0 {
		return 1
	}
	return math.Exp(-fac * utils.POW(depth, 2) * dt)
}
