package interp

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

/*
Interpolator samples coarse level fields onto fine level layouts. Each fine
index is mapped to a fractional coarse coordinate and interpolated
trilinearly in 3D or bilinearly over (i, j) in 2D from the enclosing coarse
corners. Coarse data is read from the locally resident valid and ghost
regions of the source; exchanging ghost data beforehand is the caller's job.
Corners not covered by resident data read as zero.

With Assembled set the same interpolation is carried out by a sparse
operator per destination box.
*/
type Interpolator struct {
	Dim            types.SpaceDim
	ParallelDegree int
	Assembled      bool
	log            *logrus.Entry
}

func NewInterpolator(dim types.SpaceDim, ProcLimit int) (it *Interpolator) {
	it = &Interpolator{
		Dim:            dim,
		ParallelDegree: ProcLimit,
		log: logrus.WithFields(logrus.Fields{
			"component": "interp",
			"dim":       dim.String(),
		}),
	}
	return
}

// Scalar returns a new field on fineBA, distributed by dm, with ngrow ghost
// cells, interpolated from Fcp. fineBA must carry the index type of Fcp. A
// nil Fcp returns nil.
func (it *Interpolator) Scalar(Fcp *mesh.MultiFab, fineBA mesh.BoxArray, dm mesh.DistributionMapping,
	ratio mesh.IntVect, ngrow int) (Ffp *mesh.MultiFab) {
	if Fcp == nil {
		return nil
	}
	it.validate(Fcp, fineBA, dm, ratio, ngrow)
	Ffp = mesh.NewMultiFab(fineBA, dm, Fcp.NComp, ngrow, it.Dim)
	for _, n := range Ffp.LocalIndices() {
		var (
			dst = Ffp.Fab(n)
			src = mesh.NewFArrayBox(StencilBox(dst.Box, ratio, it.Dim), Fcp.NComp)
		)
		Fcp.CopyTo(src)
		if it.Assembled {
			NewOperator(src.Box, dst.Box, ratio, it.Dim).Apply(src, dst)
			continue
		}
		it.interpolate(src, dst, ratio)
	}
	it.log.WithFields(logrus.Fields{
		"boxes":     len(fineBA),
		"ratio":     ratio,
		"ngrow":     ngrow,
		"assembled": it.Assembled,
	}).Debug("interpolated coarse field")
	return
}

// Vector interpolates up to three components independently. Component d is
// laid out on fineBAs[d]; nil components stay nil.
func (it *Interpolator) Vector(Fxcp, Fycp, Fzcp *mesh.MultiFab, fineBAs [3]mesh.BoxArray,
	dm mesh.DistributionMapping, ratio mesh.IntVect, ngrow int) (Ffp [3]*mesh.MultiFab) {
	for d, Fcp := range [3]*mesh.MultiFab{Fxcp, Fycp, Fzcp} {
		Ffp[d] = it.Scalar(Fcp, fineBAs[d], dm, ratio, ngrow)
	}
	return
}

func (it *Interpolator) validate(Fcp *mesh.MultiFab, fineBA mesh.BoxArray, dm mesh.DistributionMapping,
	ratio mesh.IntVect, ngrow int) {
	for d := 0; d < int(it.Dim); d++ {
		utils.AlwaysAssert(ratio[d] >= 1, fmt.Sprintf("refinement ratio must be >= 1, have %v", ratio))
	}
	utils.AlwaysAssert(ngrow >= 0, fmt.Sprintf("ghost width must not be negative, have %d", ngrow))
	utils.AlwaysAssert(len(dm.Owners) == len(fineBA),
		fmt.Sprintf("distribution mapping has %d entries for %d boxes", len(dm.Owners), len(fineBA)))
	utils.AlwaysAssert(Fcp.Dim == it.Dim, fmt.Sprintf("field is %s, interpolator is %s", Fcp.Dim, it.Dim))
	if len(fineBA) != 0 {
		utils.AlwaysAssert(fineBA[0].Type == Fcp.IndexType(),
			fmt.Sprintf("fine index type %v differs from coarse %v", fineBA[0].Type, Fcp.IndexType()))
	}
}

// CoarseCoord maps fine index i to its coarse coordinate xc and returns the
// lower enclosing coarse index floor(xc). Nodal data sits at xc = i/r, cell
// centred data at xc = (i+0.5)/r - 0.5.
func CoarseCoord(i, r int, nodal bool) (ic int, xc float64) {
	if nodal {
		return floorDiv(i, r), float64(i) / float64(r)
	}
	return floorDiv(2*i+1-r, 2*r), (float64(i)+0.5)/float64(r) - 0.5
}

func floorDiv(a, b int) (q int) {
	q = a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return
}

// StencilBox returns the coarse box holding every corner needed to
// interpolate the fine box fine.
func StencilBox(fine mesh.Box, ratio mesh.IntVect, dim types.SpaceDim) (b mesh.Box) {
	b.Type = fine.Type
	for d := 0; d < int(dim); d++ {
		lo, _ := CoarseCoord(fine.Lo[d], ratio[d], fine.Type[d])
		hi, _ := CoarseCoord(fine.Hi[d], ratio[d], fine.Type[d])
		b.Lo[d], b.Hi[d] = lo, hi+1
	}
	return
}

func (it *Interpolator) interpolate(src, dst *mesh.FArrayBox, ratio mesh.IntVect) {
	var (
		c, f  = src.Array(), dst.Array()
		typ   = dst.Box.Type
		ncomp = dst.NComp
		body  func(i, j, k int)
	)
	switch it.Dim {
	case types.Dim2:
		body = func(i, j, k int) {
			ci, x := CoarseCoord(i, ratio[0], typ[0])
			cj, y := CoarseCoord(j, ratio[1], typ[1])
			x0, y0 := float64(ci), float64(cj)
			for n := 0; n < ncomp; n++ {
				f.Set(i, j, k, n, utils.BilinearInterp(x0, x0+1, y0, y0+1,
					c.At(ci, cj, 0, n), c.At(ci, cj+1, 0, n),
					c.At(ci+1, cj, 0, n), c.At(ci+1, cj+1, 0, n),
					x, y))
			}
		}
	default:
		body = func(i, j, k int) {
			ci, x := CoarseCoord(i, ratio[0], typ[0])
			cj, y := CoarseCoord(j, ratio[1], typ[1])
			ck, z := CoarseCoord(k, ratio[2], typ[2])
			x0, y0, z0 := float64(ci), float64(cj), float64(ck)
			for n := 0; n < ncomp; n++ {
				f.Set(i, j, k, n, utils.TrilinearInterp(x0, x0+1, y0, y0+1, z0, z0+1,
					c.At(ci, cj, ck, n), c.At(ci, cj, ck+1, n),
					c.At(ci, cj+1, ck, n), c.At(ci, cj+1, ck+1, n),
					c.At(ci+1, cj, ck, n), c.At(ci+1, cj, ck+1, n),
					c.At(ci+1, cj+1, ck, n), c.At(ci+1, cj+1, ck+1, n),
					x, y, z))
			}
		}
	}
	mesh.ParallelForBox(dst.Box, it.ParallelDegree, body)
}
