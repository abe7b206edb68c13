package interp

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
)

// Operator is the coarse to fine interpolation from the coarse box Src to
// the fine box Dst assembled as a sparse matrix. Row r holds the corner
// weights of fine point r of Dst, columns index points of Src.
type Operator struct {
	Src, Dst mesh.Box
	M        *sparse.CSR
}

func NewOperator(src, dst mesh.Box, ratio mesh.IntVect, dim types.SpaceDim) (op *Operator) {
	var (
		dok = sparse.NewDOK(dst.NumPts(), src.NumPts())
		nc  = 1 << uint(dim)
	)
	dst.ForEach(func(i, j, k int) {
		var (
			lo [3]int
			w  [3][2]float64
			fi = [3]int{i, j, k}
		)
		for d := 0; d < 3; d++ {
			if d >= int(dim) {
				lo[d], w[d] = fi[d], [2]float64{1, 0}
				continue
			}
			ic, xc := CoarseCoord(fi[d], ratio[d], dst.Type[d])
			lo[d], w[d] = ic, [2]float64{float64(ic+1) - xc, xc - float64(ic)}
		}
		row := dst.Index(i, j, k)
		for corner := 0; corner < nc; corner++ {
			var (
				ci     [3]int
				weight = 1.
			)
			for d := 0; d < 3; d++ {
				bit := (corner >> uint(d)) & 1
				ci[d] = lo[d] + bit
				weight *= w[d][bit]
			}
			if weight == 0 {
				continue
			}
			dok.Set(row, src.Index(ci[0], ci[1], ci[2]), weight)
		}
	})
	op = &Operator{
		Src: src,
		Dst: dst,
		M:   dok.ToCSR(),
	}
	return
}

func (op *Operator) NNZ() int { return op.M.NNZ() }

// Apply fills every component of dst from src
func (op *Operator) Apply(src, dst *mesh.FArrayBox) {
	if src.Box != op.Src || dst.Box != op.Dst {
		panic(fmt.Errorf("operator maps %v to %v, have %v to %v", op.Src, op.Dst, src.Box, dst.Box))
	}
	if src.NComp != dst.NComp {
		panic(fmt.Errorf("component mismatch applying %d components to %d", src.NComp, dst.NComp))
	}
	for n := 0; n < dst.NComp; n++ {
		y := dst.Comp(n)
		// MulVecTo accumulates into y
		for i := range y {
			y[i] = 0
		}
		op.M.MulVecTo(y, false, src.Comp(n))
	}
}
