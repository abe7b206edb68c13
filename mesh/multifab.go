package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// DistributionMapping assigns each box of a BoxArray to an owning rank.
// MyRank is the rank of this process.
type DistributionMapping struct {
	Owners []int
	MyRank int
}

// NewDistributionMapping assigns nboxes to nranks in contiguous runs, with at
// most one box of imbalance between ranks.
func NewDistributionMapping(nboxes, nranks, myRank int) (dm DistributionMapping) {
	if nranks < 1 {
		panic(fmt.Errorf("number of ranks must be positive, have %d", nranks))
	}
	dm = DistributionMapping{
		Owners: make([]int, nboxes),
		MyRank: myRank,
	}
	if nboxes == 0 {
		return
	}
	pm := utils.NewPartitionMap(nranks, nboxes)
	for n := 0; n < nboxes; n++ {
		dm.Owners[n], _, _ = pm.GetBucket(n)
	}
	return
}

func (dm DistributionMapping) IsLocal(n int) bool { return dm.Owners[n] == dm.MyRank }

/*
MultiFab is a field distributed over the boxes of a BoxArray. Only the boxes
owned by the local rank have storage; each stores the valid box grown by
NGrow ghost cells.
*/
type MultiFab struct {
	BA    BoxArray
	DM    DistributionMapping
	NComp int
	NGrow IntVect
	Dim   types.SpaceDim
	fabs  []*FArrayBox
}

func NewMultiFab(ba BoxArray, dm DistributionMapping, ncomp, ngrow int, dim types.SpaceDim) (mf *MultiFab) {
	if len(dm.Owners) != len(ba) {
		panic(fmt.Errorf("distribution mapping has %d entries for %d boxes", len(dm.Owners), len(ba)))
	}
	mf = &MultiFab{
		BA:    ba,
		DM:    dm,
		NComp: ncomp,
		NGrow: GrowVect(ngrow, dim),
		Dim:   dim,
		fabs:  make([]*FArrayBox, len(ba)),
	}
	for n := range ba {
		if dm.IsLocal(n) {
			mf.fabs[n] = NewFArrayBox(mf.GrownBox(n), ncomp)
		}
	}
	return
}

func (mf *MultiFab) IndexType() IndexType {
	if len(mf.BA) == 0 {
		return CellCentered
	}
	return mf.BA[0].Type
}

// LocalIndices returns the indices of the boxes stored on this rank
func (mf *MultiFab) LocalIndices() (local []int) {
	for n := range mf.BA {
		if mf.fabs[n] != nil {
			local = append(local, n)
		}
	}
	return
}

func (mf *MultiFab) Fab(n int) *FArrayBox { return mf.fabs[n] }

func (mf *MultiFab) ValidBox(n int) Box { return mf.BA[n] }

func (mf *MultiFab) GrownBox(n int) Box { return mf.BA[n].Grow(mf.NGrow) }

// SetVal sets every component, ghost cells included
func (mf *MultiFab) SetVal(val float64) {
	for _, n := range mf.LocalIndices() {
		mf.fabs[n].SetVal(val)
	}
}

// SetFunc sets component comp on valid and ghost cells from f(i,j,k)
func (mf *MultiFab) SetFunc(comp int, f func(i, j, k int) float64) {
	for _, n := range mf.LocalIndices() {
		a := mf.fabs[n].Array()
		mf.GrownBox(n).ForEach(func(i, j, k int) {
			a.Set(i, j, k, comp, f(i, j, k))
		})
	}
}

// ValidValues gathers component comp over the valid cells of the local boxes
func (mf *MultiFab) ValidValues(comp int) (vals []float64) {
	for _, n := range mf.LocalIndices() {
		a := mf.fabs[n].Array()
		mf.ValidBox(n).ForEach(func(i, j, k int) {
			vals = append(vals, a.At(i, j, k, comp))
		})
	}
	return
}

func (mf *MultiFab) Min(comp int) float64 {
	vals := mf.ValidValues(comp)
	if len(vals) == 0 {
		return math.Inf(1)
	}
	return floats.Min(vals)
}

func (mf *MultiFab) Max(comp int) float64 {
	vals := mf.ValidValues(comp)
	if len(vals) == 0 {
		return math.Inf(-1)
	}
	return floats.Max(vals)
}

// Norm0 is the max norm of component comp over the valid cells
func (mf *MultiFab) Norm0(comp int) float64 {
	vals := mf.ValidValues(comp)
	if len(vals) == 0 {
		return 0
	}
	return floats.Norm(vals, math.Inf(1))
}

/*
CopyTo fills dst from the locally resident data of mf, all components. Ghost
cells are copied first and valid cells after, so valid data wins where a
ghost region overlaps a neighbouring valid box. Cells of dst not covered by
any local data are left untouched.
*/
func (mf *MultiFab) CopyTo(dst *FArrayBox) {
	if dst.NComp != mf.NComp {
		panic(fmt.Errorf("component mismatch copying %d components into %d", mf.NComp, dst.NComp))
	}
	local := mf.LocalIndices()
	for _, n := range local {
		dst.CopyFrom(mf.fabs[n], mf.GrownBox(n), 0, 0, mf.NComp)
	}
	for _, n := range local {
		dst.CopyFrom(mf.fabs[n], mf.ValidBox(n), 0, 0, mf.NComp)
	}
}

// ParallelCopy fills every local fab of mf, ghost cells included, from src
func (mf *MultiFab) ParallelCopy(src *MultiFab) {
	for _, n := range mf.LocalIndices() {
		src.CopyTo(mf.fabs[n])
	}
}
