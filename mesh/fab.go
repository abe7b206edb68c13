package mesh

import (
	"fmt"
)

// FArrayBox stores ncomp values for every index of a box. The layout is
// i fastest, then j, then k, then the component.
type FArrayBox struct {
	Box   Box
	NComp int
	data  []float64
}

func NewFArrayBox(b Box, ncomp int) *FArrayBox {
	if ncomp < 1 {
		panic(fmt.Errorf("number of components must be positive, have %d", ncomp))
	}
	return &FArrayBox{
		Box:   b,
		NComp: ncomp,
		data:  make([]float64, b.NumPts()*ncomp),
	}
}

func (f *FArrayBox) Data() []float64 { return f.data }

// Comp returns the storage of component n
func (f *FArrayBox) Comp(n int) []float64 {
	np := f.Box.NumPts()
	return f.data[n*np : (n+1)*np]
}

func (f *FArrayBox) SetVal(val float64) {
	for i := range f.data {
		f.data[i] = val
	}
}

func (f *FArrayBox) Array() Array4 {
	var (
		nx, ny = f.Box.Length(0), f.Box.Length(1)
	)
	return Array4{
		data:    f.data,
		lo:      f.Box.Lo,
		jstride: nx,
		kstride: nx * ny,
		nstride: f.Box.NumPts(),
	}
}

// CopyFrom copies ncomp components over the region shared by region, src.Box
// and f.Box.
func (f *FArrayBox) CopyFrom(src *FArrayBox, region Box, srcComp, dstComp, ncomp int) {
	var (
		ok bool
	)
	if region, ok = region.Intersect(src.Box); !ok {
		return
	}
	if region, ok = region.Intersect(f.Box); !ok {
		return
	}
	var (
		s, d = src.Array(), f.Array()
	)
	for n := 0; n < ncomp; n++ {
		region.ForEach(func(i, j, k int) {
			d.Set(i, j, k, dstComp+n, s.At(i, j, k, srcComp+n))
		})
	}
}

/*
Array4 is an allocation free view of an FArrayBox addressed by global logical
indices. Indices outside the box are not checked beyond Go's slice bounds.
*/
type Array4 struct {
	data                      []float64
	lo                        IntVect
	jstride, kstride, nstride int
}

func (a Array4) Index(i, j, k, n int) int {
	return (i - a.lo[0]) + (j-a.lo[1])*a.jstride + (k-a.lo[2])*a.kstride + n*a.nstride
}

func (a Array4) At(i, j, k, n int) float64 { return a.data[a.Index(i, j, k, n)] }

func (a Array4) Set(i, j, k, n int, val float64) { a.data[a.Index(i, j, k, n)] = val }

// Scale multiplies the value at (i,j,k,n) in place
func (a Array4) Scale(i, j, k, n int, fac float64) { a.data[a.Index(i, j, k, n)] *= fac }
