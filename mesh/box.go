package mesh

import (
	"fmt"

	"github.com/notargets/gopic/types"
)

// IntVect is a logical (i,j,k) triple. In 2D the k entry is unused.
type IntVect [3]int

// UniformRatio returns a refinement ratio of r along every active axis
func UniformRatio(r int, dim types.SpaceDim) IntVect {
	if dim == types.Dim2 {
		return IntVect{r, r, 1}
	}
	return IntVect{r, r, r}
}

// GrowVect returns a ghost width of n along every active axis
func GrowVect(n int, dim types.SpaceDim) IntVect {
	if dim == types.Dim2 {
		return IntVect{n, n, 0}
	}
	return IntVect{n, n, n}
}

// IndexType flags, per axis, whether data sits on nodes (true) or cell
// centres (false).
type IndexType [3]bool

var (
	CellCentered = IndexType{false, false, false}
	Nodal        = IndexType{true, true, true}
)

// Box is an inclusive range of logical indices with an index type.
type Box struct {
	Lo, Hi IntVect
	Type   IndexType
}

// NewBox returns a cell centred box
func NewBox(lo, hi IntVect) Box {
	return Box{Lo: lo, Hi: hi}
}

// NewDomain returns the cell centred box [0, n-1] on each active axis
func NewDomain(n IntVect, dim types.SpaceDim) (b Box) {
	for d := 0; d < 3; d++ {
		b.Hi[d] = n[d] - 1
	}
	if dim == types.Dim2 {
		b.Hi[2] = 0
	}
	return
}

func (b Box) Length(d int) int { return b.Hi[d] - b.Lo[d] + 1 }

func (b Box) Size() IntVect {
	return IntVect{b.Length(0), b.Length(1), b.Length(2)}
}

func (b Box) NumPts() int {
	if b.IsEmpty() {
		return 0
	}
	return b.Length(0) * b.Length(1) * b.Length(2)
}

func (b Box) IsEmpty() bool {
	return b.Hi[0] < b.Lo[0] || b.Hi[1] < b.Lo[1] || b.Hi[2] < b.Lo[2]
}

func (b Box) Contains(i, j, k int) bool {
	return b.Lo[0] <= i && i <= b.Hi[0] &&
		b.Lo[1] <= j && j <= b.Hi[1] &&
		b.Lo[2] <= k && k <= b.Hi[2]
}

func (b Box) ContainsBox(o Box) bool {
	return b.Contains(o.Lo[0], o.Lo[1], o.Lo[2]) && b.Contains(o.Hi[0], o.Hi[1], o.Hi[2])
}

// Intersect returns the overlap of two boxes of the same index type
func (b Box) Intersect(o Box) (r Box, ok bool) {
	if b.Type != o.Type {
		panic(fmt.Errorf("intersecting boxes of different index types %v and %v", b.Type, o.Type))
	}
	r.Type = b.Type
	for d := 0; d < 3; d++ {
		r.Lo[d] = max(b.Lo[d], o.Lo[d])
		r.Hi[d] = min(b.Hi[d], o.Hi[d])
	}
	ok = !r.IsEmpty()
	return
}

func (b Box) Grow(n IntVect) Box {
	for d := 0; d < 3; d++ {
		b.Lo[d] -= n[d]
		b.Hi[d] += n[d]
	}
	return b
}

// Convert changes the index type, a nodal axis has one more point than the
// cell centred axis covering the same cells.
func (b Box) Convert(typ IndexType) Box {
	for d := 0; d < 3; d++ {
		switch {
		case typ[d] && !b.Type[d]:
			b.Hi[d]++
		case !typ[d] && b.Type[d]:
			b.Hi[d]--
		}
	}
	b.Type = typ
	return b
}

// Refine maps the box onto a level r times finer
func (b Box) Refine(r IntVect) Box {
	for d := 0; d < 3; d++ {
		b.Lo[d] *= r[d]
		if b.Type[d] {
			b.Hi[d] *= r[d]
		} else {
			b.Hi[d] = (b.Hi[d]+1)*r[d] - 1
		}
	}
	return b
}

// Chop splits a box into pieces no longer than maxSize along each axis
func (b Box) Chop(maxSize int) (ba BoxArray) {
	ba = BoxArray{b}
	if maxSize < 1 {
		return
	}
	for d := 0; d < 3; d++ {
		var next BoxArray
		for _, bx := range ba {
			for lo := bx.Lo[d]; lo <= bx.Hi[d]; lo += maxSize {
				piece := bx
				piece.Lo[d] = lo
				piece.Hi[d] = min(lo+maxSize-1, bx.Hi[d])
				next = append(next, piece)
			}
		}
		ba = next
	}
	return
}

// Index returns the offset of (i,j,k) in a column ordered array over the box
func (b Box) Index(i, j, k int) int {
	var (
		nx, ny = b.Length(0), b.Length(1)
	)
	return (i - b.Lo[0]) + nx*((j-b.Lo[1])+ny*(k-b.Lo[2]))
}

func (b Box) String() string {
	return fmt.Sprintf("((%d,%d,%d) (%d,%d,%d) %v)",
		b.Lo[0], b.Lo[1], b.Lo[2], b.Hi[0], b.Hi[1], b.Hi[2], b.Type)
}

// ForEach visits every index of the box, i fastest
func (b Box) ForEach(f func(i, j, k int)) {
	for k := b.Lo[2]; k <= b.Hi[2]; k++ {
		for j := b.Lo[1]; j <= b.Hi[1]; j++ {
			for i := b.Lo[0]; i <= b.Hi[0]; i++ {
				f(i, j, k)
			}
		}
	}
}

type BoxArray []Box

func (ba BoxArray) Convert(typ IndexType) (r BoxArray) {
	r = make(BoxArray, len(ba))
	for n, b := range ba {
		r[n] = b.Convert(typ)
	}
	return
}

func (ba BoxArray) Refine(ratio IntVect) (r BoxArray) {
	r = make(BoxArray, len(ba))
	for n, b := range ba {
		r[n] = b.Refine(ratio)
	}
	return
}

func (ba BoxArray) NumPts() (np int) {
	for _, b := range ba {
		np += b.NumPts()
	}
	return
}
