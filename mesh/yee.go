package mesh

import "github.com/notargets/gopic/types"

// FieldType names the components of the staggered electromagnetic field
type FieldType uint8

const (
	Ex FieldType = iota
	Ey
	Ez
	Bx
	By
	Bz
	F
)

func (ft FieldType) String() string {
	return [...]string{"Ex", "Ey", "Ez", "Bx", "By", "Bz", "F"}[ft]
}

// YeeType returns the staggering of a field component on the Yee grid. E
// components are cell centred along their own direction and nodal across it,
// B components the reverse, F is fully nodal. In 2D the logical axes are
// (x, z).
func YeeType(ft FieldType, dim types.SpaceDim) (typ IndexType) {
	if ft == F {
		typ = Nodal
		if dim == types.Dim2 {
			typ[2] = false
		}
		return
	}
	var (
		axis = types.Axis(ft % 3)
		isE  = ft < Bx
	)
	for d := 0; d < int(dim); d++ {
		along := dim.PhysicalAxis(d) == axis
		typ[d] = along != isE
	}
	return
}
