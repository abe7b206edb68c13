package types

import "fmt"

// SpaceDim selects 2D or 3D axis semantics. In 2D the second logical index
// (j) is the physical z direction and there is no y axis.
type SpaceDim uint8

const (
	Dim2 SpaceDim = 2
	Dim3 SpaceDim = 3
)

// Axis is a physical direction
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func NewSpaceDim(n int) (sd SpaceDim, err error) {
	switch n {
	case 2:
		sd = Dim2
	case 3:
		sd = Dim3
	default:
		err = fmt.Errorf("dimensionality must be 2 or 3, have %d", n)
	}
	return
}

func (sd SpaceDim) String() string {
	return fmt.Sprintf("%dD", int(sd))
}

// PhysicalAxis returns the physical axis that logical index d represents
func (sd SpaceDim) PhysicalAxis(d int) Axis {
	if sd == Dim2 && d == 1 {
		return Z
	}
	return Axis(d)
}

// LogicalIndex returns the logical index along which physical axis a varies,
// or -1 if the axis does not exist in this dimensionality.
func (sd SpaceDim) LogicalIndex(a Axis) int {
	if sd == Dim2 {
		switch a {
		case X:
			return 0
		case Z:
			return 1
		default:
			return -1
		}
	}
	return int(a)
}

func (a Axis) String() string {
	return [3]string{"x", "y", "z"}[a]
}
