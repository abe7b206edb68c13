package pml

import (
	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
)

/*
Damper multiplies the split components of one field cell in place by the
damping factors of the PML tables. Every field carries three split
components. Tables are passed per physical axis and indexed by global
logical index; the caller guarantees (i,j,k) lies inside every table.

The signatures are identical in 2D and 3D. In 2D the logical j index is the
physical z direction, so z tables are indexed by j and y tables are unused.
*/
type Damper interface {
	Dim() types.SpaceDim
	DampEx(i, j, k int, Ex mesh.Array4, facY, facZ, starX SigmaTable)
	DampEy(i, j, k int, Ey mesh.Array4, facZ, facX, starY SigmaTable)
	DampEz(i, j, k int, Ez mesh.Array4, facX, facY, starZ SigmaTable)
	DampBx(i, j, k int, Bx mesh.Array4, starY, starZ SigmaTable)
	DampBy(i, j, k int, By mesh.Array4, starZ, starX SigmaTable)
	DampBz(i, j, k int, Bz mesh.Array4, starX, starY SigmaTable)
	DampF(i, j, k int, F mesh.Array4, facX, facY, facZ SigmaTable)
}

// NewDamper picks the kernels for a dimensionality once, outside any loop
func NewDamper(dim types.SpaceDim) Damper {
	if dim == types.Dim2 {
		return damper2D{}
	}
	return damper3D{}
}

type damper3D struct{}

func (damper3D) Dim() types.SpaceDim { return types.Dim3 }

func (damper3D) DampEx(i, j, k int, Ex mesh.Array4, facY, facZ, starX SigmaTable) {
	Ex.Scale(i, j, k, 0, facY.At(j))
	Ex.Scale(i, j, k, 1, facZ.At(k))
	Ex.Scale(i, j, k, 2, starX.At(i))
}

func (damper3D) DampEy(i, j, k int, Ey mesh.Array4, facZ, facX, starY SigmaTable) {
	Ey.Scale(i, j, k, 0, facZ.At(k))
	Ey.Scale(i, j, k, 1, facX.At(i))
	Ey.Scale(i, j, k, 2, starY.At(j))
}

func (damper3D) DampEz(i, j, k int, Ez mesh.Array4, facX, facY, starZ SigmaTable) {
	Ez.Scale(i, j, k, 0, facX.At(i))
	Ez.Scale(i, j, k, 1, facY.At(j))
	Ez.Scale(i, j, k, 2, starZ.At(k))
}

func (damper3D) DampBx(i, j, k int, Bx mesh.Array4, starY, starZ SigmaTable) {
	Bx.Scale(i, j, k, 0, starY.At(j))
	Bx.Scale(i, j, k, 1, starZ.At(k))
}

func (damper3D) DampBy(i, j, k int, By mesh.Array4, starZ, starX SigmaTable) {
	By.Scale(i, j, k, 0, starZ.At(k))
	By.Scale(i, j, k, 1, starX.At(i))
}

func (damper3D) DampBz(i, j, k int, Bz mesh.Array4, starX, starY SigmaTable) {
	Bz.Scale(i, j, k, 0, starX.At(i))
	Bz.Scale(i, j, k, 1, starY.At(j))
}

func (damper3D) DampF(i, j, k int, F mesh.Array4, facX, facY, facZ SigmaTable) {
	F.Scale(i, j, k, 0, facX.At(i))
	F.Scale(i, j, k, 1, facY.At(j))
	F.Scale(i, j, k, 2, facZ.At(k))
}

type damper2D struct{}

func (damper2D) Dim() types.SpaceDim { return types.Dim2 }

func (damper2D) DampEx(i, j, k int, Ex mesh.Array4, facY, facZ, starX SigmaTable) {
	_ = facY
	Ex.Scale(i, j, k, 1, facZ.At(j))
	Ex.Scale(i, j, k, 2, starX.At(i))
}

func (damper2D) DampEy(i, j, k int, Ey mesh.Array4, facZ, facX, starY SigmaTable) {
	_ = starY
	Ey.Scale(i, j, k, 0, facZ.At(j))
	Ey.Scale(i, j, k, 1, facX.At(i))
}

func (damper2D) DampEz(i, j, k int, Ez mesh.Array4, facX, facY, starZ SigmaTable) {
	_ = facY
	Ez.Scale(i, j, k, 0, facX.At(i))
	Ez.Scale(i, j, k, 2, starZ.At(j))
}

func (damper2D) DampBx(i, j, k int, Bx mesh.Array4, starY, starZ SigmaTable) {
	_ = starY
	Bx.Scale(i, j, k, 1, starZ.At(j))
}

func (damper2D) DampBy(i, j, k int, By mesh.Array4, starZ, starX SigmaTable) {
	By.Scale(i, j, k, 0, starZ.At(j))
	By.Scale(i, j, k, 1, starX.At(i))
}

func (damper2D) DampBz(i, j, k int, Bz mesh.Array4, starX, starY SigmaTable) {
	_ = starY
	Bz.Scale(i, j, k, 0, starX.At(i))
}

func (damper2D) DampF(i, j, k int, F mesh.Array4, facX, facY, facZ SigmaTable) {
	_ = facY
	F.Scale(i, j, k, 0, facX.At(i))
	F.Scale(i, j, k, 2, facZ.At(j))
}
