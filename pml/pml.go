package pml

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gopic/mesh"
	"github.com/notargets/gopic/types"
)

/*
PML damps split electromagnetic fields laid out over a BoxArray. It owns one
SigmaBox per locally resident box, sized to the box grown by NGrow cells.
Fields passed to the Damp methods must be laid out over the same BoxArray
with the Yee staggering of their component, three split components each, and
no more than NGrow ghost cells.
*/
type PML struct {
	Domain         mesh.Box
	BA             mesh.BoxArray
	DM             mesh.DistributionMapping
	Dim            types.SpaceDim
	NCell, NGrow   int
	ParallelDegree int
	damper         Damper
	sigma          []*SigmaBox
	log            *logrus.Entry
}

func NewPML(ba mesh.BoxArray, dm mesh.DistributionMapping, domain mesh.Box,
	ncell, ngrow int, dx [3]float64, dt float64, dim types.SpaceDim, ProcLimit int) (p *PML, err error) {
	if len(dm.Owners) != len(ba) {
		err = fmt.Errorf("distribution mapping has %d entries for %d boxes", len(dm.Owners), len(ba))
		return
	}
	if ngrow < 0 {
		err = fmt.Errorf("ghost width must not be negative, have %d", ngrow)
		return
	}
	p = &PML{
		Domain:         domain,
		BA:             ba,
		DM:             dm,
		Dim:            dim,
		NCell:          ncell,
		NGrow:          ngrow,
		ParallelDegree: ProcLimit,
		damper:         NewDamper(dim),
		sigma:          make([]*SigmaBox, len(ba)),
		log: logrus.WithFields(logrus.Fields{
			"component": "pml",
			"dim":       dim.String(),
		}),
	}
	gv := mesh.GrowVect(ngrow, dim)
	for n := range ba {
		if !dm.IsLocal(n) {
			continue
		}
		if p.sigma[n], err = NewSigmaBox(ba[n].Grow(gv), domain, ncell, dx, dt, dim); err != nil {
			return nil, err
		}
	}
	p.log.WithFields(logrus.Fields{
		"boxes": len(ba),
		"ncell": ncell,
		"ngrow": ngrow,
	}).Debug("computed PML damping tables")
	return
}

func (p *PML) Damper() Damper { return p.damper }

// SigmaBox returns the tables of box n, nil when the box is not local
func (p *PML) SigmaBox(n int) *SigmaBox { return p.sigma[n] }

// NewField allocates a zeroed split field for component ft on the PML layout
func (p *PML) NewField(ft mesh.FieldType) *mesh.MultiFab {
	return mesh.NewMultiFab(p.BA.Convert(mesh.YeeType(ft, p.Dim)), p.DM, 3, p.NGrow, p.Dim)
}

// DampE damps the three electric field components. A nil component is skipped.
func (p *PML) DampE(Ex, Ey, Ez *mesh.MultiFab) (err error) {
	if err = p.check(Ex, Ey, Ez); err != nil {
		return
	}
	d := p.damper
	p.forEachCell(Ex, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampEx(i, j, k, a, sb.SigmaFac[types.Y], sb.SigmaFac[types.Z], sb.SigmaStarFac[types.X])
	})
	p.forEachCell(Ey, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampEy(i, j, k, a, sb.SigmaFac[types.Z], sb.SigmaFac[types.X], sb.SigmaStarFac[types.Y])
	})
	p.forEachCell(Ez, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampEz(i, j, k, a, sb.SigmaFac[types.X], sb.SigmaFac[types.Y], sb.SigmaStarFac[types.Z])
	})
	return
}

// DampB damps the three magnetic field components. A nil component is skipped.
func (p *PML) DampB(Bx, By, Bz *mesh.MultiFab) (err error) {
	if err = p.check(Bx, By, Bz); err != nil {
		return
	}
	d := p.damper
	p.forEachCell(Bx, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampBx(i, j, k, a, sb.SigmaStarFac[types.Y], sb.SigmaStarFac[types.Z])
	})
	p.forEachCell(By, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampBy(i, j, k, a, sb.SigmaStarFac[types.Z], sb.SigmaStarFac[types.X])
	})
	p.forEachCell(Bz, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampBz(i, j, k, a, sb.SigmaStarFac[types.X], sb.SigmaStarFac[types.Y])
	})
	return
}

// DampF damps the split divergence cleaning scalar
func (p *PML) DampF(F *mesh.MultiFab) (err error) {
	if err = p.check(F); err != nil {
		return
	}
	d := p.damper
	p.forEachCell(F, func(sb *SigmaBox, a mesh.Array4, i, j, k int) {
		d.DampF(i, j, k, a, sb.SigmaFac[types.X], sb.SigmaFac[types.Y], sb.SigmaFac[types.Z])
	})
	return
}

func (p *PML) check(fields ...*mesh.MultiFab) error {
	for _, mf := range fields {
		if mf == nil {
			continue
		}
		switch {
		case len(mf.BA) != len(p.BA):
			return fmt.Errorf("field has %d boxes, PML has %d", len(mf.BA), len(p.BA))
		case mf.NComp != 3:
			return fmt.Errorf("split field needs 3 components, have %d", mf.NComp)
		case mf.Dim != p.Dim:
			return fmt.Errorf("field is %s, PML is %s", mf.Dim, p.Dim)
		}
		for d := 0; d < 3; d++ {
			if mf.NGrow[d] > mesh.GrowVect(p.NGrow, p.Dim)[d] {
				return fmt.Errorf("field ghost width %v exceeds PML ghost width %d", mf.NGrow, p.NGrow)
			}
		}
		for _, n := range mf.LocalIndices() {
			if p.sigma[n] == nil {
				return fmt.Errorf("field box %d is local but has no PML tables", n)
			}
		}
	}
	return nil
}

func (p *PML) forEachCell(mf *mesh.MultiFab, f func(sb *SigmaBox, a mesh.Array4, i, j, k int)) {
	if mf == nil {
		return
	}
	for _, n := range mf.LocalIndices() {
		var (
			sb = p.sigma[n]
			a  = mf.Fab(n).Array()
		)
		mesh.ParallelForBox(mf.GrownBox(n), p.ParallelDegree, func(i, j, k int) {
			f(sb, a, i, j, k)
		})
	}
}
