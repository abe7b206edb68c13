package types

import (
	"fmt"
	"math"
)

/*
ParticleID is a global particle identifier that is unique and permanent for
the whole simulation. The low 32 bits hold the id the particle was given on
the rank that created it, the high 32 bits hold that rank. The id does not
change when the particle later moves to another rank.
*/
type ParticleID uint64

// LocalIDToGlobal packs a local id and the creating rank (cpu) into a global
// id. Both inputs are 32 bit, so distinct pairs always give distinct ids.
func LocalIDToGlobal(id, cpu uint32) ParticleID {
	return ParticleID(uint64(id) | uint64(cpu)<<32)
}

// NewParticleID is LocalIDToGlobal for int inputs, it panics if either value
// does not fit in 32 unsigned bits.
func NewParticleID(id, cpu int) ParticleID {
	var (
		limit = math.MaxUint32
	)
	if id < 0 || id > limit || cpu < 0 || cpu > limit {
		panic(fmt.Errorf("unable to pack local id and cpu into a uint64, have %d and %d as inputs",
			id, cpu))
	}
	return LocalIDToGlobal(uint32(id), uint32(cpu))
}

func (p ParticleID) LocalID() uint32 { return uint32(p & math.MaxUint32) }

func (p ParticleID) CPU() uint32 { return uint32(p >> 32) }

func (p ParticleID) Split() (id, cpu uint32) {
	return p.LocalID(), p.CPU()
}

func (p ParticleID) String() string {
	return fmt.Sprintf("%d@%d", p.LocalID(), p.CPU())
}
