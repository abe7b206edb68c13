package resampling

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gopic/types"
	"github.com/notargets/gopic/utils"
)

// ParticleTile is the view of one tile of particles handed to a resampling
// algorithm. Algorithms may drop particles and reweight the survivors.
type ParticleTile struct {
	IDs     []types.ParticleID
	Weights []float64
}

func (pt *ParticleTile) NumParticles() int { return len(pt.IDs) }

// Algorithm resamples a tile in place. The implementation is chosen once at
// configuration time.
type Algorithm interface {
	Resample(tile *ParticleTile)
}

/*
Trigger decides when resampling runs. It fires at the steps selected by
Intervals, or whenever the average number of particles per cell exceeds
MaxAvgPPC.
*/
type Trigger struct {
	Intervals utils.IntervalsParser
	MaxAvgPPC float64
	NumCells  float64
}

// NewTrigger parses intervals ("start:stop:period,...", "0" disables) for a
// domain of numCells cells. A non-positive maxAvgPPC disables the density
// criterion.
func NewTrigger(intervals string, maxAvgPPC, numCells float64) (tr Trigger, err error) {
	if tr.Intervals, err = utils.NewIntervalsParser(intervals); err != nil {
		return
	}
	if numCells <= 0 {
		err = fmt.Errorf("number of cells must be positive, have %g", numCells)
		return
	}
	if maxAvgPPC <= 0 {
		maxAvgPPC = math.Inf(1)
	}
	tr.MaxAvgPPC, tr.NumCells = maxAvgPPC, numCells
	return
}

// Triggered reports whether the step about to complete, step+1, resamples
func (tr Trigger) Triggered(step int, globalNumParts float64) bool {
	return tr.Intervals.Contains(step+1) || globalNumParts/tr.NumCells > tr.MaxAvgPPC
}

// Resampling binds a trigger to the algorithm it runs
type Resampling struct {
	Trigger   Trigger
	Algorithm Algorithm
}

func NewResampling(tr Trigger, alg Algorithm) (rs *Resampling, err error) {
	if alg == nil {
		err = fmt.Errorf("resampling needs an algorithm")
		return
	}
	rs = &Resampling{Trigger: tr, Algorithm: alg}
	return
}

func (rs *Resampling) Triggered(step int, globalNumParts float64) bool {
	return rs.Trigger.Triggered(step, globalNumParts)
}

// Apply runs the algorithm on every tile and returns the number of
// particles removed
func (rs *Resampling) Apply(tiles ...*ParticleTile) (removed int) {
	for _, tile := range tiles {
		before := tile.NumParticles()
		rs.Algorithm.Resample(tile)
		removed += before - tile.NumParticles()
	}
	logrus.WithFields(logrus.Fields{
		"component": "resampling",
		"tiles":     len(tiles),
		"removed":   removed,
	}).Debug("resampled particles")
	return
}
