package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// ConstArray returns n copies of val
func ConstArray[T constraints.Integer | constraints.Float](n int, val T) (v []T) {
	v = make([]T, n)
	for i := range v {
		v[i] = val
	}
	return
}

// POW raises x to an integer power. Small exponents are done by repeated
// squaring, which is exact for the quadratic sigma grading, larger ones fall
// back to math.Pow.
func POW(x float64, p int) (y float64) {
	if p > 8 || p < -8 {
		return math.Pow(x, float64(p))
	}
	var (
		n = p
	)
	if n < 0 {
		n = -n
	}
	y = 1
	for sq := x; n > 0; n >>= 1 {
		if n&1 == 1 {
			y *= sq
		}
		sq *= sq
	}
	if p < 0 {
		y = 1. / y
	}
	return
}
