package utils

import "golang.org/x/exp/constraints"

/*
	The routines in this file are written to run inside a single lane of a
	parallel dispatch: no recursion, no allocation, no error returns.
*/

// UpperBound returns the position of the first element of s that is greater
// than val, or len(s) if there is none. s must be sorted in non-descending
// order. To search a sub range [first, last) pass s[first:last]; the result
// is then relative to first.
func UpperBound[T constraints.Ordered](s []T, val T) (first int) {
	var (
		count = len(s)
		step  int
		it    int
	)
	for count > 0 {
		it = first
		step = count / 2
		it += step
		if !(val < s[it]) {
			it++
			first = it
			count -= step + 1
		} else {
			count = step
		}
	}
	return
}

// LinearInterp interpolates between (x0, f0) and (x1, f1) at x.
// x1 == x0 is a degenerate cell and is not checked.
func LinearInterp[T constraints.Float](x0, x1, f0, f1, x T) T {
	return ((x1-x)*f0 + (x-x0)*f1) / (x1 - x0)
}

// BilinearInterp interpolates at (x,y) from the four corners
// (x0,y0,f00), (x0,y1,f01), (x1,y0,f10), (x1,y1,f11), first along x then y.
func BilinearInterp[T constraints.Float](x0, x1, y0, y1, f00, f01, f10, f11, x, y T) T {
	var (
		fx0 = LinearInterp(x0, x1, f00, f10, x)
		fx1 = LinearInterp(x0, x1, f01, f11, x)
	)
	return LinearInterp(y0, y1, fx0, fx1, y)
}

// TrilinearInterp interpolates at (x,y,z) from the eight corners fXYZ, where
// each digit selects the lower (0) or upper (1) bound along that axis.
func TrilinearInterp[T constraints.Float](x0, x1, y0, y1, z0, z1,
	f000, f001, f010, f011, f100, f101, f110, f111, x, y, z T) T {
	var (
		fxy0 = BilinearInterp(x0, x1, y0, y1, f000, f010, f100, f110, x, y)
		fxy1 = BilinearInterp(x0, x1, y0, y1, f001, f011, f101, f111, x, y)
	)
	return LinearInterp(z0, z1, fxy0, fxy1, z)
}
