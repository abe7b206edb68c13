package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpperBound(t *testing.T) {
	{ // Duplicates are skipped, out of range values map to the ends
		s := []float64{1, 3, 3, 5}
		assert.Equal(t, 3, UpperBound(s, 3.))
		assert.Equal(t, 0, UpperBound(s, 0.))
		assert.Equal(t, 4, UpperBound(s, 6.))
		assert.Equal(t, 1, UpperBound(s, 1.))
		assert.Equal(t, 1, UpperBound(s, 2.))
		assert.Equal(t, 4, UpperBound(s, 5.))
	}
	{ // Empty range
		assert.Equal(t, 0, UpperBound([]int{}, 7))
		assert.Equal(t, 0, UpperBound[int](nil, 7))
	}
	{ // Sub range [first, last) is relative to first
		s := []int{0, 1, 2, 2, 2, 3, 9}
		first, last := 2, 6
		assert.Equal(t, 3, UpperBound(s[first:last], 2))
		assert.Equal(t, 5, first+UpperBound(s[first:last], 2))
	}
	{ // Agrees with sort.Search over runs of duplicates
		s := []int{-4, -4, -1, 0, 0, 0, 2, 7, 7, 8, 11, 11, 11}
		for val := -6; val < 14; val++ {
			expected := sort.Search(len(s), func(i int) bool { return s[i] > val })
			assert.Equal(t, expected, UpperBound(s, val), "val = %d", val)
		}
	}
	{ // Strings are ordered too
		assert.Equal(t, 2, UpperBound([]string{"a", "b", "d"}, "c"))
	}
}

func TestLinearInterpolation(t *testing.T) {
	{ // Linear
		assert.Equal(t, 2., LinearInterp(0., 1., 1., 3., 0.5))
		assert.Equal(t, 1., LinearInterp(0., 1., 1., 3., 0.))
		assert.Equal(t, 3., LinearInterp(0., 1., 1., 3., 1.))
		assert.InDelta(t, 4.5, LinearInterp(-1., 3., 0., 6., 2.), 1.e-14)
		assert.Equal(t, float32(2), LinearInterp[float32](0, 1, 1, 3, 0.5))
	}
	{ // Constant corners are invariant
		assert.Equal(t, 7., LinearInterp(0., 1., 7., 7., 0.25))
		assert.Equal(t, 7., BilinearInterp(0., 1., 0., 1., 7., 7., 7., 7., 0.25, 0.5))
		assert.Equal(t, 7., TrilinearInterp(0., 1., 0., 1., 0., 1.,
			7., 7., 7., 7., 7., 7., 7., 7., 0.25, 0.5, 0.75))
	}
	{ // Bilinear reproduces f = 1 + 2x + 3y + 4xy exactly
		f := func(x, y float64) float64 { return 1 + 2*x + 3*y + 4*x*y }
		x0, x1, y0, y1 := 1., 3., -1., 1.
		for _, p := range [][2]float64{{1, -1}, {3, 1}, {2, 0}, {1.5, 0.25}, {2.75, -0.5}} {
			val := BilinearInterp(x0, x1, y0, y1,
				f(x0, y0), f(x0, y1), f(x1, y0), f(x1, y1), p[0], p[1])
			assert.InDelta(t, f(p[0], p[1]), val, 1.e-12)
		}
	}
	{ // Trilinear reproduces f = 1 + x - 2y + 3z + xyz exactly
		f := func(x, y, z float64) float64 { return 1 + x - 2*y + 3*z + x*y*z }
		x0, x1, y0, y1, z0, z1 := 0., 2., 0., 1., -1., 1.
		c := func(x, y, z float64) float64 { return f(x, y, z) }
		for _, p := range [][3]float64{{0, 0, -1}, {2, 1, 1}, {1, 0.5, 0}, {0.3, 0.9, -0.2}} {
			val := TrilinearInterp(x0, x1, y0, y1, z0, z1,
				c(x0, y0, z0), c(x0, y0, z1), c(x0, y1, z0), c(x0, y1, z1),
				c(x1, y0, z0), c(x1, y0, z1), c(x1, y1, z0), c(x1, y1, z1),
				p[0], p[1], p[2])
			assert.InDelta(t, f(p[0], p[1], p[2]), val, 1.e-12)
		}
	}
	{ // Trilinear reduces to bilinear when values do not vary along z
		var (
			f00, f01, f10, f11 = 1., 4., -2., 8.
			x, y               = 0.3, 0.6
		)
		bi := BilinearInterp(0., 1., 0., 1., f00, f01, f10, f11, x, y)
		for _, z := range []float64{0, 0.25, 1} {
			tri := TrilinearInterp(0., 1., 0., 1., 0., 1.,
				f00, f00, f01, f01, f10, f10, f11, f11, x, y, z)
			assert.InDelta(t, bi, tri, 1.e-14)
		}
		// and bilinear reduces to linear when values do not vary along y
		lin := LinearInterp(0., 1., f00, f10, x)
		assert.InDelta(t, lin, BilinearInterp(0., 1., 0., 1., f00, f00, f10, f10, x, y), 1.e-14)
	}
}
