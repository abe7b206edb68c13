package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalsParser(t *testing.T) {
	{ // Bare period
		ip, err := NewIntervalsParser("10")
		require.NoError(t, err)
		assert.True(t, ip.IsActivated())
		assert.True(t, ip.Contains(0))
		assert.True(t, ip.Contains(30))
		assert.False(t, ip.Contains(31))
		assert.Equal(t, 40, ip.NextContains(30))
		assert.Equal(t, 10, ip.NextContains(0))
	}
	{ // Full slice with empty fields
		sp, err := NewSliceParser("5::3")
		require.NoError(t, err)
		assert.Equal(t, SliceParser{Start: 5, Stop: math.MaxInt, Period: 3}, sp)
		sp, err = NewSliceParser(":20:")
		require.NoError(t, err)
		assert.Equal(t, SliceParser{Start: 0, Stop: 20, Period: 1}, sp)
		sp, err = NewSliceParser("2:8")
		require.NoError(t, err)
		assert.Equal(t, SliceParser{Start: 2, Stop: 8, Period: 1}, sp)
		assert.False(t, sp.Contains(1))
		assert.True(t, sp.Contains(8))
		assert.False(t, sp.Contains(9))
		assert.Equal(t, 2, sp.NextContains(0))
		assert.Equal(t, math.MaxInt, sp.NextContains(8))
	}
	{ // Several slices
		ip, err := NewIntervalsParser("0:100:50, 120:130:5")
		require.NoError(t, err)
		require.Len(t, ip.Slices, 2)
		for _, n := range []int{0, 50, 100, 120, 125, 130} {
			assert.True(t, ip.Contains(n), "n = %d", n)
		}
		for _, n := range []int{1, 99, 115, 131, 150} {
			assert.False(t, ip.Contains(n), "n = %d", n)
		}
		assert.Equal(t, 120, ip.NextContains(100))
		assert.Equal(t, math.MaxInt, ip.NextContains(130))
	}
	{ // Deactivated
		ip, err := NewIntervalsParser("0")
		require.NoError(t, err)
		assert.False(t, ip.IsActivated())
		assert.False(t, ip.Contains(0))
		assert.Equal(t, math.MaxInt, ip.NextContains(0))
		ip, err = NewIntervalsParser("")
		require.NoError(t, err)
		assert.False(t, ip.IsActivated())
	}
	{ // Errors
		_, err := NewIntervalsParser("1:2:3:4")
		assert.Error(t, err)
		_, err = NewIntervalsParser("a:10")
		assert.Error(t, err)
	}
}
