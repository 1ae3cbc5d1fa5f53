package capsulefit

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtremePointsAlongDirection(t *testing.T) {
	t.Parallel()

	xAxis := r3.Vector{X: 1, Y: 0, Z: 0}

	t.Run("empty set is rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := ExtremePointsAlongDirection(xAxis, nil)
		require.ErrorIs(t, err, ErrEmptyPointSet)
	})

	t.Run("single point is both extremes", func(t *testing.T) {
		t.Parallel()
		imin, imax, err := ExtremePointsAlongDirection(xAxis, []r3.Vector{{X: 5, Y: 5, Z: 5}})
		require.NoError(t, err)
		assert.Equal(t, 0, imin)
		assert.Equal(t, 0, imax)
	})

	t.Run("finds min and max projections", func(t *testing.T) {
		t.Parallel()
		pts := []r3.Vector{
			{X: 2, Y: 9, Z: 0},
			{X: -7, Y: 1, Z: 3},
			{X: 4, Y: 0, Z: -1},
			{X: 0, Y: 0, Z: 0},
		}
		imin, imax, err := ExtremePointsAlongDirection(xAxis, pts)
		require.NoError(t, err)
		assert.Equal(t, 1, imin)
		assert.Equal(t, 2, imax)
	})

	t.Run("diagonal direction", func(t *testing.T) {
		t.Parallel()
		pts := []r3.Vector{
			{X: 1, Y: 1, Z: 1},
			{X: -1, Y: -1, Z: -1},
			{X: 2, Y: 0, Z: 0},
		}
		imin, imax, err := ExtremePointsAlongDirection(r3.Vector{X: 1, Y: 1, Z: 1}, pts)
		require.NoError(t, err)
		assert.Equal(t, 1, imin)
		assert.Equal(t, 0, imax)
	})

	t.Run("ties resolve to the first occurrence", func(t *testing.T) {
		t.Parallel()
		pts := []r3.Vector{
			{X: 3, Y: 0, Z: 0},
			{X: 3, Y: 1, Z: 0}, // same projection as index 0
			{X: -3, Y: 0, Z: 0},
			{X: -3, Y: 2, Z: 0}, // same projection as index 2
		}
		imin, imax, err := ExtremePointsAlongDirection(xAxis, pts)
		require.NoError(t, err)
		assert.Equal(t, 2, imin)
		assert.Equal(t, 0, imax)
	})
}
