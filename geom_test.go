package capsulefit

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistancePointToSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		p, a, b r3.Vector
		want    float64
	}{
		{
			name: "perpendicular foot inside segment",
			p:    r3.Vector{X: 1, Y: 2, Z: 0},
			a:    r3.Vector{X: 0, Y: 0, Z: 0},
			b:    r3.Vector{X: 4, Y: 0, Z: 0},
			want: 2,
		},
		{
			name: "foot beyond b clamps to b",
			p:    r3.Vector{X: 7, Y: 4, Z: 0},
			a:    r3.Vector{X: 0, Y: 0, Z: 0},
			b:    r3.Vector{X: 4, Y: 0, Z: 0},
			want: 5, // 3-4-5 triangle from b
		},
		{
			name: "foot before a clamps to a",
			p:    r3.Vector{X: -3, Y: 4, Z: 0},
			a:    r3.Vector{X: 0, Y: 0, Z: 0},
			b:    r3.Vector{X: 4, Y: 0, Z: 0},
			want: 5,
		},
		{
			name: "point on segment",
			p:    r3.Vector{X: 2, Y: 0, Z: 0},
			a:    r3.Vector{X: 0, Y: 0, Z: 0},
			b:    r3.Vector{X: 4, Y: 0, Z: 0},
			want: 0,
		},
		{
			name: "degenerate segment reduces to point distance",
			p:    r3.Vector{X: 1, Y: 2, Z: 2},
			a:    r3.Vector{X: 0, Y: 0, Z: 0},
			b:    r3.Vector{X: 0, Y: 0, Z: 0},
			want: 3,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DistancePointToSegment(tt.p, tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestDistancePointToSegmentDegenerateEqualsPointDistance(t *testing.T) {
	t.Parallel()

	// For a == b, the distance must equal |p-a| for arbitrary points.
	pts := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: -2, Z: 3},
		{X: -5.5, Y: 0.25, Z: 1e3},
	}
	anchors := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 2, Z: 2},
	}
	for _, p := range pts {
		for _, a := range anchors {
			assert.InDelta(t, p.Distance(a), DistancePointToSegment(p, a, a), 1e-12)
		}
	}
}

func TestProjectionOnSegment(t *testing.T) {
	t.Parallel()

	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 4, Y: 0, Z: 0}

	t.Run("interior foot", func(t *testing.T) {
		t.Parallel()
		got := ProjectionOnSegment(r3.Vector{X: 1, Y: 7, Z: -2}, a, b)
		assert.InDelta(t, 1, got.X, 1e-12)
		assert.InDelta(t, 0, got.Y, 1e-12)
		assert.InDelta(t, 0, got.Z, 1e-12)
	})

	t.Run("clamped to end point", func(t *testing.T) {
		t.Parallel()
		got := ProjectionOnSegment(r3.Vector{X: 9, Y: 1, Z: 0}, a, b)
		assert.Equal(t, b, got)
	})

	t.Run("degenerate segment projects to the point itself", func(t *testing.T) {
		t.Parallel()
		got := ProjectionOnSegment(r3.Vector{X: 9, Y: 1, Z: 0}, a, a)
		assert.Equal(t, a, got)
	})

	t.Run("projection is the distance minimiser", func(t *testing.T) {
		t.Parallel()
		p := r3.Vector{X: 2.5, Y: -3, Z: 1}
		proj := ProjectionOnSegment(p, a, b)
		assert.InDelta(t, DistancePointToSegment(p, a, b), p.Distance(proj), 1e-12)
	})
}

func TestDistancePointToLine(t *testing.T) {
	t.Parallel()

	t.Run("unnormalised direction", func(t *testing.T) {
		t.Parallel()
		d, err := DistancePointToLine(
			r3.Vector{X: 0, Y: 3, Z: 0},
			r3.Vector{X: -10, Y: 0, Z: 0},
			r3.Vector{X: 5, Y: 0, Z: 0}, // same line as the unit x axis
		)
		require.NoError(t, err)
		assert.InDelta(t, 3, d, 1e-12)
	})

	t.Run("no clamping on the infinite line", func(t *testing.T) {
		t.Parallel()
		// Far beyond the anchor point along the line: still distance 4.
		d, err := DistancePointToLine(
			r3.Vector{X: 1e6, Y: 0, Z: 4},
			r3.Vector{X: 0, Y: 0, Z: 0},
			r3.Vector{X: 1, Y: 0, Z: 0},
		)
		require.NoError(t, err)
		assert.InDelta(t, 4, d, 1e-6)
	})

	t.Run("zero direction is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := DistancePointToLine(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{}, r3.Vector{})
		require.ErrorIs(t, err, ErrZeroDirection)
	})

	t.Run("point on the line", func(t *testing.T) {
		t.Parallel()
		d, err := DistancePointToLine(
			r3.Vector{X: 3, Y: 3, Z: 3},
			r3.Vector{X: 0, Y: 0, Z: 0},
			r3.Vector{X: 1, Y: 1, Z: 1},
		)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-12)
	})
}

func TestSegmentParamClampRange(t *testing.T) {
	t.Parallel()

	a := r3.Vector{X: -1, Y: 2, Z: 0.5}
	b := r3.Vector{X: 3, Y: -1, Z: 2}
	for _, p := range []r3.Vector{
		{X: -100, Y: 0, Z: 0},
		{X: 100, Y: 0, Z: 0},
		{X: 0.5, Y: 0.5, Z: 1},
	} {
		tt := segmentParam(p, a, b)
		assert.GreaterOrEqual(t, tt, 0.0)
		assert.LessOrEqual(t, tt, 1.0)
	}
	assert.False(t, math.IsNaN(segmentParam(r3.Vector{}, a, b)))
}
