package math2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		theta    float64
		expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
	}

	for _, tt := range tests {
		got := NormalizeAngle(tt.theta)
		assert.InDelta(t, tt.expected, got, 1e-9)
		assert.True(t, got > -math.Pi && got <= math.Pi+1e-12)
	}
}

func TestAngularDistance(t *testing.T) {
	tests := []struct {
		a, b     float64
		expected float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, -math.Pi / 2},
		{math.Pi - 0.1, -math.Pi + 0.1, 0.2},
	}

	for _, tt := range tests {
		got := AngularDistance(tt.a, tt.b)
		assert.InDelta(t, tt.expected, got, 1e-9)
	}
}

func TestAngleInRange(t *testing.T) {
	tests := []struct {
		theta    float64
		r        AngleRange
		expected bool
	}{
		{0, AngleRange{0, math.Pi / 2}, true},
		{math.Pi / 2, AngleRange{0, math.Pi / 2}, true},
		{math.Pi/2 + 0.01, AngleRange{0, math.Pi / 2}, false},
		// wrap-around range
		{math.Pi - 0.01, AngleRange{3 * math.Pi / 4, math.Pi / 2}, true},
		{-math.Pi + 0.01, AngleRange{3 * math.Pi / 4, math.Pi / 2}, true},
		{0, AngleRange{3 * math.Pi / 4, math.Pi / 2}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AngleInRange(tt.theta, tt.r))
	}

	// invariant from the testable-properties section: equivalence under
	// normalization.
	theta := 5 * math.Pi
	r := AngleRange{0, math.Pi / 2}
	assert.Equal(t, AngleInRange(NormalizeAngle(theta), r), AngleInRange(theta, r))
}

func TestIntersectAngleRangesCommutative(t *testing.T) {
	a := AngleRange{0, math.Pi / 2}
	b := AngleRange{math.Pi / 4, math.Pi / 2}

	ab := IntersectAngleRanges(a, b)
	ba := IntersectAngleRanges(b, a)

	assert.ElementsMatch(t, ab, ba)
	assert.Len(t, ab, 1)
	assert.InDelta(t, math.Pi/4, ab[0].Start, 1e-9)
	assert.InDelta(t, math.Pi/4, ab[0].Span, 1e-9)
}

func TestIntersectAngleRangesEmpty(t *testing.T) {
	a := AngleRange{0, math.Pi / 4}
	b := AngleRange{math.Pi, math.Pi / 4}

	got := IntersectAngleRanges(a, b)
	assert.Empty(t, got)
}

func TestIntersectAngleRangesWraps(t *testing.T) {
	// b starts inside a and extends past a's end, wrapping around to
	// also overlap a's start.
	a := AngleRange{-math.Pi, 2 * math.Pi}
	b := AngleRange{3 * math.Pi / 4, math.Pi}

	got := IntersectAngleRanges(a, b)
	assert.NotEmpty(t, got)
}

func TestDistanceAndAngleFromUToV(t *testing.T) {
	u := Point{0, 0}
	v := Point{3, 4}

	assert.InDelta(t, 5.0, Distance(u, v), 1e-9)
	assert.InDelta(t, math.Atan2(4, 3), AngleFromUToV(u, v), 1e-9)
}

func TestPointOnLineAtDistancePreservesDirection(t *testing.T) {
	u := Point{0, 0}
	v := Point{10, 0}

	got := PointOnLineAtDistance(u, v, 5)
	assert.InDelta(t, 5, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)

	// direction preserved even when requested distance differs from |v-u|
	got2 := PointOnLineAtDistance(u, v, 20)
	assert.InDelta(t, 20, got2.X, 1e-9)
}

func TestRotateAboutPointMatrix(t *testing.T) {
	pivot := Point{1, 1}
	m := RotateAboutPointMatrix(pivot, math.Pi/2)

	got := Transform(Point{2, 1}, m)
	assert.InDelta(t, 1, got.X, 1e-9)
	assert.InDelta(t, 2, got.Y, 1e-9)
}

func TestMatrixMultiplyIdentity(t *testing.T) {
	m := TranslationMatrix(3, 4)
	id := Identity3()

	product := m.Multiply(id)
	got := Transform(Point{0, 0}, product)
	assert.InDelta(t, 3, got.X, 1e-9)
	assert.InDelta(t, 4, got.Y, 1e-9)
}
