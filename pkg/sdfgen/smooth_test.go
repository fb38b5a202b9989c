package sdfgen

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestZeroSmoothnessIsHard(t *testing.T) {
	s := NewSmoothness(0)
	assert.True(t, s.IsZero())
	assert.Equal(t, float32(-2), s.Union(-2, 3))
	assert.Equal(t, float32(3), s.Intersection(-2, 3))
	// Subtraction carves d2 out of d1: max(d1, -d2).
	assert.Equal(t, float32(3), s.Subtraction(-2, -3))
}

func TestNewSmoothnessPanicsOnNegativeFactor(t *testing.T) {
	assert.Panics(t, func() { NewSmoothness(-0.5) })
}

func TestSmoothUnionMatchesHardFarFromCrossover(t *testing.T) {
	s := NewSmoothness(0.5)
	// |d1-d2| >= factor leaves no blend band.
	assert.Equal(t, float32(1), s.Union(1, 2))
	assert.Equal(t, float32(-3), s.Union(-3, 4))
}

func TestSmoothUnionPeakDisplacementAtCrossover(t *testing.T) {
	factor := float32(0.8)
	s := NewSmoothness(factor)
	d := float32(1.5)
	// Equal operands displace by exactly factor/4.
	assert.InDelta(t, d-factor/4, s.Union(d, d), 1e-6)

	// Displacement never exceeds factor/4.
	for _, d2 := range []float32{d - 1, d - 0.3, d, d + 0.3, d + 1} {
		got := s.Union(d, d2)
		hard := math32.Min(d, d2)
		assert.LessOrEqual(t, got, hard)
		assert.GreaterOrEqual(t, got, hard-factor/4-1e-6)
	}
}

func TestSmoothOperationsAreDualToUnion(t *testing.T) {
	s := NewSmoothness(0.6)
	cases := [][2]float32{{0.1, 0.3}, {-0.4, 0.2}, {1.5, -2}, {-0.05, -0.07}}
	for _, c := range cases {
		d1, d2 := c[0], c[1]
		assert.InDelta(t, -s.Union(-d1, d2), s.Subtraction(d1, d2), 1e-6)
		assert.InDelta(t, -s.Union(-d1, -d2), s.Intersection(d1, d2), 1e-6)
	}
}

func TestSmoothUnionConvergesToHardAsFactorShrinks(t *testing.T) {
	d1, d2 := float32(0.2), float32(0.25)
	hard := math32.Min(d1, d2)
	prevErr := float32(math32.MaxFloat32)
	for _, factor := range []float32{1, 0.1, 0.01, 0.001} {
		got := NewSmoothness(factor).Union(d1, d2)
		err := math32.Abs(got - hard)
		assert.LessOrEqual(t, err, prevErr)
		prevErr = err
	}
	assert.InDelta(t, hard, NewSmoothness(1e-4).Union(d1, d2), 1e-4)
}

func TestSoftCombinePaddingGrowsWithLeafCount(t *testing.T) {
	s := NewSmoothness(1)
	assert.Equal(t, float32(0), softCombinePadding(NewSmoothness(0), 8))
	assert.Equal(t, float32(0), softCombinePadding(s, 1))
	assert.InDelta(t, 0.25, softCombinePadding(s, 2), 1e-6)
	assert.InDelta(t, 0.75, softCombinePadding(s, 8), 1e-6)
}
