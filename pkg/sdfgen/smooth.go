package sdfgen

import (
	"github.com/chewxy/math32"
)

// Smoothness controls how gradually two distance fields blend when
// combined. The zero value gives hard (min/max) combination.
type Smoothness struct {
	factor float32
	// quarterOverFactor caches 0.25/factor, zero when factor is zero.
	quarterOverFactor float32
}

// NewSmoothness panics when factor is negative or NaN.
func NewSmoothness(factor float32) Smoothness {
	if factor < 0 || math32.IsNaN(factor) {
		panic("sdfgen: smoothness factor must be nonnegative")
	}
	s := Smoothness{factor: factor}
	if factor > 0 {
		s.quarterOverFactor = 0.25 / factor
	}
	return s
}

func (s Smoothness) Factor() float32 { return s.factor }

func (s Smoothness) IsZero() bool { return s.factor == 0 }

// Union blends the two distances within a band of width factor around
// their crossover and matches min(d1, d2) exactly outside it.
func (s Smoothness) Union(d1, d2 float32) float32 {
	if s.factor == 0 {
		return math32.Min(d1, d2)
	}
	h := math32.Max(s.factor-math32.Abs(d1-d2), 0)
	return math32.Min(d1, d2) - h*h*s.quarterOverFactor
}

// Subtraction removes the shape of d2 from the shape of d1.
func (s Smoothness) Subtraction(d1, d2 float32) float32 {
	return -s.Union(-d1, d2)
}

// Intersection keeps the overlap of the two shapes.
func (s Smoothness) Intersection(d1, d2 float32) float32 {
	return -s.Union(-d1, -d2)
}

// smoothUnion is the free function form used where the smoothing
// width varies per call.
func smoothUnion(d1, d2, factor float32) float32 {
	if factor == 0 {
		return math32.Min(d1, d2)
	}
	h := math32.Max(factor-math32.Abs(d1-d2), 0)
	return math32.Min(d1, d2) - h*h*0.25/factor
}

func smoothIntersection(d1, d2, factor float32) float32 {
	return -smoothUnion(-d1, -d2, factor)
}

// maxSmoothDisplacement bounds how far a smooth combine can pull the
// result below the hard combine: h^2/(4s) peaks at s/4 when d1 == d2.
func maxSmoothDisplacement(factor float32) float32 {
	return 0.25 * factor
}

// softCombinePadding is the domain padding a combinator with the
// given smoothness needs when its subtree holds leafCount leaves.
// Blend displacements can accumulate along a chain of combines, and
// the depth of a combinator tree over n leaves grows like log2(n).
func softCombinePadding(s Smoothness, leafCount uint32) float32 {
	if s.factor == 0 || leafCount == 0 {
		return 0
	}
	return maxSmoothDisplacement(s.factor) * math32.Log2(float32(leafCount))
}
