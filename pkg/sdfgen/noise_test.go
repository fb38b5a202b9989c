package sdfgen

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoisePerturbationIsBoundedByAmplitude(t *testing.T) {
	const amplitude = 0.6

	g := NewGraph()
	s := g.AddNode(NewSphere(3))
	g.AddNode(NewMultifractalNoise(s, 4, 0.15, 2, 0.5, amplitude, 42))
	noisy := mustBuild(t, g)

	plain := NewGraph()
	plain.AddNode(NewSphere(3))
	base := mustBuild(t, plain)

	buf := noisy.NewBlockBuffers(1)
	baseBuf := base.NewBlockBuffers(1)
	for _, p := range []ms3.Vec{{}, {X: 3}, {X: 1, Y: -2, Z: 0.5}, {X: -4, Y: 4, Z: 2}} {
		diff := noisy.SignedDistance(buf, p) - base.SignedDistance(baseBuf, p)
		assert.LessOrEqual(t, math32.Abs(diff), float32(amplitude)+1e-5)
	}
}

func TestNoiseIsDeterministicPerSeed(t *testing.T) {
	build := func(seed uint32) *Generator {
		g := NewGraph()
		s := g.AddNode(NewSphere(3))
		g.AddNode(NewMultifractalNoise(s, 3, 0.2, 2, 0.5, 0.5, seed))
		gen, err := g.Build()
		require.NoError(t, err)
		return gen
	}

	a, b, other := build(7), build(7), build(8)
	const size = 3
	origin := ms3.Vec{X: -1.5, Y: -1.5, Z: -1.5}
	bufA := a.NewBlockBuffers(size)
	bufB := b.NewBlockBuffers(size)
	bufO := other.NewBlockBuffers(size)
	a.SignedDistancesForBlockPreservingGradients(bufA, origin)
	b.SignedDistancesForBlockPreservingGradients(bufB, origin)
	other.SignedDistancesForBlockPreservingGradients(bufO, origin)

	assert.Equal(t, bufA.SignedDistances(), bufB.SignedDistances())
	assert.NotEqual(t, bufA.SignedDistances(), bufO.SignedDistances())
}

func TestNoiseUnderRotationMatchesPointEvaluation(t *testing.T) {
	// A rotated frame forces the per point sampling path; it must
	// agree with single point evaluation, which always uses it.
	g := NewGraph()
	s := g.AddNode(NewSphere(3))
	n := g.AddNode(NewMultifractalNoise(s, 3, 0.25, 2, 0.5, 0.5, 11))
	g.AddNode(NewRotation(n, ms3.Vec{X: 1, Y: 1}, 0.6))
	gen := mustBuild(t, g)

	const size = 3
	origin := ms3.Vec{X: -1, Y: -1, Z: -1}
	buf := gen.NewBlockBuffers(size)
	gen.SignedDistancesForBlockPreservingGradients(buf, origin)

	point := gen.NewBlockBuffers(1)
	dist := buf.SignedDistances()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			for k := 0; k < size; k++ {
				p := ms3.Add(origin, ms3.Vec{X: float32(i), Y: float32(j), Z: float32(k)})
				want := gen.SignedDistance(point, p)
				assert.InDelta(t, want, dist[(i*size+j)*size+k], 1e-4)
			}
		}
	}
}

func TestZeroAmplitudeNoiseIsIdentity(t *testing.T) {
	g := NewGraph()
	s := g.AddNode(NewSphere(2))
	g.AddNode(NewMultifractalNoise(s, 3, 0.2, 2, 0.5, 0, 1))
	gen := mustBuild(t, g)

	assert.InDelta(t, -2, evalAt(t, gen, ms3.Vec{}), 1e-6)
	assert.InDelta(t, 1, evalAt(t, gen, ms3.Vec{X: 3}), 1e-6)
}

func TestFBMMaxAmplitude(t *testing.T) {
	assert.Equal(t, float32(0), fbmMaxAmplitude(0, 0.5))
	assert.InDelta(t, 1, fbmMaxAmplitude(1, 0.5), 1e-6)
	assert.InDelta(t, 1.75, fbmMaxAmplitude(3, 0.5), 1e-6)
	// Unit persistence sums octaves directly.
	assert.InDelta(t, 4, fbmMaxAmplitude(4, 1), 1e-6)
}

func TestNoiseConstructorValidation(t *testing.T) {
	assert.Panics(t, func() { NewMultifractalNoise(0, 3, -0.1, 2, 0.5, 1, 0) })
	assert.Panics(t, func() { NewMultifractalNoise(0, 3, 0.1, 2, 0.5, -1, 0) })
}
