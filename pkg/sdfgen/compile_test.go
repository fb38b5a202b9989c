package sdfgen

import (
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiledProgramIsChildrenFirst(t *testing.T) {
	g := NewGraph()
	s := g.AddNode(NewSphere(1))
	tr := g.AddNode(NewTranslation(s, ms3.Vec{X: 2}))
	b := g.AddNode(NewBox(ms3.Vec{X: 2, Y: 2, Z: 2}))
	g.AddNode(NewUnion(tr, b, Smoothness{}))
	gen := mustBuild(t, g)

	require.Len(t, gen.program, 4)
	assert.IsType(t, &Sphere{}, gen.program[0].node)
	assert.IsType(t, &Translation{}, gen.program[1].node)
	assert.IsType(t, &Box{}, gen.program[2].node)
	assert.IsType(t, &Union{}, gen.program[3].node)
	assert.Equal(t, 2, gen.requiredStack)
}

func TestSharedLeafIsDuplicatedIntoEachReference(t *testing.T) {
	g := NewGraph()
	core := g.AddNode(NewSphere(1))
	left := g.AddNode(NewTranslation(core, ms3.Vec{X: -2}))
	right := g.AddNode(NewTranslation(core, ms3.Vec{X: 2}))
	g.AddNode(NewUnion(left, right, NewSmoothness(0.5)))
	shared := mustBuild(t, g)

	// 4 authored nodes unroll into 5 program entries: the shared
	// sphere appears under both translations.
	require.Len(t, shared.program, 5)
	assert.IsType(t, &Sphere{}, shared.program[0].node)
	assert.IsType(t, &Translation{}, shared.program[1].node)
	assert.IsType(t, &Sphere{}, shared.program[2].node)
	assert.IsType(t, &Translation{}, shared.program[3].node)
	assert.IsType(t, &Union{}, shared.program[4].node)

	// The diamond evaluates identically to the explicit tree.
	e := NewGraph()
	a := e.AddNode(NewSphere(1))
	la := e.AddNode(NewTranslation(a, ms3.Vec{X: -2}))
	b := e.AddNode(NewSphere(1))
	rb := e.AddNode(NewTranslation(b, ms3.Vec{X: 2}))
	e.AddNode(NewUnion(la, rb, NewSmoothness(0.5)))
	explicit := mustBuild(t, e)

	sharedBuf := shared.NewBlockBuffers(1)
	explicitBuf := explicit.NewBlockBuffers(1)
	for _, p := range []ms3.Vec{{}, {X: -2}, {X: 2}, {X: 0.5, Y: 1, Z: -1}} {
		assert.Equal(t,
			explicit.SignedDistance(explicitBuf, p),
			shared.SignedDistance(sharedBuf, p),
		)
	}
}

func TestCombinatorChildMarginsExceedParent(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(NewSphere(1))
	b := g.AddNode(NewSphere(2))
	g.AddNode(NewUnion(a, b, NewSmoothness(1)))
	gen, err := g.BuildWithMaxDistance(4)
	require.NoError(t, err)

	require.Len(t, gen.program, 3)
	root := gen.program[2]
	assert.Equal(t, float32(4), root.margin)
	// 2 leaves at smoothness 1 pad by 0.25, inflated 2.5x per child.
	want := float32(4) + 2.5*0.25
	assert.InDelta(t, want, gen.program[0].margin, 1e-5)
	assert.InDelta(t, want, gen.program[1].margin, 1e-5)
}

func TestScalingDividesChildFrameAndScalesMargin(t *testing.T) {
	g := NewGraph()
	s := g.AddNode(NewSphere(1))
	g.AddNode(NewScaling(s, 2))
	gen, err := g.BuildWithMaxDistance(3)
	require.NoError(t, err)

	require.Len(t, gen.program, 2)
	sphere := gen.program[0]
	assert.InDelta(t, 0.5, sphere.toNodeSpace.scale(), 1e-6)
	assert.InDelta(t, 6, sphere.margin, 1e-6)
}
