package sdfgen

import (
	"testing"

	"github.com/soypat/glgl/math/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFollowsLastAddedNode(t *testing.T) {
	g := NewGraph()
	a := g.AddNode(NewSphere(1))
	assert.Equal(t, a, g.RootNodeID())

	b := g.AddNode(NewSphere(2))
	assert.Equal(t, b, g.RootNodeID())

	g.SetRootNode(a)
	assert.Equal(t, a, g.RootNodeID())
	assert.Equal(t, 2, g.NodeCount())
}

func TestSetRootNodePanicsOnUnknownID(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewSphere(1))
	assert.Panics(t, func() { g.SetRootNode(7) })
}

func TestAddNilNodePanics(t *testing.T) {
	assert.Panics(t, func() { NewGraph().AddNode(nil) })
}

func TestEmptyGraphBuildsEmptyGenerator(t *testing.T) {
	gen, err := NewGraph().BuildWithMaxDistance(10)
	require.NoError(t, err)
	assert.True(t, gen.IsEmpty())

	buf := gen.NewBlockBuffers(2)
	gen.SignedDistancesForBlock(buf, BlockAABB(ms3.Vec{}, 2))
	for _, d := range buf.SignedDistances() {
		assert.Equal(t, float32(10), d)
	}

	gen.SignedDistancesForBlockPreservingGradients(buf, ms3.Vec{})
	for _, d := range buf.SignedDistances() {
		assert.Equal(t, float32(10), d)
	}
}

func TestBuildReportsMissingChild(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewTranslation(99, ms3.Vec{X: 1}))
	_, err := g.Build()
	require.ErrorIs(t, err, ErrMissingNode)
}

func TestBuildReportsSelfCycle(t *testing.T) {
	g := NewGraph()
	// The node's child id is its own id.
	g.AddNode(NewTranslation(0, ms3.Vec{X: 1}))
	_, err := g.Build()
	require.ErrorIs(t, err, ErrCycle)
}

func TestBuildReportsMutualCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewTranslation(1, ms3.Vec{X: 1}))
	g.AddNode(NewTranslation(0, ms3.Vec{Y: 1}))
	_, err := g.Build()
	require.ErrorIs(t, err, ErrCycle)
}

func TestBuildWithMaxDistancePanicsOnNonpositiveLimit(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewSphere(1))
	assert.Panics(t, func() { g.BuildWithMaxDistance(0) })
	assert.Panics(t, func() { g.BuildWithMaxDistance(-1) })
}

func TestSharedSubgraphBuilds(t *testing.T) {
	g := NewGraph()
	core := g.AddNode(NewSphere(1))
	left := g.AddNode(NewTranslation(core, ms3.Vec{X: -2}))
	right := g.AddNode(NewTranslation(core, ms3.Vec{X: 2}))
	g.AddNode(NewUnion(left, right, Smoothness{}))

	gen, err := g.Build()
	require.NoError(t, err)
	require.False(t, gen.IsEmpty())

	// Both references see the same sphere.
	buf := gen.NewBlockBuffers(1)
	assert.InDelta(t, -1, gen.SignedDistance(buf, ms3.Vec{X: -2}), 1e-5)
	assert.InDelta(t, -1, gen.SignedDistance(buf, ms3.Vec{X: 2}), 1e-5)
	assert.InDelta(t, 1, gen.SignedDistance(buf, ms3.Vec{}), 1e-5)
}
