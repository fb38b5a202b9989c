package sdfgen

import (
	"github.com/chewxy/math32"
)

// Graph is a mutable collection of shape nodes under construction.
// Nodes may be shared: any number of parents may reference the same
// child id. Graphs are authoring state only; evaluation goes through
// the Generator produced by Build.
type Graph struct {
	nodes []Node
	root  NodeID
}

func NewGraph() *Graph {
	return &Graph{}
}

// AddNode stores the node and returns its id. The most recently added
// node is the root until SetRootNode says otherwise.
func (g *Graph) AddNode(n Node) NodeID {
	if n == nil {
		panic("sdfgen: cannot add a nil node")
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.root = id
	return id
}

// SetRootNode panics when id was not issued by this graph.
func (g *Graph) SetRootNode(id NodeID) {
	if int(id) >= len(g.nodes) {
		panic("sdfgen: root node id out of range")
	}
	g.root = id
}

func (g *Graph) RootNodeID() NodeID { return g.root }

func (g *Graph) NodeCount() int { return len(g.nodes) }

// Build compiles the graph. The resulting generator never culls,
// since no finite bound on far distances is assumed; use
// BuildWithMaxDistance when block evaluation should skip empty space.
func (g *Graph) Build() (*Generator, error) {
	return g.BuildWithMaxDistance(math32.Inf(1))
}

// BuildWithMaxDistance compiles the graph for consumers that clamp
// distances to +/- maxDistance, such as quantized voxel storage.
// Outside a node's padded domain the true distance is at least the
// node's margin, and margins derive from maxDistance at the root, so
// block evaluation may substitute fills and skip work without
// changing any clamped result. Panics when maxDistance is not
// positive.
func (g *Graph) BuildWithMaxDistance(maxDistance float32) (*Generator, error) {
	if !(maxDistance > 0) {
		panic("sdfgen: max distance must be positive")
	}
	if len(g.nodes) == 0 {
		return &Generator{farLimit: maxDistance}, nil
	}
	return compile(g.nodes, g.root, maxDistance)
}
