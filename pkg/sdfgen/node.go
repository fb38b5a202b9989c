package sdfgen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// NodeID identifies a node within the Graph that issued it.
type NodeID uint32

// Node is a shape node in a generation graph. Implementations live in
// this package: primitives (Sphere, Capsule, Box), transforms
// (Translation, Rotation, Scaling), modifiers (MultifractalNoise,
// MultiscaleSphere) and combinators (Union, Subtraction,
// Intersection).
type Node interface {
	// children lists the node's operands in evaluation order.
	children() []NodeID
}

// primitive is the leaf contract: a bounded distance field evaluated
// in the node's local space.
type primitive interface {
	Node
	// bounds holds every point where distance is negative.
	bounds() ms3.Box
	// interiorBounds holds only points where distance <= -margin.
	// May be inverted (Min above Max) when margin is large, which no
	// box can contain.
	interiorBounds(margin float32) ms3.Box
	distance(p ms3.Vec) float32
}

// Translation moves its child by a fixed offset.
type Translation struct {
	child  NodeID
	offset ms3.Vec
}

func NewTranslation(child NodeID, offset ms3.Vec) *Translation {
	return &Translation{child: child, offset: offset}
}

func (t *Translation) children() []NodeID { return []NodeID{t.child} }

func (t *Translation) Offset() ms3.Vec { return t.offset }

// Rotation rotates its child about an axis through the origin.
type Rotation struct {
	child NodeID
	rot   rotationMatrix
}

// NewRotation rotates by angle radians about axis, right handed.
// Panics when the axis has zero length.
func NewRotation(child NodeID, axis ms3.Vec, angle float32) *Rotation {
	return &Rotation{child: child, rot: rotationAboutAxis(axis, angle)}
}

// NewRotationEuler rotates by roll about x, then pitch about y, then
// yaw about z.
func NewRotationEuler(child NodeID, roll, pitch, yaw float32) *Rotation {
	return &Rotation{child: child, rot: rotationFromEuler(roll, pitch, yaw)}
}

func (r *Rotation) children() []NodeID { return []NodeID{r.child} }

// Scaling scales its child uniformly about the origin.
type Scaling struct {
	child  NodeID
	factor float32
}

// NewScaling panics when factor is not strictly positive.
func NewScaling(child NodeID, factor float32) *Scaling {
	if !(factor > 0) || math32.IsInf(factor, 1) {
		panic("sdfgen: scaling factor must be positive and finite")
	}
	return &Scaling{child: child, factor: factor}
}

func (s *Scaling) children() []NodeID { return []NodeID{s.child} }

func (s *Scaling) Factor() float32 { return s.factor }

// combinator merges the fields of two children into one.
type combinator interface {
	Node
	smooth() Smoothness
	// combine applies the configured smoothness.
	combine(d1, d2 float32) float32
	// combineBounds merges the children's shape bounds.
	combineBounds(b1, b2 ms3.Box) ms3.Box
}

// Union keeps the shape of both children.
type Union struct {
	child1, child2 NodeID
	smoothness     Smoothness
}

func NewUnion(child1, child2 NodeID, smoothness Smoothness) *Union {
	return &Union{child1: child1, child2: child2, smoothness: smoothness}
}

func (u *Union) children() []NodeID { return []NodeID{u.child1, u.child2} }

func (u *Union) Smoothness() Smoothness { return u.smoothness }

func (u *Union) smooth() Smoothness { return u.smoothness }

func (u *Union) combine(d1, d2 float32) float32 { return u.smoothness.Union(d1, d2) }

func (u *Union) combineBounds(b1, b2 ms3.Box) ms3.Box { return boxUnion(b1, b2) }

// Subtraction removes the second child's shape from the first.
type Subtraction struct {
	child1, child2 NodeID
	smoothness     Smoothness
}

func NewSubtraction(child1, child2 NodeID, smoothness Smoothness) *Subtraction {
	return &Subtraction{child1: child1, child2: child2, smoothness: smoothness}
}

func (s *Subtraction) children() []NodeID { return []NodeID{s.child1, s.child2} }

func (s *Subtraction) Smoothness() Smoothness { return s.smoothness }

func (s *Subtraction) smooth() Smoothness { return s.smoothness }

func (s *Subtraction) combine(d1, d2 float32) float32 { return s.smoothness.Subtraction(d1, d2) }

// Carving cannot grow the first child's shape.
func (s *Subtraction) combineBounds(b1, _ ms3.Box) ms3.Box { return b1 }

// Intersection keeps only the overlap of the two children.
type Intersection struct {
	child1, child2 NodeID
	smoothness     Smoothness
}

func NewIntersection(child1, child2 NodeID, smoothness Smoothness) *Intersection {
	return &Intersection{child1: child1, child2: child2, smoothness: smoothness}
}

func (n *Intersection) children() []NodeID { return []NodeID{n.child1, n.child2} }

func (n *Intersection) Smoothness() Smoothness { return n.smoothness }

func (n *Intersection) smooth() Smoothness { return n.smoothness }

func (n *Intersection) combine(d1, d2 float32) float32 { return n.smoothness.Intersection(d1, d2) }

func (n *Intersection) combineBounds(b1, b2 ms3.Box) ms3.Box {
	overlap, ok := boxOverlap(b1, b2)
	if !ok {
		// Disjoint operands leave an empty shape. The point box at
		// the origin is the smallest conservative stand-in.
		return ms3.Box{}
	}
	return overlap
}
