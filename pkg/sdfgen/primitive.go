package sdfgen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
)

// invSqrt3 relates a sphere radius to the half extent of its largest
// inscribed axis aligned cube.
const invSqrt3 = 0.57735026918962576

// Sphere is a sphere of the given radius centered on the origin.
type Sphere struct {
	radius float32
}

// NewSphere panics when radius is negative or NaN.
func NewSphere(radius float32) *Sphere {
	if !(radius >= 0) {
		panic("sdfgen: sphere radius must be nonnegative")
	}
	return &Sphere{radius: radius}
}

func (s *Sphere) children() []NodeID { return nil }

func (s *Sphere) Radius() float32 { return s.radius }

func (s *Sphere) bounds() ms3.Box {
	h := ms3.Vec{X: s.radius, Y: s.radius, Z: s.radius}
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

func (s *Sphere) interiorBounds(margin float32) ms3.Box {
	e := s.radius*invSqrt3 - margin
	h := ms3.Vec{X: e, Y: e, Z: e}
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

func (s *Sphere) distance(p ms3.Vec) float32 {
	return ms3.Norm(p) - s.radius
}

// Capsule is a sphere swept along a segment of the local y axis
// centered on the origin.
type Capsule struct {
	halfSegment float32
	radius      float32
}

// NewCapsule panics when segmentLength or radius is negative or NaN.
func NewCapsule(segmentLength, radius float32) *Capsule {
	if !(segmentLength >= 0) {
		panic("sdfgen: capsule segment length must be nonnegative")
	}
	if !(radius >= 0) {
		panic("sdfgen: capsule radius must be nonnegative")
	}
	return &Capsule{halfSegment: 0.5 * segmentLength, radius: radius}
}

func (c *Capsule) children() []NodeID { return nil }

func (c *Capsule) SegmentLength() float32 { return 2 * c.halfSegment }

func (c *Capsule) Radius() float32 { return c.radius }

func (c *Capsule) bounds() ms3.Box {
	h := ms3.Vec{X: c.radius, Y: c.radius + c.halfSegment, Z: c.radius}
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

func (c *Capsule) interiorBounds(margin float32) ms3.Box {
	e := c.radius*invSqrt3 - margin
	h := ms3.Vec{X: e, Y: e + c.halfSegment, Z: e}
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

func (c *Capsule) distance(p ms3.Vec) float32 {
	p.Y -= ms1.Clamp(p.Y, -c.halfSegment, c.halfSegment)
	return ms3.Norm(p) - c.radius
}

// Box is an axis aligned box centered on the origin.
type Box struct {
	halfExtents ms3.Vec
}

// NewBox takes the full extents along each axis. Panics when any
// component is negative or NaN.
func NewBox(extents ms3.Vec) *Box {
	if !(extents.X >= 0 && extents.Y >= 0 && extents.Z >= 0) {
		panic("sdfgen: box extents must be nonnegative")
	}
	return &Box{halfExtents: ms3.Scale(0.5, extents)}
}

func (b *Box) children() []NodeID { return nil }

func (b *Box) Extents() ms3.Vec { return ms3.Scale(2, b.halfExtents) }

func (b *Box) bounds() ms3.Box {
	return ms3.Box{Min: ms3.Scale(-1, b.halfExtents), Max: b.halfExtents}
}

func (b *Box) interiorBounds(margin float32) ms3.Box {
	h := ms3.AddScalar(-margin, b.halfExtents)
	return ms3.Box{Min: ms3.Scale(-1, h), Max: h}
}

func (b *Box) distance(p ms3.Vec) float32 {
	q := ms3.Sub(ms3.AbsElem(p), b.halfExtents)
	outside := ms3.Norm(ms3.MaxElem(q, ms3.Vec{}))
	inside := math32.Min(math32.Max(q.X, math32.Max(q.Y, q.Z)), 0)
	return outside + inside
}
