package sdfgen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// rotationMatrix is a 3x3 rotation stored as rows.
type rotationMatrix struct {
	rows [3]ms3.Vec
}

func identityRotation() rotationMatrix {
	return rotationMatrix{rows: [3]ms3.Vec{
		{X: 1}, {Y: 1}, {Z: 1},
	}}
}

// rotationAboutAxis builds the right handed rotation by angle radians
// about the given axis. Panics when the axis has zero length.
func rotationAboutAxis(axis ms3.Vec, angle float32) rotationMatrix {
	n := ms3.Norm(axis)
	if n == 0 || math32.IsNaN(n) {
		panic("sdfgen: rotation axis must have nonzero length")
	}
	u := ms3.Scale(1/n, axis)
	s, c := math32.Sincos(angle)
	k := 1 - c
	return rotationMatrix{rows: [3]ms3.Vec{
		{X: c + u.X*u.X*k, Y: u.X*u.Y*k - u.Z*s, Z: u.X*u.Z*k + u.Y*s},
		{X: u.Y*u.X*k + u.Z*s, Y: c + u.Y*u.Y*k, Z: u.Y*u.Z*k - u.X*s},
		{X: u.Z*u.X*k - u.Y*s, Y: u.Z*u.Y*k + u.X*s, Z: c + u.Z*u.Z*k},
	}}
}

// rotationFromEuler composes intrinsic rotations about the fixed z, y
// and x axes: yaw, then pitch, then roll applied first.
func rotationFromEuler(roll, pitch, yaw float32) rotationMatrix {
	rz := rotationAboutAxis(ms3.Vec{Z: 1}, yaw)
	ry := rotationAboutAxis(ms3.Vec{Y: 1}, pitch)
	rx := rotationAboutAxis(ms3.Vec{X: 1}, roll)
	return rz.mul(ry).mul(rx)
}

func (r rotationMatrix) apply(v ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: ms3.Dot(r.rows[0], v),
		Y: ms3.Dot(r.rows[1], v),
		Z: ms3.Dot(r.rows[2], v),
	}
}

func (r rotationMatrix) transposed() rotationMatrix {
	return rotationMatrix{rows: [3]ms3.Vec{
		{X: r.rows[0].X, Y: r.rows[1].X, Z: r.rows[2].X},
		{X: r.rows[0].Y, Y: r.rows[1].Y, Z: r.rows[2].Y},
		{X: r.rows[0].Z, Y: r.rows[1].Z, Z: r.rows[2].Z},
	}}
}

func (r rotationMatrix) mul(o rotationMatrix) rotationMatrix {
	t := o.transposed()
	var out rotationMatrix
	for i := 0; i < 3; i++ {
		out.rows[i] = ms3.Vec{
			X: ms3.Dot(r.rows[i], t.rows[0]),
			Y: ms3.Dot(r.rows[i], t.rows[1]),
			Z: ms3.Dot(r.rows[i], t.rows[2]),
		}
	}
	return out
}

// rotatedBoxBounds is the axis aligned bounds of b after rotation.
func rotatedBoxBounds(b ms3.Box, r rotationMatrix) ms3.Box {
	corners := boxCorners(b)
	lo := r.apply(corners[0])
	hi := lo
	for _, c := range corners[1:] {
		p := r.apply(c)
		lo = ms3.MinElem(lo, p)
		hi = ms3.MaxElem(hi, p)
	}
	return ms3.Box{Min: lo, Max: hi}
}

// frame is an affine map p -> x*p.X + y*p.Y + z*p.Z + origin. The
// basis columns share a common length, so the map is a similarity
// transform (rotation, uniform scale, translation).
type frame struct {
	x, y, z ms3.Vec
	origin  ms3.Vec
}

func identityFrame() frame {
	return frame{x: ms3.Vec{X: 1}, y: ms3.Vec{Y: 1}, z: ms3.Vec{Z: 1}}
}

func (f frame) apply(p ms3.Vec) ms3.Vec {
	v := ms3.Add(f.origin, ms3.Scale(p.X, f.x))
	v = ms3.Add(v, ms3.Scale(p.Y, f.y))
	return ms3.Add(v, ms3.Scale(p.Z, f.z))
}

// scale is the common length of the basis columns.
func (f frame) scale() float32 {
	return ms3.Norm(f.x)
}

// thenTranslate appends a translation after f.
func (f frame) thenTranslate(offset ms3.Vec) frame {
	f.origin = ms3.Add(f.origin, offset)
	return f
}

// thenRotate appends a rotation after f.
func (f frame) thenRotate(r rotationMatrix) frame {
	return frame{
		x:      r.apply(f.x),
		y:      r.apply(f.y),
		z:      r.apply(f.z),
		origin: r.apply(f.origin),
	}
}

// thenScale appends a uniform scaling about the origin after f.
func (f frame) thenScale(factor float32) frame {
	return frame{
		x:      ms3.Scale(factor, f.x),
		y:      ms3.Scale(factor, f.y),
		z:      ms3.Scale(factor, f.z),
		origin: ms3.Scale(factor, f.origin),
	}
}

// isAxisAligned reports whether the frame carries no rotation, i.e.
// the basis columns are positive multiples of the coordinate axes.
func (f frame) isAxisAligned() bool {
	s := f.scale()
	if s == 0 {
		return false
	}
	const eps = 1e-6
	return math32.Abs(f.x.X/s-1) <= eps &&
		math32.Abs(f.y.Y/s-1) <= eps &&
		math32.Abs(f.z.Z/s-1) <= eps
}

// mapBox is the axis aligned bounds of b mapped through f.
func (f frame) mapBox(b ms3.Box) ms3.Box {
	corners := boxCorners(b)
	lo := f.apply(corners[0])
	hi := lo
	for _, c := range corners[1:] {
		p := f.apply(c)
		lo = ms3.MinElem(lo, p)
		hi = ms3.MaxElem(hi, p)
	}
	return ms3.Box{Min: lo, Max: hi}
}
