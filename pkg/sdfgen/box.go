package sdfgen

import (
	"github.com/soypat/glgl/math/ms3"
)

// BlockAABB returns the axis aligned box spanned by a cubic block of
// size^3 unit spaced sample points with its lowest corner at origin.
func BlockAABB(origin ms3.Vec, size int) ms3.Box {
	return ms3.Box{Min: origin, Max: ms3.AddScalar(float32(size), origin)}
}

func translateBox(b ms3.Box, offset ms3.Vec) ms3.Box {
	return ms3.Box{Min: ms3.Add(b.Min, offset), Max: ms3.Add(b.Max, offset)}
}

// scaleBoxAboutOrigin scales both corners about the coordinate
// origin. factor must be positive so Min stays below Max.
func scaleBoxAboutOrigin(b ms3.Box, factor float32) ms3.Box {
	return ms3.Box{Min: ms3.Scale(factor, b.Min), Max: ms3.Scale(factor, b.Max)}
}

func expandBox(b ms3.Box, amount float32) ms3.Box {
	return ms3.Box{Min: ms3.AddScalar(-amount, b.Min), Max: ms3.AddScalar(amount, b.Max)}
}

func boxUnion(a, b ms3.Box) ms3.Box {
	return ms3.Box{Min: ms3.MinElem(a.Min, b.Min), Max: ms3.MaxElem(a.Max, b.Max)}
}

// boxOverlap intersects a and b. The second return is false when they
// do not meet, in which case the box is the point box at the origin.
func boxOverlap(a, b ms3.Box) (ms3.Box, bool) {
	lo := ms3.MaxElem(a.Min, b.Min)
	hi := ms3.MinElem(a.Max, b.Max)
	if lo.X > hi.X || lo.Y > hi.Y || lo.Z > hi.Z {
		return ms3.Box{}, false
	}
	return ms3.Box{Min: lo, Max: hi}, true
}

func boxContains(outer, inner ms3.Box) bool {
	return outer.Min.X <= inner.Min.X && outer.Min.Y <= inner.Min.Y && outer.Min.Z <= inner.Min.Z &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y && inner.Max.Z <= outer.Max.Z
}

func boxDisjoint(a, b ms3.Box) bool {
	return b.Max.X < a.Min.X || b.Min.X > a.Max.X ||
		b.Max.Y < a.Min.Y || b.Min.Y > a.Max.Y ||
		b.Max.Z < a.Min.Z || b.Min.Z > a.Max.Z
}

func boxCorners(b ms3.Box) [8]ms3.Vec {
	return [8]ms3.Vec{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}
