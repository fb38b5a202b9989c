package sdfgen

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// hashToRadius maps a 32 bit hash onto a corner sphere radius in
// [0, 0.5], half the grid spacing at most so neighbors never merge.
const hashToRadius = 0.5 / float32(math.MaxUint32)

// gridBreakRotation decorrelates successive octaves: each octave's
// sample space is rotated by the golden angle about the main
// diagonal, so no lattice plane survives across octaves.
var gridBreakRotation = rotationAboutAxis(
	ms3.Vec{X: 1, Y: 1, Z: 1},
	float32(2*math.Pi/math.Phi),
)

// MultiscaleSphere dresses its child's surface with octaves of
// randomly sized spheres on progressively finer grids. Each octave's
// sphere field is smoothly intersected with the running distance, so
// spheres only grow near the existing surface, then smoothly unioned
// onto the shape.
type MultiscaleSphere struct {
	child       NodeID
	octaves     uint32
	frequency   float32
	persistence float32
	seed        uint32

	// Inflation and intersection smoothness are configured relative
	// to the coarsest grid and stored premultiplied by maxScale.
	scaledInflation              float32
	scaledIntersectionSmoothness float32
	unionSmoothness              float32
}

// NewMultiscaleSphere configures the modifier. maxScale is the grid
// spacing of the coarsest octave in local units; each further octave
// shrinks it by persistence. Panics when maxScale or persistence is
// not strictly positive, or when inflation or a smoothness is
// negative or NaN.
func NewMultiscaleSphere(child NodeID, octaves uint32, maxScale, persistence, inflation, intersectionSmoothness, unionSmoothness float32, seed uint32) *MultiscaleSphere {
	if !(maxScale > 0) {
		panic("sdfgen: multiscale sphere max scale must be positive")
	}
	if !(persistence > 0) {
		panic("sdfgen: multiscale sphere persistence must be positive")
	}
	if !(inflation >= 0) {
		panic("sdfgen: multiscale sphere inflation must be nonnegative")
	}
	if !(intersectionSmoothness >= 0) || !(unionSmoothness >= 0) {
		panic("sdfgen: multiscale sphere smoothness must be nonnegative")
	}
	return &MultiscaleSphere{
		child:                        child,
		octaves:                      octaves,
		frequency:                    0.5 / maxScale,
		persistence:                  persistence,
		seed:                         seed,
		scaledInflation:              maxScale * inflation,
		scaledIntersectionSmoothness: maxScale * intersectionSmoothness,
		unionSmoothness:              unionSmoothness,
	}
}

func (m *MultiscaleSphere) children() []NodeID { return []NodeID{m.child} }

func (m *MultiscaleSphere) Octaves() uint32      { return m.octaves }
func (m *MultiscaleSphere) MaxScale() float32    { return 0.5 / m.frequency }
func (m *MultiscaleSphere) Persistence() float32 { return m.persistence }
func (m *MultiscaleSphere) Seed() uint32         { return m.seed }

func (m *MultiscaleSphere) Inflation() float32 { return m.scaledInflation / m.MaxScale() }

func (m *MultiscaleSphere) IntersectionSmoothness() float32 {
	return m.scaledIntersectionSmoothness / m.MaxScale()
}

func (m *MultiscaleSphere) UnionSmoothness() float32 { return m.unionSmoothness }

// maxPerturbation bounds how far the modifier can move a distance:
// the inflation offset plus the deepest a smooth union can cut below
// the hard minimum.
func (m *MultiscaleSphere) maxPerturbation() float32 {
	return m.scaledInflation + maxSmoothDisplacement(m.unionSmoothness)
}

// modify folds the sphere octaves into a single distance at p.
func (m *MultiscaleSphere) modify(d float32, p ms3.Vec) float32 {
	pos := ms3.Scale(m.frequency, p)
	scale := float32(1)
	for o := uint32(0); o < m.octaves; o++ {
		grid := scale * m.sphereGridDistance(pos)
		clipped := smoothIntersection(grid, d-m.scaledInflation*scale, m.scaledIntersectionSmoothness*scale)
		d = smoothUnion(clipped, d, m.unionSmoothness*scale)
		pos = gridBreakRotation.apply(ms3.Scale(1/m.persistence, pos))
		scale *= m.persistence
	}
	return d
}

// sphereGridDistance is the distance to the nearest of the eight
// corner spheres of the unit grid cell containing pos.
func (m *MultiscaleSphere) sphereGridDistance(pos ms3.Vec) float32 {
	fx := math32.Floor(pos.X)
	fy := math32.Floor(pos.Y)
	fz := math32.Floor(pos.Z)
	cell := [3]int32{int32(fx), int32(fy), int32(fz)}
	off := ms3.Vec{X: pos.X - fx, Y: pos.Y - fy, Z: pos.Z - fz}
	best := float32(math32.MaxFloat32)
	for cx := int32(0); cx <= 1; cx++ {
		for cy := int32(0); cy <= 1; cy++ {
			for cz := int32(0); cz <= 1; cz++ {
				r := m.cornerSphereRadius(cell, cx, cy, cz)
				dc := ms3.Sub(off, ms3.Vec{X: float32(cx), Y: float32(cy), Z: float32(cz)})
				best = math32.Min(best, ms3.Norm(dc)-r)
			}
		}
	}
	return best
}

// cornerSphereRadius derives a deterministic radius for a lattice
// corner from the seed and the corner's integer coordinates.
func (m *MultiscaleSphere) cornerSphereRadius(cell [3]int32, cx, cy, cz int32) float32 {
	var key [16]byte
	binary.LittleEndian.PutUint32(key[0:4], m.seed)
	binary.LittleEndian.PutUint32(key[4:8], uint32(cell[0]+cx))
	binary.LittleEndian.PutUint32(key[8:12], uint32(cell[1]+cy))
	binary.LittleEndian.PutUint32(key[12:16], uint32(cell[2]+cz))
	return hashToRadius * float32(uint32(xxhash.Sum64(key[:])))
}
