// Package mesh turns compiled generators into triangle meshes and
// STL files using the github.com/deadsy/sdfx CAD library.
package mesh

import (
	"errors"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/glgl/math/ms3"

	"github.com/chazu/strata/pkg/sdfgen"
)

// ErrEmptyField means the generator has no shape to mesh.
var ErrEmptyField = errors.New("mesh: generator has an empty field")

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Scene    string    `json:"scene"`    // which scene this came from, if any
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// fieldSolid adapts a generator to sdf.SDF3. Point evaluation goes
// through a single sample buffer, so a fieldSolid must not be shared
// between goroutines.
type fieldSolid struct {
	gen *sdfgen.Generator
	buf *sdfgen.BlockBuffers
}

func newFieldSolid(gen *sdfgen.Generator) *fieldSolid {
	return &fieldSolid{gen: gen, buf: gen.NewBlockBuffers(1)}
}

func (f *fieldSolid) Evaluate(p v3.Vec) float64 {
	d := f.gen.SignedDistance(f.buf, ms3.Vec{
		X: float32(p.X),
		Y: float32(p.Y),
		Z: float32(p.Z),
	})
	return float64(d)
}

func (f *fieldSolid) BoundingBox() sdf.Box3 {
	// One unit of slack keeps the surface clear of the sampling hull.
	d := expand(f.gen.Domain(), 1)
	return sdf.Box3{
		Min: v3.Vec{X: float64(d.Min.X), Y: float64(d.Min.Y), Z: float64(d.Min.Z)},
		Max: v3.Vec{X: float64(d.Max.X), Y: float64(d.Max.Y), Z: float64(d.Max.Z)},
	}
}

func expand(b ms3.Box, amount float32) ms3.Box {
	return ms3.Box{Min: ms3.AddScalar(-amount, b.Min), Max: ms3.AddScalar(amount, b.Max)}
}

// FromGenerator meshes the generator's surface with marching cubes.
// cells controls resolution along the longest domain axis; zero picks
// a default.
func FromGenerator(gen *sdfgen.Generator, cells int) (*Mesh, error) {
	if gen.IsEmpty() {
		return nil, ErrEmptyField
	}
	if cells <= 0 {
		cells = defaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(newFieldSolid(gen), renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Flat shading: every corner takes the face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

// ExportSTL meshes the generator and writes the result to path.
func ExportSTL(gen *sdfgen.Generator, path string, cells int) error {
	if gen.IsEmpty() {
		return ErrEmptyField
	}
	if cells <= 0 {
		cells = defaultMeshCells
	}
	render.ToSTL(newFieldSolid(gen), path, render.NewMarchingCubesUniform(cells))
	return nil
}
