package sdfgen

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// Generator is a compiled, immutable generation graph. It is safe for
// concurrent use; per call scratch state lives in BlockBuffers.
type Generator struct {
	program       []compiledNode
	requiredStack int
	domain        ms3.Box
	farLimit      float32
}

// IsEmpty reports whether the generator was built from a graph with
// no nodes. An empty generator fills every sample with the far limit.
func (g *Generator) IsEmpty() bool { return len(g.program) == 0 }

// Domain bounds the region, in root space, where distances may be
// negative.
func (g *Generator) Domain() ms3.Box { return g.domain }

// MaxDistance is the far distance limit the generator was built with.
func (g *Generator) MaxDistance() float32 { return g.farLimit }

// BlockBuffers holds the value stack for evaluating one generator
// over cubic blocks of a fixed size. Buffers are not safe for
// concurrent use; give each goroutine its own.
type BlockBuffers struct {
	size  int
	stack [][]float32
}

// NewBlockBuffers allocates buffers for blocks of size^3 sample
// points. Panics when size is less than 1.
func (g *Generator) NewBlockBuffers(size int) *BlockBuffers {
	if size < 1 {
		panic("sdfgen: block size must be at least 1")
	}
	count := size * size * size
	// One slab beyond the deepest stack level serves as scratch for
	// the modifiers.
	stack := make([][]float32, g.requiredStack+1)
	for i := range stack {
		stack[i] = make([]float32, count)
	}
	return &BlockBuffers{size: size, stack: stack}
}

func (b *BlockBuffers) BlockSize() int { return b.size }

// SignedDistances exposes the result of the last block evaluation.
// Sample (i,j,k) lives at index (i*size+j)*size+k.
func (b *BlockBuffers) SignedDistances() []float32 { return b.stack[0] }

func (b *BlockBuffers) scratch() []float32 { return b.stack[len(b.stack)-1] }

// SignedDistancesForBlock evaluates the field at the size^3 unit
// spaced sample points whose lowest corner is blockAABB.Min, culling
// aggressively: subtrees whose padded domain misses the block are
// replaced by constant fills at their margin, and modifiers that
// provably cannot reach below their margin are skipped. Results agree
// with the exact field wherever its magnitude stays below the
// generator's max distance.
func (g *Generator) SignedDistancesForBlock(buf *BlockBuffers, blockAABB ms3.Box) {
	if g.IsEmpty() {
		fill(buf.stack[0], g.farLimit)
		return
	}
	top := 0
	for i := range g.program {
		cn := &g.program[i]
		switch node := cn.node.(type) {
		case primitive:
			dst := buf.stack[top]
			blockInNode := cn.toNodeSpace.mapBox(blockAABB)
			switch {
			case boxDisjoint(cn.domainWithMargin, blockInNode):
				fill(dst, cn.margin)
			case boxContains(node.interiorBounds(cn.margin), blockInNode):
				fill(dst, -cn.margin)
			default:
				evalBlock(dst, cn.toNodeSpace, blockAABB.Min, buf.size, func(_ float32, p ms3.Vec) float32 {
					return node.distance(p)
				})
			}
			top++
		case *Translation, *Rotation:
			// Transforms are already folded into the frames below.
		case *Scaling:
			if !boxDisjoint(cn.domainWithMargin, cn.toNodeSpace.mapBox(blockAABB)) {
				scaleValues(buf.stack[top-1], node.factor)
			}
		case *MultifractalNoise:
			if g.modifierRelevant(cn, node.maxPerturbation(), buf, top, blockAABB) {
				node.perturbBlock(buf.stack[top-1], buf.scratch(), cn.toNodeSpace, blockAABB.Min, buf.size)
			}
		case *MultiscaleSphere:
			if g.modifierRelevant(cn, node.maxPerturbation(), buf, top, blockAABB) {
				evalBlock(buf.stack[top-1], cn.toNodeSpace, blockAABB.Min, buf.size, node.modify)
			}
		case combinator:
			top--
			if boxDisjoint(cn.domainWithMargin, cn.toNodeSpace.mapBox(blockAABB)) {
				// Both operands are at or above their margins here,
				// so the first operand's values already stand in for
				// the combined field.
				continue
			}
			combineValues(buf.stack[top-1], buf.stack[top], node)
		}
	}
	if top != 1 {
		panic("sdfgen: unbalanced value stack during block evaluation")
	}
}

// SignedDistancesForBlockPreservingGradients evaluates the same block
// as SignedDistancesForBlock but without any culling, so finite
// differences of neighboring samples stay faithful to the
// field's gradient everywhere. blockOrigin is the lowest sample.
func (g *Generator) SignedDistancesForBlockPreservingGradients(buf *BlockBuffers, blockOrigin ms3.Vec) {
	if g.IsEmpty() {
		fill(buf.stack[0], g.farLimit)
		return
	}
	top := 0
	for i := range g.program {
		cn := &g.program[i]
		switch node := cn.node.(type) {
		case primitive:
			evalBlock(buf.stack[top], cn.toNodeSpace, blockOrigin, buf.size, func(_ float32, p ms3.Vec) float32 {
				return node.distance(p)
			})
			top++
		case *Translation, *Rotation:
		case *Scaling:
			scaleValues(buf.stack[top-1], node.factor)
		case *MultifractalNoise:
			node.perturbBlock(buf.stack[top-1], buf.scratch(), cn.toNodeSpace, blockOrigin, buf.size)
		case *MultiscaleSphere:
			evalBlock(buf.stack[top-1], cn.toNodeSpace, blockOrigin, buf.size, node.modify)
		case combinator:
			top--
			combineValues(buf.stack[top-1], buf.stack[top], node)
		}
	}
	if top != 1 {
		panic("sdfgen: unbalanced value stack during block evaluation")
	}
}

// SignedDistance evaluates the exact field at a single point. buf
// must have block size 1.
func (g *Generator) SignedDistance(buf *BlockBuffers, p ms3.Vec) float32 {
	if buf.size != 1 {
		panic("sdfgen: single point evaluation needs block size 1 buffers")
	}
	g.SignedDistancesForBlockPreservingGradients(buf, p)
	return buf.stack[0][0]
}

// modifierRelevant reports whether a modifier can change any value
// below the node's margin in this block. The block is skipped when it
// misses the padded domain, or when a sweep of representative samples
// puts the whole block too far above the margin for the perturbation
// to reach back down.
func (g *Generator) modifierRelevant(cn *compiledNode, maxPerturbation float32, buf *BlockBuffers, top int, blockAABB ms3.Box) bool {
	if boxDisjoint(cn.domainWithMargin, cn.toNodeSpace.mapBox(blockAABB)) {
		return false
	}
	if math32.IsInf(cn.margin, 1) {
		return true
	}
	lo := representativeMin(buf.stack[top-1], buf.size)
	// Lattice steps are unit in root space but cn.toNodeSpace.scale()
	// in node space, where the stack values live.
	cover := representativeCoverRadius(buf.size) * cn.toNodeSpace.scale()
	return lo-cover-maxPerturbation < cn.margin
}

// evalBlock updates dst in place over the block's sample lattice. The
// update callback receives the previous value and the position mapped
// into node space; frame columns advance the position incrementally
// so only one affine map per block is evaluated in full.
func evalBlock(dst []float32, toNode frame, blockOrigin ms3.Vec, size int, update func(d float32, p ms3.Vec) float32) {
	origin := toNode.apply(blockOrigin)
	idx := 0
	for i := 0; i < size; i++ {
		pi := ms3.Add(origin, ms3.Scale(float32(i), toNode.x))
		for j := 0; j < size; j++ {
			p := ms3.Add(pi, ms3.Scale(float32(j), toNode.y))
			for k := 0; k < size; k++ {
				dst[idx] = update(dst[idx], p)
				p = ms3.Add(p, toNode.z)
				idx++
			}
		}
	}
}

func fill(dst []float32, v float32) {
	for i := range dst {
		dst[i] = v
	}
}

func scaleValues(dst []float32, factor float32) {
	for i := range dst {
		dst[i] *= factor
	}
}

func combineValues(d1, d2 []float32, c combinator) {
	for i := range d1 {
		d1[i] = c.combine(d1[i], d2[i])
	}
}

// representativeCoords picks up to three sample coordinates per axis
// whose spacing bounds how far any sample strays from its nearest
// representative.
func representativeCoords(size int) []int {
	switch {
	case size <= 1:
		return []int{0}
	case size == 2:
		return []int{0, 1}
	default:
		return []int{0, size / 2, size - 1}
	}
}

// representativeCoverRadius bounds the distance from any sample to
// the nearest representative. With a unit Lipschitz field, a value
// observed at a representative constrains all samples it covers.
func representativeCoverRadius(size int) float32 {
	if size <= 2 {
		return 0
	}
	mid := size / 2
	gap := mid
	if size-1-mid > gap {
		gap = size - 1 - mid
	}
	// Representatives split each axis span in half, so the farthest
	// sample is at most gap/2 away per axis.
	half := 0.5 * float32(gap)
	return math32.Sqrt(3) * half
}

func representativeMin(dist []float32, size int) float32 {
	coords := representativeCoords(size)
	lo := float32(math32.MaxFloat32)
	for _, i := range coords {
		for _, j := range coords {
			for _, k := range coords {
				v := dist[(i*size+j)*size+k]
				if v < lo {
					lo = v
				}
			}
		}
	}
	return lo
}
