package sdfgen

import (
	"github.com/chewxy/math32"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/soypat/glgl/math/ms3"
)

// MultifractalNoise perturbs its child's distances with fractal
// Brownian motion over simplex noise. The perturbation is rescaled so
// its extremes reach exactly +/- amplitude regardless of the octave
// count and persistence.
type MultifractalNoise struct {
	child       NodeID
	octaves     uint32
	frequency   float32
	lacunarity  float32
	persistence float32
	amplitude   float32
	seed        uint32

	// noiseScale maps the raw octave sum onto [-amplitude, amplitude].
	noiseScale float32
	source     opensimplex.Noise
}

// NewMultifractalNoise panics when frequency, lacunarity, persistence
// or amplitude is negative or NaN.
func NewMultifractalNoise(child NodeID, octaves uint32, frequency, lacunarity, persistence, amplitude float32, seed uint32) *MultifractalNoise {
	if !(frequency >= 0) || !(lacunarity >= 0) || !(persistence >= 0) {
		panic("sdfgen: noise frequency, lacunarity and persistence must be nonnegative")
	}
	if !(amplitude >= 0) {
		panic("sdfgen: noise amplitude must be nonnegative")
	}
	n := &MultifractalNoise{
		child:       child,
		octaves:     octaves,
		frequency:   frequency,
		lacunarity:  lacunarity,
		persistence: persistence,
		amplitude:   amplitude,
		seed:        seed,
		source:      opensimplex.New(int64(seed)),
	}
	if inherent := fbmMaxAmplitude(octaves, persistence); inherent > 0 {
		n.noiseScale = amplitude / inherent
	}
	return n
}

func (n *MultifractalNoise) children() []NodeID { return []NodeID{n.child} }

func (n *MultifractalNoise) Octaves() uint32      { return n.octaves }
func (n *MultifractalNoise) Frequency() float32   { return n.frequency }
func (n *MultifractalNoise) Lacunarity() float32  { return n.lacunarity }
func (n *MultifractalNoise) Persistence() float32 { return n.persistence }
func (n *MultifractalNoise) Amplitude() float32   { return n.amplitude }
func (n *MultifractalNoise) Seed() uint32         { return n.seed }

// fbmMaxAmplitude is the largest magnitude an octave sum can reach
// when every octave's source value is 1: the geometric series
// 1 + p + ... + p^(octaves-1).
func fbmMaxAmplitude(octaves uint32, persistence float32) float32 {
	if octaves == 0 {
		return 0
	}
	if math32.Abs(persistence-1) < 1e-6 {
		return float32(octaves)
	}
	return (1 - math32.Pow(persistence, float32(octaves))) / (1 - persistence)
}

func (n *MultifractalNoise) fbm(x, y, z, frequency float32) float32 {
	sum := float32(0)
	amp := float32(1)
	f := frequency
	for o := uint32(0); o < n.octaves; o++ {
		sum += amp * float32(n.source.Eval3(float64(f*x), float64(f*y), float64(f*z)))
		amp *= n.persistence
		f *= n.lacunarity
	}
	return sum
}

// maxPerturbation bounds how far the modifier can move a distance.
func (n *MultifractalNoise) maxPerturbation() float32 { return n.amplitude }

// perturbBlock adds the noise field to dist in place. Positions are
// sampled in the node's local space through toNode. When the frame is
// axis aligned the noise lattice is sampled into scratch first so the
// inner loop advances by a constant z step in noise space.
func (n *MultifractalNoise) perturbBlock(dist, scratch []float32, toNode frame, blockOrigin ms3.Vec, size int) {
	if n.noiseScale == 0 {
		return
	}
	inverseScale := toNode.scale()
	freq := n.frequency * inverseScale
	origin := ms3.Scale(1/inverseScale, toNode.apply(blockOrigin))

	if !toNode.isAxisAligned() {
		// The rotated lattice does not line up with the block axes,
		// so sample per point along the frame's basis columns.
		scale := 1 / inverseScale
		dx := ms3.Scale(scale, toNode.x)
		dy := ms3.Scale(scale, toNode.y)
		dz := ms3.Scale(scale, toNode.z)
		idx := 0
		for i := 0; i < size; i++ {
			pi := ms3.Add(origin, ms3.Scale(float32(i), dx))
			for j := 0; j < size; j++ {
				p := ms3.Add(pi, ms3.Scale(float32(j), dy))
				for k := 0; k < size; k++ {
					dist[idx] += n.noiseScale * n.fbm(p.X, p.Y, p.Z, freq)
					p = ms3.Add(p, dz)
					idx++
				}
			}
		}
		return
	}

	idx := 0
	for i := 0; i < size; i++ {
		x := origin.X + float32(i)
		for j := 0; j < size; j++ {
			y := origin.Y + float32(j)
			for k := 0; k < size; k++ {
				scratch[idx] = n.fbm(x, y, origin.Z+float32(k), freq)
				idx++
			}
		}
	}
	for i, v := range scratch[:idx] {
		dist[i] += n.noiseScale * v
	}
}
