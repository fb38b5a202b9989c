// Package scene provides a library of named, seeded generation
// graphs. Every builder is deterministic: the same name and seed
// always produce the same field.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"

	"github.com/chazu/strata/pkg/sdfgen"
)

// ErrUnknownScene means no builder is registered under the name.
var ErrUnknownScene = errors.New("scene: unknown scene name")

// Builder constructs a generation graph from a seed.
type Builder func(seed uint32) *sdfgen.Graph

var builders = map[string]Builder{
	"asteroid":  Asteroid,
	"boulder":   Boulder,
	"outpost":   Outpost,
	"gut-rock":  GutRock,
	"twin-moon": TwinMoon,
}

// Names lists the registered scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named scene's graph.
func Build(name string, seed uint32) (*sdfgen.Graph, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return builder(seed), nil
}

// Asteroid is a sphere dressed with multiscale sphere detail and
// roughened with fractal noise.
func Asteroid(seed uint32) *sdfgen.Graph {
	g := sdfgen.NewGraph()
	core := g.AddNode(sdfgen.NewSphere(20))
	detailed := g.AddNode(sdfgen.NewMultiscaleSphere(core, 4, 12, 0.5, 1, 1.5, 0.4, seed))
	g.AddNode(sdfgen.NewMultifractalNoise(detailed, 4, 0.06, 2, 0.5, 1.5, seed+1))
	return g
}

// Boulder is a smoothed block and sphere blend, tilted and scaled.
func Boulder(seed uint32) *sdfgen.Graph {
	g := sdfgen.NewGraph()
	slab := g.AddNode(sdfgen.NewBox(ms3.Vec{X: 14, Y: 8, Z: 10}))
	dome := g.AddNode(sdfgen.NewSphere(6))
	lifted := g.AddNode(sdfgen.NewTranslation(dome, ms3.Vec{Y: 4}))
	blend := g.AddNode(sdfgen.NewUnion(slab, lifted, sdfgen.NewSmoothness(2)))
	rough := g.AddNode(sdfgen.NewMultifractalNoise(blend, 3, 0.12, 2, 0.5, 0.8, seed))
	tilted := g.AddNode(sdfgen.NewRotationEuler(rough, 0.2, 0, 0.3))
	g.AddNode(sdfgen.NewScaling(tilted, 1.25))
	return g
}

// Outpost is a hollowed block: a capsule corridor and a spherical
// chamber carved out of a scaled box.
func Outpost(seed uint32) *sdfgen.Graph {
	g := sdfgen.NewGraph()
	hull := g.AddNode(sdfgen.NewBox(ms3.Vec{X: 24, Y: 12, Z: 16}))
	corridor := g.AddNode(sdfgen.NewCapsule(20, 2.5))
	laid := g.AddNode(sdfgen.NewRotation(corridor, ms3.Vec{Z: 1}, math32.Pi/2))
	chamber := g.AddNode(sdfgen.NewSphere(4))
	offsetChamber := g.AddNode(sdfgen.NewTranslation(chamber, ms3.Vec{X: 6, Y: 1}))
	carvedOnce := g.AddNode(sdfgen.NewSubtraction(hull, laid, sdfgen.NewSmoothness(0.5)))
	carved := g.AddNode(sdfgen.NewSubtraction(carvedOnce, offsetChamber, sdfgen.NewSmoothness(0.5)))
	g.AddNode(sdfgen.NewMultifractalNoise(carved, 2, 0.2, 2, 0.5, 0.2, seed))
	return g
}

// GutRock intersects a noisy sphere with a slab, leaving a worn
// tablet shape.
func GutRock(seed uint32) *sdfgen.Graph {
	g := sdfgen.NewGraph()
	rock := g.AddNode(sdfgen.NewSphere(10))
	noisy := g.AddNode(sdfgen.NewMultifractalNoise(rock, 5, 0.15, 2, 0.5, 1.2, seed))
	slab := g.AddNode(sdfgen.NewBox(ms3.Vec{X: 24, Y: 9, Z: 24}))
	g.AddNode(sdfgen.NewIntersection(noisy, slab, sdfgen.NewSmoothness(1)))
	return g
}

// TwinMoon shares one cratered sphere between two placements, the
// second at two thirds scale.
func TwinMoon(seed uint32) *sdfgen.Graph {
	g := sdfgen.NewGraph()
	moon := g.AddNode(sdfgen.NewSphere(9))
	cratered := g.AddNode(sdfgen.NewMultiscaleSphere(moon, 3, 6, 0.5, 1, 1.8, 0.3, seed))
	big := g.AddNode(sdfgen.NewTranslation(cratered, ms3.Vec{X: -12}))
	small := g.AddNode(sdfgen.NewScaling(cratered, 0.66))
	smallMoved := g.AddNode(sdfgen.NewTranslation(small, ms3.Vec{X: 14, Y: 3}))
	g.AddNode(sdfgen.NewUnion(big, smallMoved, sdfgen.Smoothness{}))
	return g
}
