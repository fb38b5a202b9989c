package sdfgen

import (
	"errors"
	"fmt"

	"github.com/soypat/glgl/math/ms3"
)

var (
	// ErrMissingNode means a node references a child id the graph
	// never issued.
	ErrMissingNode = errors.New("sdfgen: node references a missing child")
	// ErrCycle means the graph reaches a node again before finishing
	// its children, so it cannot be unrolled into a tree.
	ErrCycle = errors.New("sdfgen: node graph contains a cycle")
)

// compiledNode is one instruction of the flat evaluation program.
type compiledNode struct {
	node Node
	// toNodeSpace maps root space sample positions into the node's
	// local space, accumulated from the transforms above it.
	toNodeSpace frame
	// domainWithMargin bounds the region where the node's field may
	// fall below margin, in the node's local space.
	domainWithMargin ms3.Box
	// margin is a lower bound on the field outside domainWithMargin.
	margin float32
	// leafCount is the number of primitives in the node's subtree.
	leafCount uint32
}

type visitState uint8

const (
	unvisited visitState = iota
	visitingChildren
	domainDetermined
)

type buildStep struct {
	id      NodeID
	process bool
}

// compile unrolls the graph below root into a children-first linear
// program, then walks it backwards to accumulate transforms and
// margins. Shared nodes are emitted once per reference; a node seen
// again before its own children finished is a cycle.
func compile(nodes []Node, root NodeID, farLimit float32) (*Generator, error) {
	program := make([]compiledNode, 0, len(nodes))
	states := make([]visitState, len(nodes))
	domains := make([]ms3.Box, len(nodes))
	leafCounts := make([]uint32, len(nodes))
	paddings := make([]float32, len(nodes))

	steps := make([]buildStep, 0, 2*len(nodes))
	steps = append(steps, buildStep{id: root})

	stackTop, requiredStack := 0, 0
	for len(steps) > 0 {
		step := steps[len(steps)-1]
		steps = steps[:len(steps)-1]
		idx := int(step.id)
		if idx >= len(nodes) {
			return nil, fmt.Errorf("%w: id %d", ErrMissingNode, step.id)
		}

		if !step.process {
			if states[idx] == visitingChildren {
				return nil, fmt.Errorf("%w: node %d is its own ancestor", ErrCycle, step.id)
			}
			if states[idx] == unvisited {
				states[idx] = visitingChildren
			}
			steps = append(steps, buildStep{id: step.id, process: true})
			kids := nodes[idx].children()
			// Pushed in reverse so the first child is emitted first.
			for i := len(kids) - 1; i >= 0; i-- {
				steps = append(steps, buildStep{id: kids[i]})
			}
			continue
		}

		n := nodes[idx]
		if states[idx] != domainDetermined {
			states[idx] = domainDetermined
			switch node := n.(type) {
			case primitive:
				domains[idx] = node.bounds()
				leafCounts[idx] = 1
			case *Translation:
				c := int(node.child)
				domains[idx] = translateBox(domains[c], node.offset)
				leafCounts[idx] = leafCounts[c]
				paddings[idx] = paddings[c]
			case *Rotation:
				c := int(node.child)
				domains[idx] = rotatedBoxBounds(domains[c], node.rot)
				leafCounts[idx] = leafCounts[c]
				paddings[idx] = paddings[c]
			case *Scaling:
				c := int(node.child)
				domains[idx] = scaleBoxAboutOrigin(domains[c], node.factor)
				leafCounts[idx] = leafCounts[c]
				paddings[idx] = paddings[c] * node.factor
			case *MultifractalNoise:
				c := int(node.child)
				domains[idx] = expandBox(domains[c], node.maxPerturbation())
				leafCounts[idx] = leafCounts[c]
				paddings[idx] = paddings[c]
			case *MultiscaleSphere:
				c := int(node.child)
				domains[idx] = expandBox(domains[c], node.maxPerturbation())
				leafCounts[idx] = leafCounts[c]
				paddings[idx] = paddings[c]
			case combinator:
				kids := node.children()
				c1, c2 := int(kids[0]), int(kids[1])
				domains[idx] = node.combineBounds(domains[c1], domains[c2])
				leafCounts[idx] = leafCounts[c1] + leafCounts[c2]
				paddings[idx] = softCombinePadding(node.smooth(), leafCounts[idx])
			default:
				panic(fmt.Sprintf("sdfgen: unknown node type %T", n))
			}
		}

		program = append(program, compiledNode{
			node:             n,
			toNodeSpace:      identityFrame(),
			domainWithMargin: expandBox(domains[idx], paddings[idx]),
			leafCount:        leafCounts[idx],
		})

		switch n.(type) {
		case primitive:
			stackTop++
			if stackTop > requiredStack {
				requiredStack = stackTop
			}
		case combinator:
			if stackTop < 2 {
				panic("sdfgen: unbalanced value stack while compiling")
			}
			stackTop--
		}
	}
	if stackTop != 1 {
		panic("sdfgen: compiled program does not leave one value on the stack")
	}

	determineFramesAndMargins(program, farLimit)

	return &Generator{
		program:       program,
		requiredStack: requiredStack,
		domain:        expandBox(domains[root], paddings[root]),
		farLimit:      farLimit,
	}, nil
}

// determineFramesAndMargins walks the program from the root down,
// mirroring evaluation in reverse. Each node inherits the frame and
// margin of its parent: transforms refine the frame for the subtree
// below, modifiers widen the margin by their maximum perturbation,
// and combinators hand the same state to both operands.
func determineFramesAndMargins(program []compiledNode, farLimit float32) {
	frames := make([]frame, len(program))
	margins := make([]float32, len(program))
	top := 0
	frames[0] = identityFrame()
	margins[0] = farLimit

	for i := len(program) - 1; i >= 0; i-- {
		cn := &program[i]
		f, m := frames[top], margins[top]
		cn.toNodeSpace = f
		cn.margin = m
		cn.domainWithMargin = expandBox(cn.domainWithMargin, m)

		switch node := cn.node.(type) {
		case primitive:
			if top > 0 {
				top--
			}
		case *Translation:
			frames[top] = f.thenTranslate(ms3.Scale(-1, node.offset))
		case *Rotation:
			frames[top] = f.thenRotate(node.rot.transposed())
		case *Scaling:
			frames[top] = f.thenScale(1 / node.factor)
			// A distance of m in parent space is m*factor in the
			// child's dilated space.
			margins[top] = m * node.factor
		case *MultifractalNoise:
			margins[top] = m + node.maxPerturbation()
		case *MultiscaleSphere:
			margins[top] = m + node.maxPerturbation()
		case combinator:
			// Smooth blending lets one operand influence the result
			// even where the other dominates, so children need a
			// margin beyond the parent's.
			mc := m + 2.5*softCombinePadding(node.smooth(), cn.leafCount)
			margins[top] = mc
			top++
			frames[top] = f
			margins[top] = mc
		}
	}
	if top != 0 {
		panic("sdfgen: unbalanced traversal stack while assigning frames")
	}
}
