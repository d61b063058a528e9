// Package cycle finds strongly connected components in a call graph using
// Tarjan's algorithm, driven by an explicit stack rather than the call
// stack so that deeply nested or heavily recursive binaries don't blow
// Go's goroutine stack.
package cycle

import (
	"github.com/haldorsen/stackbound/internal/callgraph"
	"github.com/haldorsen/stackbound/internal/diag"
)

// Component is one strongly connected component, as a list of node
// indices. A component of size one whose single node does not call
// itself is not a cycle; everything else is.
type Component []callgraph.NodeIndex

// Detect runs Tarjan's algorithm over g, marks Node.InCycle on every node
// that participates in a multi-node component or a self-loop, and returns
// the components in the order Tarjan completes them. That order is a
// valid reverse topological order of the condensation graph: every
// component appears after all the components its members call into.
func Detect(g *callgraph.Graph) ([]Component, diag.List) {
	d := &detector{
		g:       g,
		index:   make([]int, g.Len()),
		lowlink: make([]int, g.Len()),
		onStack: make([]bool, g.Len()),
	}
	for i := range d.index {
		d.index[i] = -1
	}

	var components []Component
	for i := 0; i < g.Len(); i++ {
		if d.index[i] == -1 {
			components = append(components, d.strongConnect(callgraph.NodeIndex(i))...)
		}
	}

	var diags diag.List
	for _, comp := range components {
		if len(comp) > 1 || selfLoop(g, comp[0]) {
			for _, idx := range comp {
				g.Node(idx).InCycle = true
			}
			diags.Add(diag.Diagnostic{
				Kind:     diag.CycleEntry,
				Function: g.Node(comp[0]).Frame.Name,
				Address:  g.Node(comp[0]).Frame.Address,
			})
		}
	}

	return components, diags
}

func selfLoop(g *callgraph.Graph, idx callgraph.NodeIndex) bool {
	for _, c := range g.Node(idx).Callees {
		if c == idx {
			return true
		}
	}
	return false
}

// detector holds Tarjan's bookkeeping. It is run with an explicit work
// stack instead of recursion: each frame remembers the node it's
// processing and how far through its callee list it has gotten.
type detector struct {
	g         *callgraph.Graph
	index     []int
	lowlink   []int
	onStack   []bool
	stack     []callgraph.NodeIndex
	nextIndex int
}

type work struct {
	node     callgraph.NodeIndex
	children []callgraph.NodeIndex
	pos      int
}

func (d *detector) strongConnect(root callgraph.NodeIndex) []Component {
	var components []Component
	var frames []*work

	push := func(n callgraph.NodeIndex) {
		d.index[n] = d.nextIndex
		d.lowlink[n] = d.nextIndex
		d.nextIndex++
		d.stack = append(d.stack, n)
		d.onStack[n] = true
		frames = append(frames, &work{node: n, children: d.g.Node(n).Callees})
	}

	push(root)

	for len(frames) > 0 {
		top := frames[len(frames)-1]
		if top.pos < len(top.children) {
			child := top.children[top.pos]
			top.pos++
			if d.index[child] == -1 {
				push(child)
				continue
			} else if d.onStack[child] {
				if d.index[child] < d.lowlink[top.node] {
					d.lowlink[top.node] = d.index[child]
				}
			}
			continue
		}

		// all children processed; propagate lowlink to parent and, if
		// this node is a component root, pop the component off the
		// stack.
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := frames[len(frames)-1]
			if d.lowlink[top.node] < d.lowlink[parent.node] {
				d.lowlink[parent.node] = d.lowlink[top.node]
			}
		}

		if d.lowlink[top.node] == d.index[top.node] {
			var comp Component
			for {
				n := d.stack[len(d.stack)-1]
				d.stack = d.stack[:len(d.stack)-1]
				d.onStack[n] = false
				comp = append(comp, n)
				if n == top.node {
					break
				}
			}
			components = append(components, comp)
		}
	}

	return components
}
