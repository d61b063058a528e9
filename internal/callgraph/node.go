// Package callgraph resolves extracted frames into a graph of functions
// connected by call edges. Nodes live in a single arena slice addressed by
// index; there is no cyclic pointer ownership between nodes, which keeps
// the graph trivial to walk with an explicit stack instead of recursion.
package callgraph

import "github.com/haldorsen/stackbound/internal/frame"

// NodeIndex is a stable handle into a Graph's node arena.
type NodeIndex int

// Node is one function in the call graph, plus the results the cycle
// detector and stack propagator attach to it.
type Node struct {
	Frame frame.Frame

	Callees []NodeIndex
	Callers []NodeIndex

	InCycle           bool
	TotalStack        uint64
	TotalIsLowerBound bool

	// External marks a synthetic node standing in for a call target with
	// a resolvable symbol but no disassembled body in this binary, such
	// as a PLT stub or a statically linked library routine. Its own
	// stack usage is unknown, so it is always a lower bound.
	External bool
}

// SymbolMap resolves a call target address to the function that begins
// there. Implementations back onto whatever symbol table the binary
// reader produced.
type SymbolMap interface {
	Lookup(addr uint64) (name string, ok bool)
}

// Graph is the arena of nodes plus an index from address to NodeIndex for
// edge resolution.
type Graph struct {
	Nodes   []Node
	byAddr  map[uint64]NodeIndex
}

// Node returns the node at idx.
func (g *Graph) Node(idx NodeIndex) *Node { return &g.Nodes[idx] }

// Lookup finds the NodeIndex for a function address, if that address has
// a node in this graph.
func (g *Graph) Lookup(addr uint64) (NodeIndex, bool) {
	idx, ok := g.byAddr[addr]
	return idx, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.Nodes) }
