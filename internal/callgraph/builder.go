package callgraph

import (
	"sort"

	"github.com/haldorsen/stackbound/internal/diag"
	"github.com/haldorsen/stackbound/internal/frame"
)

// Build resolves a list of frames into a Graph. Every frame gets exactly
// one node, addressed by its entry address. Call targets that resolve to
// another frame in this set become Callee/Caller edges; call targets that
// don't resolve to anything are reported as UnresolvedCallee diagnostics
// and otherwise ignored, since the propagator has nothing to fold in for
// them.
func Build(frames []frame.Frame, symbols SymbolMap) (*Graph, diag.List) {
	g := &Graph{
		Nodes:  make([]Node, len(frames)),
		byAddr: make(map[uint64]NodeIndex, len(frames)),
	}
	for i, f := range frames {
		g.Nodes[i] = Node{Frame: f}
		g.byAddr[f.Address] = NodeIndex(i)
	}

	var diags diag.List
	// iterate by index, not range over g.Nodes, because resolving an
	// external symbol can append a new node and invalidate a snapshot.
	for i := 0; i < len(g.Nodes); i++ {
		n := &g.Nodes[i]
		for _, target := range n.Frame.CallTargets {
			calleeIdx, ok := g.byAddr[target]
			if !ok {
				name, known := "", false
				if symbols != nil {
					name, known = symbols.Lookup(target)
				}
				if !known {
					diags.Add(diag.Diagnostic{
						Kind:     diag.UnresolvedCallee,
						Function: n.Frame.Name,
						Address:  n.Frame.Address,
						Target:   target,
					})
					continue
				}
				calleeIdx = g.addExternal(target, name)
				n = &g.Nodes[i]
			}
			n.Callees = append(n.Callees, calleeIdx)
			g.Nodes[calleeIdx].Callers = append(g.Nodes[calleeIdx].Callers, NodeIndex(i))
		}
		sort.Slice(n.Callees, func(a, b int) bool { return n.Callees[a] < n.Callees[b] })
	}

	return g, diags
}

// addExternal appends a synthetic leaf node for a resolvable but
// undisassembled symbol and returns its index.
func (g *Graph) addExternal(addr uint64, name string) NodeIndex {
	idx := NodeIndex(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{
		Frame: frame.Frame{
			Address: addr,
			Name:    name,
		},
		External:          true,
		TotalIsLowerBound: true,
	})
	g.byAddr[addr] = idx
	return idx
}
