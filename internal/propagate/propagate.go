// Package propagate computes, for every node in a call graph whose cycles
// have already been found, the total stack usage upper bound each
// function can be blamed for.
package propagate

import (
	"github.com/haldorsen/stackbound/internal/callgraph"
	"github.com/haldorsen/stackbound/internal/cycle"
)

// Run computes TotalStack and TotalIsLowerBound for every node in g.
// Components must be in the order cycle.Detect returns them: every
// component's callees, outside the component itself, must already have
// been processed by the time the component is reached.
func Run(g *callgraph.Graph, components []cycle.Component) {
	for _, comp := range components {
		inComp := make(map[callgraph.NodeIndex]bool, len(comp))
		for _, idx := range comp {
			inComp[idx] = true
		}

		for _, idx := range comp {
			n := g.Node(idx)

			var max uint64
			lowerBound := n.External

			for _, callee := range n.Callees {
				if inComp[callee] {
					// intra-component edges contribute nothing; the
					// component's own members are accounted for by the
					// one pass through it that OwnStack already covers.
					continue
				}
				c := g.Node(callee)
				if c.TotalStack > max {
					max = c.TotalStack
				}
				if c.TotalIsLowerBound {
					lowerBound = true
				}
			}

			n.TotalStack = n.Frame.OwnStack + max
			n.TotalIsLowerBound = lowerBound || n.InCycle || n.Frame.DynamicStack || n.Frame.HasIndirectCall
		}
	}
}
