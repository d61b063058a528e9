package propagate

import (
	"testing"

	"github.com/haldorsen/stackbound/internal/callgraph"
	"github.com/haldorsen/stackbound/internal/cycle"
	"github.com/haldorsen/stackbound/internal/frame"
)

func setup(t *testing.T, frames []frame.Frame) (*callgraph.Graph, []cycle.Component) {
	t.Helper()
	g, _ := callgraph.Build(frames, nil)
	comps, _ := cycle.Detect(g)
	return g, comps
}

func TestPropagateLinearChainIsAdditive(t *testing.T) {
	g, comps := setup(t, []frame.Frame{
		{Address: 0x1000, Name: "F", OwnStack: 40, CallTargets: []uint64{0x2000}},
		{Address: 0x2000, Name: "G", OwnStack: 16},
	})
	Run(g, comps)

	gIdx, _ := g.Lookup(0x2000)
	if g.Node(gIdx).TotalStack != 16 {
		t.Errorf("G.TotalStack = %d, want 16", g.Node(gIdx).TotalStack)
	}
	fIdx, _ := g.Lookup(0x1000)
	if g.Node(fIdx).TotalStack != 56 {
		t.Errorf("F.TotalStack = %d, want 56", g.Node(fIdx).TotalStack)
	}
	if g.Node(fIdx).TotalIsLowerBound {
		t.Errorf("F.TotalIsLowerBound = true, want false (no cycle, dynamic stack, or indirect call)")
	}
}

func TestPropagateTakesMaxAcrossCallees(t *testing.T) {
	g, comps := setup(t, []frame.Frame{
		{Address: 1, Name: "F", OwnStack: 8, CallTargets: []uint64{2, 3}},
		{Address: 2, Name: "Small", OwnStack: 8},
		{Address: 3, Name: "Big", OwnStack: 64},
	})
	Run(g, comps)
	fIdx, _ := g.Lookup(1)
	if g.Node(fIdx).TotalStack != 8+64 {
		t.Errorf("F.TotalStack = %d, want %d", g.Node(fIdx).TotalStack, 8+64)
	}
}

func TestPropagateCycleIsLowerBound(t *testing.T) {
	g, comps := setup(t, []frame.Frame{
		{Address: 1, Name: "A", OwnStack: 8, CallTargets: []uint64{2}},
		{Address: 2, Name: "B", OwnStack: 16, CallTargets: []uint64{1}},
	})
	Run(g, comps)
	aIdx, _ := g.Lookup(1)
	bIdx, _ := g.Lookup(2)
	a, b := g.Node(aIdx), g.Node(bIdx)
	if !a.TotalIsLowerBound || !b.TotalIsLowerBound {
		t.Errorf("cyclic nodes must be marked as lower bounds")
	}
	if a.TotalStack != a.Frame.OwnStack {
		t.Errorf("A.TotalStack = %d, want %d (its only callee is intra-cycle)", a.TotalStack, a.Frame.OwnStack)
	}
}

func TestPropagateCycleWithExit(t *testing.T) {
	// A <-> B, and B also calls C outside the cycle.
	g, comps := setup(t, []frame.Frame{
		{Address: 1, Name: "A", OwnStack: 8, CallTargets: []uint64{2}},
		{Address: 2, Name: "B", OwnStack: 16, CallTargets: []uint64{1, 3}},
		{Address: 3, Name: "C", OwnStack: 100},
	})
	Run(g, comps)
	bIdx, _ := g.Lookup(2)
	b := g.Node(bIdx)
	if b.TotalStack != 16+100 {
		t.Errorf("B.TotalStack = %d, want %d", b.TotalStack, 116)
	}
	if !b.TotalIsLowerBound {
		t.Errorf("B must still be flagged a lower bound; it's in a cycle")
	}
}

func TestPropagateIsIdempotent(t *testing.T) {
	g, comps := setup(t, []frame.Frame{
		{Address: 1, Name: "F", OwnStack: 24, CallTargets: []uint64{2}},
		{Address: 2, Name: "G", OwnStack: 8},
	})
	Run(g, comps)
	first := g.Node(mustLookup(t, g, 1)).TotalStack
	Run(g, comps)
	second := g.Node(mustLookup(t, g, 1)).TotalStack
	if first != second {
		t.Errorf("running propagation twice changed the result: %d vs %d", first, second)
	}
}

func mustLookup(t *testing.T, g *callgraph.Graph, addr uint64) callgraph.NodeIndex {
	t.Helper()
	idx, ok := g.Lookup(addr)
	if !ok {
		t.Fatalf("no node at 0x%x", addr)
	}
	return idx
}

func TestPropagateExternalLeafIsLowerBound(t *testing.T) {
	g, _ := callgraph.Build([]frame.Frame{
		{Address: 1, Name: "F", OwnStack: 8, CallTargets: []uint64{2}},
	}, fakeSymbols{2: "memcpy@plt"})
	comps, _ := cycle.Detect(g)
	Run(g, comps)
	fIdx, _ := g.Lookup(1)
	if !g.Node(fIdx).TotalIsLowerBound {
		t.Errorf("calling an external symbol must make the caller's total a lower bound")
	}
}

type fakeSymbols map[uint64]string

func (f fakeSymbols) Lookup(addr uint64) (string, bool) {
	name, ok := f[addr]
	return name, ok
}
