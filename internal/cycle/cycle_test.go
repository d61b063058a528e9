package cycle

import (
	"testing"

	"github.com/haldorsen/stackbound/internal/callgraph"
	"github.com/haldorsen/stackbound/internal/frame"
)

func buildGraph(t *testing.T, frames []frame.Frame) *callgraph.Graph {
	t.Helper()
	g, diags := callgraph.Build(frames, nil)
	for _, d := range diags {
		if d.Kind.String() == "unresolved-callee" {
			t.Fatalf("unexpected unresolved callee in test fixture: %v", d)
		}
	}
	return g
}

func TestDetectNoCycle(t *testing.T) {
	g := buildGraph(t, []frame.Frame{
		{Address: 1, Name: "F", CallTargets: []uint64{2}},
		{Address: 2, Name: "G"},
	})
	comps, diags := Detect(g)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	for _, c := range comps {
		if len(c) > 1 {
			t.Errorf("found a multi-node component in an acyclic graph: %v", c)
		}
	}
	idx, _ := g.Lookup(1)
	if g.Node(idx).InCycle {
		t.Errorf("F should not be marked InCycle")
	}
}

func TestDetectSelfLoop(t *testing.T) {
	g := buildGraph(t, []frame.Frame{
		{Address: 1, Name: "F", CallTargets: []uint64{1}},
	})
	_, diags := Detect(g)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	idx, _ := g.Lookup(1)
	if !g.Node(idx).InCycle {
		t.Errorf("self-recursive F should be marked InCycle")
	}
}

func TestDetectMutualRecursion(t *testing.T) {
	g := buildGraph(t, []frame.Frame{
		{Address: 1, Name: "A", CallTargets: []uint64{2}},
		{Address: 2, Name: "B", CallTargets: []uint64{1}},
	})
	comps, diags := Detect(g)
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	found := false
	for _, c := range comps {
		if len(c) == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a 2-node component, got %v", comps)
	}
	aIdx, _ := g.Lookup(1)
	bIdx, _ := g.Lookup(2)
	if !g.Node(aIdx).InCycle || !g.Node(bIdx).InCycle {
		t.Errorf("both A and B should be marked InCycle")
	}
}

func TestDetectOrderIsCalleeBeforeCaller(t *testing.T) {
	// F -> G -> H, a pure chain: H's component must appear before G's,
	// and G's before F's.
	g := buildGraph(t, []frame.Frame{
		{Address: 1, Name: "F", CallTargets: []uint64{2}},
		{Address: 2, Name: "G", CallTargets: []uint64{3}},
		{Address: 3, Name: "H"},
	})
	comps, _ := Detect(g)
	pos := map[uint64]int{}
	for i, c := range comps {
		pos[uint64(g.Node(c[0]).Frame.Address)] = i
	}
	if !(pos[3] < pos[2] && pos[2] < pos[1]) {
		t.Errorf("got order %v, want H before G before F", comps)
	}
}
