// Package analyzer wires the architecture recognizer, function extractor,
// call-graph builder, cycle detector, and stack propagator into the
// single pure entry point external callers use: an architecture, a
// disassembly stream, and a symbol map go in, an annotated call graph and
// a diagnostic list come out. Nothing here touches a filesystem, a
// process, or any package-level mutable state.
package analyzer

import (
	"github.com/haldorsen/stackbound/internal/arch"
	"github.com/haldorsen/stackbound/internal/callgraph"
	"github.com/haldorsen/stackbound/internal/cycle"
	"github.com/haldorsen/stackbound/internal/diag"
	"github.com/haldorsen/stackbound/internal/frame"
	"github.com/haldorsen/stackbound/internal/propagate"
)

// Input bundles everything the analyzer needs: which architecture to
// decode against, the disassembly split into per-function sections, and a
// symbol map for resolving call targets that land outside the
// disassembled set.
type Input struct {
	ISA      arch.ISA
	Sections []frame.Section
	Symbols  callgraph.SymbolMap
}

// Result is the annotated call graph plus every diagnostic raised while
// building it.
type Result struct {
	Graph       *callgraph.Graph
	Components  []cycle.Component
	Diagnostics diag.List
}

// Analyze runs the full pipeline once and returns the result. It does not
// mutate its input.
func Analyze(in Input) (*Result, error) {
	rec, err := arch.Select(in.ISA)
	if err != nil {
		return nil, err
	}

	frames, extractDiags := frame.Extract(rec, in.Sections)
	graph, buildDiags := callgraph.Build(frames, in.Symbols)
	components, cycleDiags := cycle.Detect(graph)
	propagate.Run(graph, components)

	var diags diag.List
	diags = append(diags, extractDiags...)
	diags = append(diags, buildDiags...)
	diags = append(diags, cycleDiags...)

	return &Result{
		Graph:       graph,
		Components:  components,
		Diagnostics: diags,
	}, nil
}

// FunctionResult is a flattened, rendering-friendly view of one node.
type FunctionResult struct {
	Name              string
	Address           uint64
	OwnStack          uint64
	TotalStack        uint64
	TotalIsLowerBound bool
	InCycle           bool
	External          bool
}

// Functions flattens the graph into a slice in node-arena order, skipping
// nothing: callers typically sort this by TotalStack before display.
func (r *Result) Functions() []FunctionResult {
	out := make([]FunctionResult, 0, r.Graph.Len())
	for i := 0; i < r.Graph.Len(); i++ {
		n := r.Graph.Node(callgraph.NodeIndex(i))
		out = append(out, FunctionResult{
			Name:              n.Frame.Name,
			Address:           n.Frame.Address,
			OwnStack:          n.Frame.OwnStack,
			TotalStack:        n.TotalStack,
			TotalIsLowerBound: n.TotalIsLowerBound,
			InCycle:           n.InCycle,
			External:          n.External,
		})
	}
	return out
}
