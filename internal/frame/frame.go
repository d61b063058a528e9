// Package frame extracts, per function, the statically known part of its
// stack frame from a stream of disassembly lines.
package frame

import (
	"sort"

	"github.com/haldorsen/stackbound/internal/arch"
	"github.com/haldorsen/stackbound/internal/diag"
)

// Section is one function's worth of disassembly, as produced by whatever
// emitted the textual instruction stream. Name and Address identify the
// function; Lines holds the instruction text, one instruction per entry,
// in program order.
type Section struct {
	Address uint64
	Name    string
	Object  string
	Lines   []string
}

// Frame is the statically derivable part of one function's stack
// footprint: the bytes it debits from the stack itself, the targets it
// calls, and whether either of those is in any doubt.
type Frame struct {
	Address         uint64
	Name            string
	Section         string
	OwnStack        uint64
	CallTargets     []uint64
	DynamicStack    bool
	HasIndirectCall bool
}

// Extract walks every Section with the given recognizer and returns one
// Frame per section, in the same order, along with any diagnostics raised
// along the way. A malformed line does not stop extraction of the rest of
// the function; it is recorded and skipped.
func Extract(rec arch.Recognizer, sections []Section) ([]Frame, diag.List) {
	frames := make([]Frame, 0, len(sections))
	var diags diag.List

	for _, sec := range sections {
		f := Frame{
			Address: sec.Address,
			Name:    sec.Name,
			Section: sec.Object,
		}
		targets := make([]uint64, 0)
		seen := make(map[uint64]bool)
		var firstMalformed string

		for _, line := range sec.Lines {
			eff, err := rec.Classify(line)
			if err != nil {
				if firstMalformed == "" {
					firstMalformed = line
				}
				continue
			}
			switch eff.Kind {
			case arch.StackDecrease:
				f.OwnStack += eff.Bytes
			case arch.StackDecreaseDynamic:
				f.DynamicStack = true
			case arch.DirectCall:
				if rec.ISA().PushesReturnAddress() {
					f.OwnStack += uint64(rec.ISA().PointerWidth())
				}
				if !seen[eff.Target] {
					seen[eff.Target] = true
					targets = append(targets, eff.Target)
				}
			case arch.IndirectCall:
				if rec.ISA().PushesReturnAddress() {
					f.OwnStack += uint64(rec.ISA().PointerWidth())
				}
				f.HasIndirectCall = true
			case arch.Return, arch.Irrelevant:
				// no effect on own_stack
			}
		}

		// diagnostics are reported once per frame, not once per
		// occurrence: a function with ten indirect calls is exactly as
		// suspect as one with a single indirect call.
		if firstMalformed != "" {
			diags.Add(diag.Diagnostic{Kind: diag.MalformedLine, Function: f.Name, Address: f.Address, Line: firstMalformed})
		}
		if f.DynamicStack {
			diags.Add(diag.Diagnostic{Kind: diag.DynamicStack, Function: f.Name, Address: f.Address})
		}
		if f.HasIndirectCall {
			diags.Add(diag.Diagnostic{Kind: diag.IndirectCall, Function: f.Name, Address: f.Address})
		}

		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
		f.CallTargets = targets
		frames = append(frames, f)
	}

	return frames, diags
}
