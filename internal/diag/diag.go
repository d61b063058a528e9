// Package diag collects the non-fatal observations the analyzer makes
// while it walks a call graph: things worth telling a caller about without
// aborting the analysis.
package diag

import "fmt"

// Kind distinguishes the situations the analyzer can flag.
type Kind int

const (
	// CycleEntry marks a function that participates in a call cycle; its
	// total_stack is necessarily a lower bound.
	CycleEntry Kind = iota
	// IndirectCall marks a function that makes a call through a computed
	// address, one the call-graph builder cannot resolve to a callee.
	IndirectCall
	// DynamicStack marks a function that adjusts its own stack pointer by
	// an amount only known at runtime.
	DynamicStack
	// UnresolvedCallee marks a direct call to an address with no matching
	// symbol, so the callee's contribution cannot be folded in.
	UnresolvedCallee
	// MalformedLine marks a disassembly line a recognizer expected to
	// understand but could not parse.
	MalformedLine
)

func (k Kind) String() string {
	switch k {
	case CycleEntry:
		return "cycle"
	case IndirectCall:
		return "indirect-call"
	case DynamicStack:
		return "dynamic-stack"
	case UnresolvedCallee:
		return "unresolved-callee"
	case MalformedLine:
		return "malformed-line"
	default:
		return "unknown"
	}
}

// Severity orders diagnostics by how much they should worry a caller. It is
// advisory: the analyzer itself never aborts on any of them.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (k Kind) Severity() Severity {
	switch k {
	case CycleEntry:
		return SeverityInfo
	case IndirectCall, DynamicStack:
		return SeverityWarning
	case UnresolvedCallee, MalformedLine:
		return SeverityError
	default:
		return SeverityInfo
	}
}

// Diagnostic is one observation, anchored to the function (and, for
// UnresolvedCallee, the address) that produced it.
type Diagnostic struct {
	Kind     Kind
	Function string
	Address  uint64
	Target   uint64
	Line     string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case CycleEntry:
		return fmt.Sprintf("%s: participates in a call cycle", d.Function)
	case IndirectCall:
		return fmt.Sprintf("%s: makes an indirect call, callee unknown", d.Function)
	case DynamicStack:
		return fmt.Sprintf("%s: adjusts the stack pointer by a runtime-computed amount", d.Function)
	case UnresolvedCallee:
		return fmt.Sprintf("%s: calls 0x%x, no matching symbol", d.Function, d.Target)
	case MalformedLine:
		return fmt.Sprintf("%s: could not parse instruction: %s", d.Function, d.Line)
	default:
		return fmt.Sprintf("%s: %s", d.Function, d.Kind)
	}
}

// List is an ordered collection of diagnostics, ordered by discovery.
type List []Diagnostic

// Add appends a diagnostic in place.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// WorstSeverity returns the highest severity present, or SeverityInfo for
// an empty list.
func (l List) WorstSeverity() Severity {
	worst := SeverityInfo
	for _, d := range l {
		if s := d.Kind.Severity(); s > worst {
			worst = s
		}
	}
	return worst
}

// CountByKind tallies how many diagnostics of each kind are present.
func (l List) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range l {
		counts[d.Kind]++
	}
	return counts
}
