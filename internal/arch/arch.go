// Package arch provides the per-architecture instruction recognizer used by
// the stack analyzer. Each supported instruction set is a tagged variant
// selected at runtime by Select; there is no class hierarchy and no
// process-wide mutable state.
package arch

import "fmt"

// ISA identifies one of the instruction sets the analyzer understands.
type ISA int

const (
	Unknown ISA = iota
	ARM
	AArch64
	X86
	X86_64
)

func (a ISA) String() string {
	switch a {
	case ARM:
		return "arm"
	case AArch64:
		return "aarch64"
	case X86:
		return "x86"
	case X86_64:
		return "x86_64"
	default:
		return "unknown"
	}
}

// PointerWidth returns the pointer width, in bytes, of this architecture:
// 4 for arm and x86, 8 for aarch64 and x86_64. Only the x86 family's call
// instructions push a return address of this width; ARM and AArch64 write
// the link register instead (see PushesReturnAddress).
func (a ISA) PointerWidth() int {
	switch a {
	case ARM, X86:
		return 4
	case AArch64, X86_64:
		return 8
	default:
		return 0
	}
}

// PushesReturnAddress reports whether a direct call on this architecture
// debits the caller's own stack frame for the return address. x86 and
// x86_64 call instructions push; ARM/AArch64 bl/blr instructions write the
// link register and do not touch the stack unless the callee's prologue
// spills it, which the prologue's own StackDecrease effect already covers.
func (a ISA) PushesReturnAddress() bool {
	return a == X86 || a == X86_64
}

// ErrUnsupportedISA is returned by Select and ParseISA when the requested
// architecture has no recognizer.
type ErrUnsupportedISA struct {
	Tag string
}

func (e *ErrUnsupportedISA) Error() string {
	return fmt.Sprintf("arch: unsupported architecture %q", e.Tag)
}

// ParseISA maps a lowercase architecture tag, as it would appear on a
// command line or in an ELF e_machine mapping, onto an ISA value.
func ParseISA(tag string) (ISA, error) {
	switch tag {
	case "arm":
		return ARM, nil
	case "aarch64", "arm64":
		return AArch64, nil
	case "x86", "i386", "386":
		return X86, nil
	case "x86_64", "amd64", "x86-64":
		return X86_64, nil
	default:
		return Unknown, &ErrUnsupportedISA{Tag: tag}
	}
}

// EffectKind classifies the stack-relevant consequence of one disassembled
// instruction line.
type EffectKind int

const (
	// Irrelevant instructions have no bearing on stack usage or control flow.
	Irrelevant EffectKind = iota
	// StackDecrease lowers the stack pointer by a statically known amount.
	StackDecrease
	// StackDecreaseDynamic lowers the stack pointer by an amount that
	// cannot be determined without running the program.
	StackDecreaseDynamic
	// DirectCall transfers control to a statically known address.
	DirectCall
	// IndirectCall transfers control to an address computed at runtime.
	IndirectCall
	// Return leaves the function.
	Return
)

// Effect is the classification produced by a Recognizer for a single
// disassembly line.
type Effect struct {
	Kind   EffectKind
	Bytes  uint64 // valid for StackDecrease
	Target uint64 // valid for DirectCall
}

// Recognizer turns one textual disassembly line into an Effect. A
// Recognizer is pure and stateless: the same line always yields the same
// Effect, independent of any line before or after it.
type Recognizer interface {
	ISA() ISA
	Classify(line string) (Effect, error)
}

// ErrMalformedLine is returned by Classify when a line looks like an
// instruction the recognizer should understand but doesn't parse cleanly.
// Callers are expected to record a diagnostic and continue rather than
// abort the whole extraction.
type ErrMalformedLine struct {
	Line string
}

func (e *ErrMalformedLine) Error() string {
	return fmt.Sprintf("arch: malformed instruction line: %q", e.Line)
}

// Select returns the Recognizer for the given ISA.
func Select(a ISA) (Recognizer, error) {
	switch a {
	case ARM:
		return newARMRecognizer(), nil
	case AArch64:
		return newAArch64Recognizer(), nil
	case X86:
		return newX86Recognizer(32), nil
	case X86_64:
		return newX86Recognizer(64), nil
	default:
		return nil, &ErrUnsupportedISA{Tag: a.String()}
	}
}
