package arch

import (
	"regexp"
	"strconv"
	"strings"
)

// armRecognizer understands 32-bit ARM (AArch32) disassembly lines. Unlike
// x86, bl does not push a return address; the link register holds it, and
// a function only pays for it if its own prologue spills lr to the stack,
// which shows up as an ordinary push/stmfd.
type armRecognizer struct{}

func newARMRecognizer() *armRecognizer { return &armRecognizer{} }

func (r *armRecognizer) ISA() ISA { return ARM }

var (
	armSubImm  = regexp.MustCompile(`^\s*sub\s+sp,\s*sp,\s*#(0x[0-9a-fA-F]+|[0-9]+)\s*$`)
	armSubReg  = regexp.MustCompile(`^\s*sub\s+sp,\s*sp,\s*r\d+\s*$`)
	armPush    = regexp.MustCompile(`^\s*push\s*\{([^}]*)\}\s*$`)
	armStmfd   = regexp.MustCompile(`^\s*stmfd\s+sp!,\s*\{([^}]*)\}\s*$`)
	armBl      = regexp.MustCompile(`^\s*bl\s+([0-9a-fA-F]+)\s*(?:<[^>]*>)?\s*$`)
	armBlxHex  = regexp.MustCompile(`^\s*blx\s+([0-9a-fA-F]+)\s*(?:<[^>]*>)?\s*$`)
	armBlxReg  = regexp.MustCompile(`^\s*blx\s+r\d+\s*$`)
	armBxLR    = regexp.MustCompile(`^\s*bx\s+lr\s*$`)
	armBxReg   = regexp.MustCompile(`^\s*bx\s+r\d+\s*$`)
	armPop     = regexp.MustCompile(`^\s*pop\s*\{[^}]*\bpc\b[^}]*\}\s*$`)
)

func (r *armRecognizer) Classify(line string) (Effect, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Effect{Kind: Irrelevant}, nil
	}
	if m := armSubImm.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
	}
	if armSubReg.MatchString(line) {
		return Effect{Kind: StackDecreaseDynamic}, nil
	}
	if m := armPush.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: uint64(countRegs(m[1]) * 4)}, nil
	}
	if m := armStmfd.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: uint64(countRegs(m[1]) * 4)}, nil
	}
	if m := armBlxHex.FindStringSubmatch(line); m != nil {
		target, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return Effect{}, &ErrMalformedLine{Line: line}
		}
		return Effect{Kind: DirectCall, Target: target}, nil
	}
	if armBlxReg.MatchString(line) {
		return Effect{Kind: IndirectCall}, nil
	}
	if m := armBl.FindStringSubmatch(line); m != nil {
		target, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return Effect{}, &ErrMalformedLine{Line: line}
		}
		return Effect{Kind: DirectCall, Target: target}, nil
	}
	if armBxLR.MatchString(trimmed) || armPop.MatchString(trimmed) {
		return Effect{Kind: Return}, nil
	}
	if armBxReg.MatchString(trimmed) {
		return Effect{Kind: IndirectCall}, nil
	}
	if strings.HasPrefix(trimmed, "bl") || strings.HasPrefix(trimmed, "blx") {
		return Effect{}, &ErrMalformedLine{Line: line}
	}
	return Effect{Kind: Irrelevant}, nil
}

func countRegs(list string) int {
	if strings.TrimSpace(list) == "" {
		return 0
	}
	n := 0
	for _, part := range strings.Split(list, ",") {
		if strings.Contains(part, "-") {
			n += 2 // range shorthand, conservative floor; exact count needs register numbering
			continue
		}
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
