package arch

import (
	"regexp"
	"strconv"
	"strings"
)

// x86Recognizer understands AT&T syntax disassembly lines of the kind
// emitted by objdump -d or golang.org/x/arch/x86/x86asm.GNUSyntax: a
// mnemonic followed by comma-separated operands, source before
// destination.
type x86Recognizer struct {
	isa    ISA
	spReg  string
	pcBits int
}

func newX86Recognizer(bits int) *x86Recognizer {
	r := &x86Recognizer{pcBits: bits}
	if bits == 64 {
		r.isa = X86_64
		r.spReg = "rsp"
	} else {
		r.isa = X86
		r.spReg = "esp"
	}
	return r
}

func (r *x86Recognizer) ISA() ISA { return r.isa }

var (
	x86SubImm  = regexp.MustCompile(`^\s*sub\s+\$(0x[0-9a-fA-F]+|[0-9]+),\s*%(\w+)\s*$`)
	x86AddImm  = regexp.MustCompile(`^\s*add\s+\$(0x[0-9a-fA-F]+|[0-9]+),\s*%(\w+)\s*$`)
	x86SubReg  = regexp.MustCompile(`^\s*sub\s+%(\w+),\s*%(\w+)\s*$`)
	x86Push    = regexp.MustCompile(`^\s*push[lq]?\s+`)
	x86Pop     = regexp.MustCompile(`^\s*pop[lq]?\s+`)
	x86CallAbs = regexp.MustCompile(`^\s*call[lq]?\s+(?:\*?0x)?([0-9a-fA-F]+)\s*(?:<[^>]*>)?\s*$`)
	x86CallInd = regexp.MustCompile(`^\s*call[lq]?\s+\*`)
	x86Ret     = regexp.MustCompile(`^\s*ret[lq]?\s*$`)
	x86LeaSP   = regexp.MustCompile(`^\s*lea[lq]?\s+-(0x[0-9a-fA-F]+|[0-9]+)\(%(\w+)\),\s*%(\w+)\s*$`)
)

func parseImm(s string) uint64 {
	if strings.HasPrefix(s, "0x") {
		v, _ := strconv.ParseUint(s[2:], 16, 64)
		return v
	}
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}

func (r *x86Recognizer) Classify(line string) (Effect, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Effect{Kind: Irrelevant}, nil
	}

	if m := x86SubImm.FindStringSubmatch(line); m != nil {
		if m[2] == r.spReg {
			return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
		}
		return Effect{Kind: Irrelevant}, nil
	}
	if m := x86AddImm.FindStringSubmatch(line); m != nil {
		_ = m
		return Effect{Kind: Irrelevant}, nil
	}
	if m := x86SubReg.FindStringSubmatch(line); m != nil {
		if m[2] == r.spReg {
			return Effect{Kind: StackDecreaseDynamic}, nil
		}
		return Effect{Kind: Irrelevant}, nil
	}
	if m := x86LeaSP.FindStringSubmatch(line); m != nil {
		if m[2] == r.spReg && m[3] == r.spReg {
			return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
		}
		return Effect{Kind: Irrelevant}, nil
	}
	if x86Push.MatchString(line) {
		return Effect{Kind: StackDecrease, Bytes: uint64(r.isa.PointerWidth())}, nil
	}
	if x86Pop.MatchString(line) {
		return Effect{Kind: Irrelevant}, nil
	}
	if x86CallInd.MatchString(line) {
		return Effect{Kind: IndirectCall}, nil
	}
	if m := x86CallAbs.FindStringSubmatch(line); m != nil {
		target, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return Effect{}, &ErrMalformedLine{Line: line}
		}
		return Effect{Kind: DirectCall, Target: target}, nil
	}
	if x86Ret.MatchString(trimmed) {
		return Effect{Kind: Return}, nil
	}
	if looksLikeCall(trimmed) {
		return Effect{}, &ErrMalformedLine{Line: line}
	}
	return Effect{Kind: Irrelevant}, nil
}

func looksLikeCall(trimmed string) bool {
	return strings.HasPrefix(trimmed, "call")
}
