package arch

import (
	"regexp"
	"strconv"
	"strings"
)

// aarch64Recognizer understands AArch64 disassembly lines. bl/blr write the
// link register and never push; a function only debits its own stack for
// the return address if it spills x30 itself, which appears as a stp or
// str targeting [sp, #-N]!.
type aarch64Recognizer struct{}

func newAArch64Recognizer() *aarch64Recognizer { return &aarch64Recognizer{} }

func (r *aarch64Recognizer) ISA() ISA { return AArch64 }

var (
	aa64SubImm = regexp.MustCompile(`^\s*sub\s+sp,\s*sp,\s*#(0x[0-9a-fA-F]+|[0-9]+)\s*$`)
	aa64SubReg = regexp.MustCompile(`^\s*sub\s+sp,\s*sp,\s*x\d+\s*$`)
	aa64Stp    = regexp.MustCompile(`^\s*stp\s+\w+,\s*\w+,\s*\[sp,\s*#-(0x[0-9a-fA-F]+|[0-9]+)\]!\s*$`)
	aa64Str    = regexp.MustCompile(`^\s*str\s+\w+,\s*\[sp,\s*#-(0x[0-9a-fA-F]+|[0-9]+)\]!\s*$`)
	aa64Bl     = regexp.MustCompile(`^\s*bl\s+([0-9a-fA-F]+)\s*(?:<[^>]*>)?\s*$`)
	aa64Blr    = regexp.MustCompile(`^\s*blr\s+x\d+\s*$`)
	aa64Ret    = regexp.MustCompile(`^\s*ret\s*(x30)?\s*$`)
)

func (r *aarch64Recognizer) Classify(line string) (Effect, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Effect{Kind: Irrelevant}, nil
	}
	if m := aa64SubImm.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
	}
	if aa64SubReg.MatchString(line) {
		return Effect{Kind: StackDecreaseDynamic}, nil
	}
	if m := aa64Stp.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
	}
	if m := aa64Str.FindStringSubmatch(line); m != nil {
		return Effect{Kind: StackDecrease, Bytes: parseImm(m[1])}, nil
	}
	if aa64Blr.MatchString(line) {
		return Effect{Kind: IndirectCall}, nil
	}
	if m := aa64Bl.FindStringSubmatch(line); m != nil {
		target, err := strconv.ParseUint(m[1], 16, 64)
		if err != nil {
			return Effect{}, &ErrMalformedLine{Line: line}
		}
		return Effect{Kind: DirectCall, Target: target}, nil
	}
	if aa64Ret.MatchString(trimmed) {
		return Effect{Kind: Return}, nil
	}
	if strings.HasPrefix(trimmed, "bl") {
		return Effect{}, &ErrMalformedLine{Line: line}
	}
	return Effect{Kind: Irrelevant}, nil
}
