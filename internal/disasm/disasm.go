// Package disasm turns the raw bytes of an ELF .text section into the
// per-function textual disassembly streams the recognizer layer expects,
// using golang.org/x/arch's instruction decoders instead of shelling out
// to an external disassembler. Every decoded instruction is rendered
// through the same GNU/AT&T-style syntax objdump uses, so the recognizer
// regular expressions see exactly the dialect they were written against
// whether the bytes came from a real binary or a hand-written test
// fixture.
package disasm

import (
	"fmt"
	"regexp"

	"github.com/haldorsen/stackbound/internal/arch"
	"github.com/haldorsen/stackbound/internal/elfinfo"
	"github.com/haldorsen/stackbound/internal/frame"
)

// pcRelativeOperand matches the "."-relative branch operand armasm and
// arm64asm render (e.g. ".+0x28"): neither package's GNUSyntax takes a pc
// argument the way x86asm's does, so branch targets come out relative to
// the instruction instead of as an absolute address.
var pcRelativeOperand = regexp.MustCompile(`\.[+-]0x[0-9a-fA-F]+`)

// substitutePCRelative replaces a "."-relative branch operand in text with
// the absolute address it resolves to, so the recognizer layer sees the
// same hex-address dialect regardless of architecture.
func substitutePCRelative(text string, target uint64) string {
	return pcRelativeOperand.ReplaceAllString(text, fmt.Sprintf("%x", target))
}

// funcRange is one function's byte span within .text.
type funcRange struct {
	name  string
	start uint64
	end   uint64
}

// partition splits a .text section into per-function byte ranges using a
// sorted symbol table: each function runs from its own entry point to the
// next function's entry point, or to the end of .text for the last one.
func partition(symbols *elfinfo.SymbolTable, textAddr uint64, textLen int) []funcRange {
	funcs := symbols.Functions()
	textEnd := textAddr + uint64(textLen)

	ranges := make([]funcRange, 0, len(funcs))
	for i, f := range funcs {
		if f.Addr < textAddr || f.Addr >= textEnd {
			continue
		}
		end := textEnd
		if i+1 < len(funcs) && funcs[i+1].Addr < textEnd {
			end = funcs[i+1].Addr
		}
		ranges = append(ranges, funcRange{name: f.Name, start: f.Addr, end: end})
	}
	return ranges
}

// decoder is the narrow contract each architecture's x/arch package
// satisfies: decode one instruction starting at code[0], report how many
// bytes it consumed, and render it as a GNU-syntax text line.
type decoder interface {
	decodeOne(code []byte, pc uint64) (text string, length int, err error)
}

func newDecoder(isa arch.ISA) (decoder, error) {
	switch isa {
	case arch.X86:
		return x86Decoder{bits: 32}, nil
	case arch.X86_64:
		return x86Decoder{bits: 64}, nil
	case arch.ARM:
		return armDecoder{}, nil
	case arch.AArch64:
		return arm64Decoder{}, nil
	default:
		return nil, &arch.ErrUnsupportedISA{Tag: isa.String()}
	}
}

// Disassemble decodes every function symbol's byte range within text (as
// split by partition) and returns one
// frame.Section per function, each holding its instructions as GNU-syntax
// text lines in program order. A function whose bytes fail to decode
// partway through keeps whatever instructions were decoded before the
// failure; decoding resumes at the next function.
func Disassemble(isa arch.ISA, text []byte, textAddr uint64, symbols *elfinfo.SymbolTable) ([]frame.Section, error) {
	dec, err := newDecoder(isa)
	if err != nil {
		return nil, err
	}

	ranges := partition(symbols, textAddr, len(text))
	sections := make([]frame.Section, 0, len(ranges))

	for _, r := range ranges {
		startOff := r.start - textAddr
		endOff := r.end - textAddr
		if endOff > uint64(len(text)) {
			endOff = uint64(len(text))
		}
		code := text[startOff:endOff]

		var lines []string
		pc := r.start
		for len(code) > 0 {
			line, n, err := dec.decodeOne(code, pc)
			if err != nil || n == 0 {
				break
			}
			lines = append(lines, line)
			code = code[n:]
			pc += uint64(n)
		}

		sections = append(sections, frame.Section{
			Address: r.start,
			Name:    r.name,
			Object:  ".text",
			Lines:   lines,
		})
	}

	return sections, nil
}

func unresolvedSymbol(uint64) (string, uint64) { return "", 0 }
