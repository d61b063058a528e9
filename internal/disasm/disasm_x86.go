package disasm

import "golang.org/x/arch/x86/x86asm"

// x86Decoder decodes x86 and x86_64 machine code via x86asm and renders
// it the way objdump -d does, which is the dialect internal/arch's x86
// recognizer parses.
type x86Decoder struct {
	bits int
}

func (d x86Decoder) decodeOne(code []byte, pc uint64) (string, int, error) {
	inst, err := x86asm.Decode(code, d.bits)
	if err != nil {
		return "", 0, err
	}
	text := x86asm.GNUSyntax(inst, pc, unresolvedSymbol)
	return "\t" + text, inst.Len, nil
}
