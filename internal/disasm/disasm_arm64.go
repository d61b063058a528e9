package disasm

import "golang.org/x/arch/arm64/arm64asm"

// arm64Decoder decodes AArch64 machine code via arm64asm.
type arm64Decoder struct{}

func (arm64Decoder) decodeOne(code []byte, pc uint64) (string, int, error) {
	inst, err := arm64asm.Decode(code)
	if err != nil {
		return "", 0, err
	}
	text := arm64asm.GNUSyntax(inst)
	for _, a := range inst.Args {
		if rel, ok := a.(arm64asm.PCRel); ok {
			text = substitutePCRelative(text, uint64(int64(pc)+4+int64(rel)))
			break
		}
	}
	return "\t" + text, inst.Len, nil
}
