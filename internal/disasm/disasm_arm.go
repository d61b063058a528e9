package disasm

import "golang.org/x/arch/arm/armasm"

// armDecoder decodes 32-bit ARM machine code via armasm. This tool only
// analyzes ARM (A32) code, not Thumb; a binary built for Thumb needs its
// own mode detection that isn't wired in here.
type armDecoder struct{}

func (armDecoder) decodeOne(code []byte, pc uint64) (string, int, error) {
	inst, err := armasm.Decode(code, armasm.ModeARM)
	if err != nil {
		return "", 0, err
	}
	text := armasm.GNUSyntax(inst)
	for _, a := range inst.Args {
		if rel, ok := a.(armasm.PCRel); ok {
			text = substitutePCRelative(text, uint64(int64(pc)+4+int64(rel)))
			break
		}
	}
	return "\t" + text, inst.Len, nil
}
