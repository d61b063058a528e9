package analyzer

import (
	"testing"

	"github.com/haldorsen/stackbound/internal/arch"
	"github.com/haldorsen/stackbound/internal/frame"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	in := Input{
		ISA: arch.X86_64,
		Sections: []frame.Section{
			{Address: 0x1000, Name: "F", Lines: []string{
				"  sub    $0x20,%rsp",
				"  call   2000 <G>",
				"  ret",
			}},
			{Address: 0x2000, Name: "G", Lines: []string{
				"  sub    $0x10,%rsp",
				"  ret",
			}},
		},
	}
	res, err := Analyze(in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	byName := map[string]FunctionResult{}
	for _, f := range res.Functions() {
		byName[f.Name] = f
	}
	if byName["G"].TotalStack != 16 {
		t.Errorf("G.TotalStack = %d, want 16", byName["G"].TotalStack)
	}
	if byName["F"].TotalStack != 56 {
		t.Errorf("F.TotalStack = %d, want 56", byName["F"].TotalStack)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestAnalyzeUnsupportedISA(t *testing.T) {
	_, err := Analyze(Input{ISA: arch.Unknown})
	if err == nil {
		t.Fatalf("expected an error for an unsupported architecture")
	}
}
