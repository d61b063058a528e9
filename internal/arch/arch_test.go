package arch

import "testing"

func TestX86RecognizerSubRsp(t *testing.T) {
	r, err := Select(X86_64)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	eff, err := r.Classify("  sub    $0x20,%rsp")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != StackDecrease || eff.Bytes != 32 {
		t.Errorf("got %+v, want StackDecrease(32)", eff)
	}
}

func TestX86RecognizerCall(t *testing.T) {
	r, _ := Select(X86_64)
	eff, err := r.Classify("  call   401160 <g>")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != DirectCall || eff.Target != 0x401160 {
		t.Errorf("got %+v, want DirectCall(0x401160)", eff)
	}
}

func TestX86RecognizerIndirectCall(t *testing.T) {
	r, _ := Select(X86_64)
	eff, err := r.Classify("  call   *%rax")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != IndirectCall {
		t.Errorf("got %+v, want IndirectCall", eff)
	}
}

func TestX86RecognizerDynamicStack(t *testing.T) {
	r, _ := Select(X86_64)
	eff, err := r.Classify("  sub    %rax,%rsp")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != StackDecreaseDynamic {
		t.Errorf("got %+v, want StackDecreaseDynamic", eff)
	}
}

func TestX86RecognizerIrrelevant(t *testing.T) {
	r, _ := Select(X86_64)
	for _, line := range []string{"  mov    %rsp,%rbp", "  nop", "  leave", "  pop    %rbp"} {
		eff, err := r.Classify(line)
		if err != nil {
			t.Fatalf("Classify(%q): %v", line, err)
		}
		if eff.Kind != Irrelevant {
			t.Errorf("Classify(%q) = %+v, want Irrelevant", line, eff)
		}
	}
}

func TestAArch64DoesNotPushOnBl(t *testing.T) {
	r, err := Select(AArch64)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	eff, err := r.Classify("  bl     400540 <g>")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != DirectCall {
		t.Errorf("got %+v, want DirectCall", eff)
	}
	if AArch64.PushesReturnAddress() {
		t.Errorf("AArch64 must not push a return address on call")
	}
}

func TestAArch64PrologueSpillsLR(t *testing.T) {
	r, _ := Select(AArch64)
	eff, err := r.Classify("  stp    x29, x30, [sp, #-32]!")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != StackDecrease || eff.Bytes != 32 {
		t.Errorf("got %+v, want StackDecrease(32)", eff)
	}
}

func TestARMPushCountsRegisters(t *testing.T) {
	r, _ := Select(ARM)
	eff, err := r.Classify("  push   {r4, r5, r6, lr}")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != StackDecrease || eff.Bytes != 16 {
		t.Errorf("got %+v, want StackDecrease(16)", eff)
	}
}

func TestARMRecognizerBlxDirectCall(t *testing.T) {
	r, _ := Select(ARM)
	eff, err := r.Classify("  blx    400540 <g>")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != DirectCall || eff.Target != 0x400540 {
		t.Errorf("got %+v, want DirectCall(0x400540)", eff)
	}
}

func TestARMRecognizerBlxRegisterIsIndirectCall(t *testing.T) {
	r, _ := Select(ARM)
	eff, err := r.Classify("  blx    r3")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != IndirectCall {
		t.Errorf("got %+v, want IndirectCall", eff)
	}
}

func TestARMRecognizerBxRegisterIsIndirectCall(t *testing.T) {
	r, _ := Select(ARM)
	eff, err := r.Classify("  bx     r0")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != IndirectCall {
		t.Errorf("got %+v, want IndirectCall", eff)
	}
}

func TestARMRecognizerBxLRIsReturn(t *testing.T) {
	r, _ := Select(ARM)
	eff, err := r.Classify("  bx     lr")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if eff.Kind != Return {
		t.Errorf("got %+v, want Return", eff)
	}
}

func TestParseISA(t *testing.T) {
	cases := map[string]ISA{
		"arm": ARM, "aarch64": AArch64, "arm64": AArch64,
		"x86": X86, "i386": X86, "x86_64": X86_64, "amd64": X86_64,
	}
	for tag, want := range cases {
		got, err := ParseISA(tag)
		if err != nil {
			t.Fatalf("ParseISA(%q): %v", tag, err)
		}
		if got != want {
			t.Errorf("ParseISA(%q) = %v, want %v", tag, got, want)
		}
	}
	if _, err := ParseISA("sparc"); err == nil {
		t.Errorf("ParseISA(\"sparc\") should fail")
	}
}
