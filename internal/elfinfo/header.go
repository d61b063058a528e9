// Package elfinfo reads just enough of an ELF executable or shared
// object to drive the analyzer: its target architecture, its .text
// section, and its function symbol table.
package elfinfo

import (
	"debug/elf"
	"fmt"

	"github.com/haldorsen/stackbound/internal/arch"
)

// Header summarizes the parts of an ELF file header the analyzer and its
// CLI care about.
type Header struct {
	Class    elf.Class
	Data     elf.Data
	Type     elf.Type
	Machine  elf.Machine
	Entry    uint64
	Sections int
}

// String renders the header the way the rest of this tool's reports do:
// one field per line, values aligned with spaces.
func (h Header) String() string {
	return fmt.Sprintf(`Class:    %v
Data:     %v
Type:     %v
Machine:  %v
Entry:    0x%x
Sections: %v`,
		h.Class, h.Data, h.Type, h.Machine, h.Entry, h.Sections)
}

// ISA maps the ELF machine field onto the architecture tag the analyzer
// dispatches on.
func (h Header) ISA() (arch.ISA, error) {
	switch h.Machine {
	case elf.EM_386:
		return arch.X86, nil
	case elf.EM_X86_64:
		return arch.X86_64, nil
	case elf.EM_ARM:
		return arch.ARM, nil
	case elf.EM_AARCH64:
		return arch.AArch64, nil
	default:
		return arch.Unknown, ErrUnsupportedMachine
	}
}

// Binary is an opened ELF file plus the pieces of it the rest of the
// pipeline needs.
type Binary struct {
	file *elf.File
}

// Open reads the ELF header and section table from path. The symbol
// table is read later, by Symbols.
func Open(path string) (*Binary, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	return &Binary{file: f}, nil
}

// Close releases the underlying file.
func (b *Binary) Close() error { return b.file.Close() }

// Header returns the ELF file header summary.
func (b *Binary) Header() Header {
	return Header{
		Class:    b.file.Class,
		Data:     b.file.Data,
		Type:     b.file.Type,
		Machine:  b.file.Machine,
		Entry:    b.file.Entry,
		Sections: len(b.file.Sections),
	}
}

// ISA reports the architecture this binary was built for.
func (b *Binary) ISA() (arch.ISA, error) {
	return b.Header().ISA()
}

// Text returns the raw bytes of the .text section and the address it
// loads at.
func (b *Binary) Text() ([]byte, uint64, error) {
	sec := b.file.Section(".text")
	if sec == nil {
		return nil, 0, ErrNoTextSection
	}
	data, err := sec.Data()
	if err != nil {
		return nil, 0, err
	}
	return data, sec.Addr, nil
}

// Symbols returns every STT_FUNC symbol in the binary's symbol table,
// sorted by address.
func (b *Binary) Symbols() (*SymbolTable, error) {
	syms, err := b.file.Symbols()
	if err != nil {
		// a stripped binary or one with only a dynamic symbol table
		// still has something worth trying.
		syms, err = b.file.DynamicSymbols()
		if err != nil {
			return nil, ErrNoSymbols
		}
	}

	var addrs, sizes []uint64
	var names []string
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC {
			continue
		}
		if s.Name == "" {
			continue
		}
		addrs = append(addrs, s.Value)
		sizes = append(sizes, s.Size)
		names = append(names, s.Name)
	}
	if len(addrs) == 0 {
		return nil, ErrNoSymbols
	}
	return NewSymbolTable(addrs, sizes, names), nil
}
