package elfinfo

import "github.com/btcsuite/goleveldb/leveldb/errors"

var (
	// ErrUnsupportedMachine is returned when an ELF file's e_machine
	// field names an architecture this tool has no recognizer for.
	ErrUnsupportedMachine = errors.New("elfinfo: unsupported machine type")
	// ErrNoTextSection is returned when a binary has no .text section to
	// disassemble.
	ErrNoTextSection = errors.New("elfinfo: no .text section")
	// ErrNoSymbols is returned when a binary's symbol table is empty or
	// missing, leaving the call-graph builder with nothing to resolve
	// call targets against.
	ErrNoSymbols = errors.New("elfinfo: no function symbols")
)
