package bytecode

import "fmt"

// Opcode selects a primitive operation. It is carried in the payload of a
// word whose tag is TagOp.
type Opcode uint32

const (
	OpHalt Opcode = 0 // Stop execution; TOS is the program result
	OpAdd  Opcode = 1 // Pop two, push second + top
	OpSub  Opcode = 2 // Pop two, push second - top
	OpMul  Opcode = 3 // Pop two, push second * top
	OpDiv  Opcode = 4 // Pop two, push second / top (integer); faults when top is zero
)

// OpcodeInfo provides metadata about each opcode for tracing and validation.
type OpcodeInfo struct {
	Name      string // Mnemonic, as it appears in trace and disassembly output
	StackPop  int    // How many values popped from the stack
	StackPush int    // How many values pushed to the stack
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpHalt: {"halt", 0, 0},
	OpAdd:  {"add", 2, 1},
	OpSub:  {"sub", 2, 1},
	OpMul:  {"mul", 2, 1},
	OpDiv:  {"div", 2, 1},
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with an "unknown" name if the opcode is not defined.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("unknown(%d)", uint32(op))}
}

// String returns the mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Valid reports whether op is a defined opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return len(opcodeInfoTable)
}
