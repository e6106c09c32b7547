// Package bytecode defines the 32-bit tagged instruction format shared by
// the translator and the interpreter, and the stack machine that executes it.
//
// Each instruction is one word. The top two bits select the interpretation:
//
//	00  non-negative integer literal (payload is the value, 0 <= v < 2^30)
//	01  primitive operation (halt, add, sub, mul, div)
//	10  negative integer literal - reserved, never produced
//	11  invalid - always fails decoding
//
// A serialized program is a flat sequence of little-endian 4-byte words with
// no header, magic number or version field.
//
// The Machine holds a single memory region shared by code and the operand
// stack. Code is loaded at Origin; the stack grows downward from Origin
// toward address 0. Execution is single-threaded and fully synchronous, and
// every run owns its Machine exclusively.
package bytecode
