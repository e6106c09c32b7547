package bytecode

import (
	"errors"
	"fmt"
)

// Word is the fixed 32-bit storage unit shared by code and stack values.
// The top two bits are the tag; the low 30 bits are the payload.
type Word uint32

// Tag selects the interpretation of a word's payload.
type Tag uint32

const (
	TagLiteral  Tag = 0b00 // Payload is a non-negative integer literal
	TagOp       Tag = 0b01 // Payload is an Opcode
	TagNegative Tag = 0b10 // Negative literal, reserved: defined in the layout but never encoded
	TagInvalid  Tag = 0b11 // Always fails decoding
)

const (
	payloadBits = 30
	PayloadMask = 1<<payloadBits - 1

	// MaxLiteral is the largest value representable as a literal payload.
	MaxLiteral = PayloadMask
)

// Tag returns the top two bits of the word.
func (w Word) Tag() Tag {
	return Tag(w >> payloadBits)
}

// Payload returns the low 30 bits of the word.
func (w Word) Payload() uint32 {
	return uint32(w) & PayloadMask
}

// ErrIllegalInstruction is returned by Decode for words that have no defined
// interpretation: the invalid tag, the reserved negative-literal tag, and
// operation words whose payload is not a defined opcode.
var ErrIllegalInstruction = errors.New("illegal instruction")

// LiteralRangeError is returned by EncodeLiteral for values that do not fit
// in a 30-bit payload.
type LiteralRangeError struct {
	Value uint64
}

func (e *LiteralRangeError) Error() string {
	return fmt.Sprintf("literal %d out of range (max %d)", e.Value, uint64(MaxLiteral))
}

// EncodeLiteral packs a non-negative integer literal into a word.
func EncodeLiteral(v uint32) (Word, error) {
	if v > MaxLiteral {
		return 0, &LiteralRangeError{Value: uint64(v)}
	}
	return Word(v), nil
}

// EncodeOp packs a primitive operation into a word.
func EncodeOp(op Opcode) Word {
	return Word(TagOp)<<payloadBits | Word(uint32(op)&PayloadMask)
}

// Instr is a decoded instruction, produced by Decode once per fetched word.
type Instr interface {
	isInstr()
}

// Push pushes a non-negative integer literal onto the operand stack.
type Push struct {
	Value uint32
}

// Prim executes a primitive operation.
type Prim struct {
	Op Opcode
}

func (Push) isInstr() {}
func (Prim) isInstr() {}

// Decode unpacks a word into an instruction. It is the sole entry point for
// interpreting word contents.
func Decode(w Word) (Instr, error) {
	switch w.Tag() {
	case TagLiteral:
		return Push{Value: w.Payload()}, nil
	case TagOp:
		op := Opcode(w.Payload())
		if !op.Valid() {
			return nil, fmt.Errorf("undefined opcode %d: %w", uint32(op), ErrIllegalInstruction)
		}
		return Prim{Op: op}, nil
	case TagNegative:
		return nil, fmt.Errorf("negative-literal tag is reserved: %w", ErrIllegalInstruction)
	default:
		return nil, ErrIllegalInstruction
	}
}
