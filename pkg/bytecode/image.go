package bytecode

import (
	"encoding/binary"
	"fmt"
)

// WordSize is the number of bytes per serialized instruction word.
const WordSize = 4

// The bytecode file format is a flat sequence of little-endian 32-bit words,
// one word per instruction. There is deliberately no header, magic number or
// version field; the format is not extensible without breaking compatibility.
// Serialize and Words must agree on the byte order.

// FormatError reports a malformed bytecode stream. It is returned before any
// Machine is constructed.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "bad bytecode: " + e.Reason
}

// Serialize encodes an instruction sequence to its byte representation.
func Serialize(words []Word) []byte {
	buf := make([]byte, 0, len(words)*WordSize)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(w))
	}
	return buf
}

// Words decodes a byte stream back into instruction words.
func Words(data []byte) ([]Word, error) {
	if len(data)%WordSize != 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("length %d is not a multiple of %d", len(data), WordSize)}
	}
	words := make([]Word, len(data)/WordSize)
	for i := range words {
		words[i] = Word(binary.LittleEndian.Uint32(data[i*WordSize:]))
	}
	return words, nil
}

// Load deserializes a bytecode stream into a fresh Machine with the default
// memory size, ready to run.
func Load(data []byte) (*Machine, error) {
	return LoadWithMemory(data, DefaultMemoryWords)
}

// LoadWithMemory deserializes a bytecode stream into a fresh Machine with the
// given memory size in words. The program is placed at Origin; PC and SP are
// initialized to Origin and the machine is left in the Running state.
func LoadWithMemory(data []byte, memoryWords int) (*Machine, error) {
	words, err := Words(data)
	if err != nil {
		return nil, err
	}
	if memoryWords <= Origin {
		return nil, fmt.Errorf("memory size %d words leaves no code region (origin is %d)", memoryWords, Origin)
	}
	if Origin+len(words) > memoryWords {
		return nil, &FormatError{Reason: fmt.Sprintf("program of %d words does not fit code region of %d words", len(words), memoryWords-Origin)}
	}

	m := NewMachine(memoryWords)
	copy(m.mem[Origin:], words)
	return m, nil
}
