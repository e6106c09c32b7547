package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing for an instruction sequence.
// Addresses are shown as they will appear in memory, starting at Origin.
func Disassemble(words []Word) string {
	var sb strings.Builder

	for i, w := range words {
		addr := Origin + i
		sb.WriteString(fmt.Sprintf("%4d  %08x  ", addr, uint32(w)))

		instr, err := Decode(w)
		if err != nil {
			sb.WriteString(fmt.Sprintf("??? (%v)\n", err))
			continue
		}

		switch in := instr.(type) {
		case Push:
			sb.WriteString(fmt.Sprintf("push %d\n", in.Value))
		case Prim:
			sb.WriteString(in.Op.String() + "\n")
		}
	}

	return sb.String()
}

// DisassembleBytes decodes a serialized bytecode stream and disassembles it.
func DisassembleBytes(data []byte) (string, error) {
	words, err := Words(data)
	if err != nil {
		return "", err
	}
	return Disassemble(words), nil
}
