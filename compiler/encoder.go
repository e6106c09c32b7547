package compiler

import (
	"fmt"
	"strconv"

	"github.com/reend/vm-stack/pkg/bytecode"
)

// ---------------------------------------------------------------------------
// Encoder: one token, one instruction, in source order
// ---------------------------------------------------------------------------

// CompileError reports a token that could not be encoded.
type CompileError struct {
	Pos Position
	Msg string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile error at %s: %s", e.Pos, e.Msg)
}

// operatorOps maps operator tokens to their opcodes.
var operatorOps = map[string]bytecode.Opcode{
	"+": bytecode.OpAdd,
	"-": bytecode.OpSub,
	"*": bytecode.OpMul,
	"/": bytecode.OpDiv,
}

// Encode maps the token sequence 1:1, in order, to instruction words.
// There is no operator precedence and no grouping: the source is a direct
// postfix transliteration. A trailing halt is appended when the stream does
// not already end in one, so every generated program terminates rather than
// running off the end of the code region.
func Encode(tokens []Token) ([]bytecode.Word, error) {
	words := make([]bytecode.Word, 0, len(tokens)+1)

	for _, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			v, err := strconv.ParseUint(tok.Literal, 10, 64)
			if err != nil || v > bytecode.MaxLiteral {
				return nil, &CompileError{
					Pos: tok.Pos,
					Msg: fmt.Sprintf("literal %s out of range (max %d)", tok.Literal, uint64(bytecode.MaxLiteral)),
				}
			}
			w, err := bytecode.EncodeLiteral(uint32(v))
			if err != nil {
				return nil, &CompileError{Pos: tok.Pos, Msg: err.Error()}
			}
			words = append(words, w)

		case TokenOperator:
			op, ok := operatorOps[tok.Literal]
			if !ok {
				return nil, &CompileError{Pos: tok.Pos, Msg: "unrecognized operator " + tok.Literal}
			}
			words = append(words, bytecode.EncodeOp(op))

		default:
			return nil, &CompileError{Pos: tok.Pos, Msg: fmt.Sprintf("unrecognized token %s", tok)}
		}
	}

	halt := bytecode.EncodeOp(bytecode.OpHalt)
	if len(words) == 0 || words[len(words)-1] != halt {
		words = append(words, halt)
	}
	return words, nil
}

// Compile translates source text to a serialized bytecode stream.
func Compile(source string) ([]byte, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	words, err := Encode(tokens)
	if err != nil {
		return nil, err
	}
	return bytecode.Serialize(words), nil
}
