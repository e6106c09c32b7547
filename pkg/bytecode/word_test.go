package bytecode

import (
	"errors"
	"testing"
)

func TestEncodeLiteralRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 42, 999, 1 << 29, MaxLiteral}

	for _, v := range values {
		w, err := EncodeLiteral(v)
		if err != nil {
			t.Fatalf("EncodeLiteral(%d) failed: %v", v, err)
		}
		if w.Tag() != TagLiteral {
			t.Errorf("EncodeLiteral(%d): tag = %02b, want %02b", v, w.Tag(), TagLiteral)
		}
		if w.Payload() != v {
			t.Errorf("EncodeLiteral(%d): payload = %d, want %d", v, w.Payload(), v)
		}

		instr, err := Decode(w)
		if err != nil {
			t.Fatalf("Decode(EncodeLiteral(%d)) failed: %v", v, err)
		}
		push, ok := instr.(Push)
		if !ok {
			t.Fatalf("Decode(EncodeLiteral(%d)) = %T, want Push", v, instr)
		}
		if push.Value != v {
			t.Errorf("Decode(EncodeLiteral(%d)).Value = %d, want %d", v, push.Value, v)
		}
	}
}

func TestEncodeLiteralOutOfRange(t *testing.T) {
	_, err := EncodeLiteral(MaxLiteral + 1)
	if err == nil {
		t.Fatal("EncodeLiteral(MaxLiteral+1) succeeded, want error")
	}
	var rangeErr *LiteralRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("error type = %T, want *LiteralRangeError", err)
	}
	if rangeErr.Value != MaxLiteral+1 {
		t.Errorf("rangeErr.Value = %d, want %d", rangeErr.Value, uint64(MaxLiteral)+1)
	}
}

func TestEncodeOpRoundTrip(t *testing.T) {
	ops := []Opcode{OpHalt, OpAdd, OpSub, OpMul, OpDiv}

	for _, op := range ops {
		w := EncodeOp(op)
		if w.Tag() != TagOp {
			t.Errorf("EncodeOp(%s): tag = %02b, want %02b", op, w.Tag(), TagOp)
		}
		if w.Payload() != uint32(op) {
			t.Errorf("EncodeOp(%s): payload = %d, want %d", op, w.Payload(), uint32(op))
		}

		instr, err := Decode(w)
		if err != nil {
			t.Fatalf("Decode(EncodeOp(%s)) failed: %v", op, err)
		}
		prim, ok := instr.(Prim)
		if !ok {
			t.Fatalf("Decode(EncodeOp(%s)) = %T, want Prim", op, instr)
		}
		if prim.Op != op {
			t.Errorf("Decode(EncodeOp(%s)).Op = %s, want %s", op, prim.Op, op)
		}
	}
}

func TestDecodeInvalidTag(t *testing.T) {
	// Any word with tag bits 11 must fail decoding.
	words := []Word{
		Word(TagInvalid) << payloadBits,
		Word(TagInvalid)<<payloadBits | 1,
		Word(TagInvalid)<<payloadBits | PayloadMask,
	}

	for _, w := range words {
		if _, err := Decode(w); !errors.Is(err, ErrIllegalInstruction) {
			t.Errorf("Decode(%08x) error = %v, want ErrIllegalInstruction", uint32(w), err)
		}
	}
}

func TestDecodeReservedNegativeTag(t *testing.T) {
	// The negative-literal tag is defined in the layout but never encoded;
	// decoding it fails rather than guessing a sign policy.
	w := Word(TagNegative)<<payloadBits | 5
	if _, err := Decode(w); !errors.Is(err, ErrIllegalInstruction) {
		t.Errorf("Decode(negative tag) error = %v, want ErrIllegalInstruction", err)
	}
}

func TestDecodeUndefinedOpcode(t *testing.T) {
	w := Word(TagOp)<<payloadBits | 9
	if _, err := Decode(w); !errors.Is(err, ErrIllegalInstruction) {
		t.Errorf("Decode(op payload 9) error = %v, want ErrIllegalInstruction", err)
	}
}

func TestOpcodeMetadata(t *testing.T) {
	if OpcodeCount() != 5 {
		t.Errorf("OpcodeCount() = %d, want 5", OpcodeCount())
	}

	names := map[Opcode]string{
		OpHalt: "halt",
		OpAdd:  "add",
		OpSub:  "sub",
		OpMul:  "mul",
		OpDiv:  "div",
	}
	for op, want := range names {
		if op.String() != want {
			t.Errorf("%v.String() = %q, want %q", uint32(op), op.String(), want)
		}
		if !op.Valid() {
			t.Errorf("Opcode(%d).Valid() = false, want true", uint32(op))
		}
	}

	if Opcode(5).Valid() {
		t.Error("Opcode(5).Valid() = true, want false")
	}
	info := GetOpcodeInfo(OpAdd)
	if info.StackPop != 2 || info.StackPush != 1 {
		t.Errorf("GetOpcodeInfo(OpAdd) = %+v, want pop 2 push 1", info)
	}
}
