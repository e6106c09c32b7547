package bytecode

import (
	"fmt"
	"io"
)

const (
	// Origin is the address of the first code word. The operand stack
	// occupies addresses strictly below Origin, growing toward 0; the two
	// regions never overlap.
	Origin = 100

	// DefaultMemoryWords is the memory size used by Load.
	DefaultMemoryWords = 1024
)

// RunState is the machine's run-state flag.
type RunState int

const (
	StateRunning RunState = iota
	StateHalted
	StateFaulted
)

// String returns a human-readable name for the run state.
func (s RunState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateFaulted:
		return "faulted"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// FaultKind identifies an unrecoverable runtime condition.
type FaultKind int

const (
	FaultStackUnderflow FaultKind = iota
	FaultStackOverflow
	FaultDivisionByZero
	FaultIllegalInstruction
)

// String returns a human-readable name for the fault kind.
func (k FaultKind) String() string {
	switch k {
	case FaultStackUnderflow:
		return "stack underflow"
	case FaultStackOverflow:
		return "stack overflow"
	case FaultDivisionByZero:
		return "division by zero"
	case FaultIllegalInstruction:
		return "illegal instruction"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Fault records why and where execution faulted. PC is the address of the
// faulting instruction.
type Fault struct {
	Kind FaultKind
	PC   int
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s at pc=%d", f.Kind, f.PC)
}

// Machine bundles the unified memory region and registers for one execution
// run. Each run owns its Machine exclusively; there is no shared state and
// no locking.
type Machine struct {
	mem   []Word
	pc    int // index of the next instruction to fetch
	sp    int // index one past the current top of stack
	state RunState
	fault *Fault

	// Trace receives one line per executed instruction plus the resulting
	// top-of-stack value. Nil disables tracing.
	Trace io.Writer
}

// NewMachine creates a machine with the given memory size in words and
// registers initialized to the code origin.
func NewMachine(memoryWords int) *Machine {
	return &Machine{
		mem:   make([]Word, memoryWords),
		pc:    Origin,
		sp:    Origin,
		state: StateRunning,
	}
}

// PC returns the index of the next instruction to fetch. After a fault it is
// left at the faulting instruction.
func (m *Machine) PC() int {
	return m.pc
}

// SP returns the index one past the current top of stack.
func (m *Machine) SP() int {
	return m.sp
}

// State returns the machine's run state.
func (m *Machine) State() RunState {
	return m.state
}

// Fault returns the recorded fault, or nil if the machine has not faulted.
func (m *Machine) Fault() *Fault {
	return m.fault
}

// StackDepth returns the number of values on the operand stack.
func (m *Machine) StackDepth() int {
	return Origin - m.sp
}

// Result returns the value at the top of the stack. The second return is
// false when the stack is empty, which is a valid halted state with no
// result.
func (m *Machine) Result() (uint32, bool) {
	if m.sp >= Origin {
		return 0, false
	}
	return uint32(m.mem[m.sp]), true
}

// Run steps the machine until it halts or faults. A fault is returned as an
// error; it is deterministic and reproducible from the same bytecode.
func (m *Machine) Run() error {
	for m.state == StateRunning {
		m.Step()
	}
	if m.state == StateFaulted {
		return m.fault
	}
	return nil
}

// Step performs one fetch-decode-execute cycle. It does nothing unless the
// machine is Running.
func (m *Machine) Step() {
	if m.state != StateRunning {
		return
	}

	at := m.pc
	if at < 0 || at >= len(m.mem) {
		m.faultAt(FaultIllegalInstruction, at)
		return
	}
	w := m.mem[at]
	m.pc++

	instr, err := Decode(w)
	if err != nil {
		m.faultAt(FaultIllegalInstruction, at)
		return
	}

	switch in := instr.(type) {
	case Push:
		if m.sp-1 < 0 || m.sp-1 >= Origin {
			m.faultAt(FaultStackOverflow, at)
			return
		}
		m.sp--
		m.mem[m.sp] = Word(in.Value)
		m.tracef("push %d", in.Value)
		m.traceTOS()

	case Prim:
		if in.Op == OpHalt {
			m.state = StateHalted
			m.tracef("halt")
			m.traceTOS()
			return
		}
		m.binaryOp(in.Op, at)
	}
}

// binaryOp executes one of add/sub/mul/div. Operand order: top was pushed
// most recently, so sub computes second - top and div computes second / top.
func (m *Machine) binaryOp(op Opcode, at int) {
	if m.StackDepth() < 2 {
		m.faultAt(FaultStackUnderflow, at)
		return
	}

	top := uint32(m.mem[m.sp])
	second := uint32(m.mem[m.sp+1])

	var result uint32
	switch op {
	case OpAdd:
		result = second + top
	case OpSub:
		result = second - top
	case OpMul:
		result = second * top
	case OpDiv:
		if top == 0 {
			m.faultAt(FaultDivisionByZero, at)
			return
		}
		result = second / top
	}

	// Pop both operands, push the result.
	m.sp++
	m.mem[m.sp] = Word(result)
	m.tracef("%s %d %d", op, second, top)
	m.traceTOS()
}

// faultAt transitions to the Faulted state, leaving PC at the faulting
// instruction.
func (m *Machine) faultAt(kind FaultKind, at int) {
	m.state = StateFaulted
	m.fault = &Fault{Kind: kind, PC: at}
	m.pc = at
}

func (m *Machine) tracef(format string, args ...any) {
	if m.Trace != nil {
		fmt.Fprintf(m.Trace, format+"\n", args...)
	}
}

func (m *Machine) traceTOS() {
	if m.Trace == nil {
		return
	}
	if v, ok := m.Result(); ok {
		fmt.Fprintf(m.Trace, "tos: %d\n", v)
	} else {
		fmt.Fprintf(m.Trace, "tos: <empty>\n")
	}
}
