package acir

// GateType enumerates the opcode kinds a compiled circuit can contain.
// The set is closed: the solver dispatches exhaustively over it, and kinds
// it has no competence for are surfaced upward, never dropped.
type GateType = int

const (
	_ GateType = iota
	Arithmetic
	Directive
	Range
	AND
	XOR
)

// DirectiveType enumerates non-arithmetic hint opcodes.
type DirectiveType = int

const (
	_ DirectiveType = iota
	// DirectiveInvert asserts Result = 1/X when X != 0, else Result = 0.
	DirectiveInvert
)

// Gate is one entry of the circuit's instruction list. The Type tag decides
// which fields are meaningful.
type Gate struct {
	Type GateType

	// Arithmetic
	Expr Expression

	// Directive
	Directive DirectiveType

	// Directive / Range / AND / XOR operands
	X, Y, Result Witness
	NumBits      int
}

func NewArithmeticGate(e Expression) Gate {
	return Gate{Type: Arithmetic, Expr: e}
}

func NewInvertDirective(x, result Witness) Gate {
	return Gate{Type: Directive, Directive: DirectiveInvert, X: x, Result: result}
}

func NewRangeGate(x Witness, numBits int) Gate {
	return Gate{Type: Range, X: x, NumBits: numBits}
}

func NewANDGate(x, y, result Witness, numBits int) Gate {
	return Gate{Type: AND, X: x, Y: y, Result: result, NumBits: numBits}
}

func NewXORGate(x, y, result Witness, numBits int) Gate {
	return Gate{Type: XOR, X: x, Y: y, Result: result, NumBits: numBits}
}

// Name reports the opcode name, used when a gate is handed off as
// unsupported.
func (g *Gate) Name() string {
	switch g.Type {
	case Arithmetic:
		return "arithmetic"
	case Directive:
		switch g.Directive {
		case DirectiveInvert:
			return "directive:invert"
		}
		return "directive"
	case Range:
		return "range"
	case AND:
		return "and"
	case XOR:
		return "xor"
	}
	return "unknown"
}
