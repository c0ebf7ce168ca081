package ast

// Precedence orders operator binding strength, lowest first.
type Precedence int

const (
	PrecLowest  Precedence = iota
	PrecOr                 // OR, || (MySQL)
	PrecXor                // XOR
	PrecAnd                // AND, &&
	PrecNot                // prefix NOT
	PrecCompare            // = <=> <> < <= > >= IS LIKE REGEXP IN BETWEEN
	PrecBitOr              // |
	PrecBitAnd             // &
	PrecShift              // << >>
	PrecSum                // + - and || under PIPES_AS_CONCAT
	PrecProduct            // * / DIV MOD %
	PrecBitXor             // ^
	PrecUnary              // - + ~ !
	PrecPostfix            // call and member access
)

// BinaryOp identifies an infix operator.
type BinaryOp int

const (
	OpOr BinaryOp = iota
	OpXor
	OpAnd
	OpEq
	OpNullSafeEq
	OpNotEq
	OpLt
	OpLe
	OpGt
	OpGe
	OpBitOr
	OpBitAnd
	OpShl
	OpShr
	OpAdd
	OpSub
	OpConcat
	OpMul
	OpDiv
	OpIntDiv
	OpMod
	OpBitXor
)

var binaryOps = [...]struct {
	text string
	prec Precedence
}{
	OpOr:         {"OR", PrecOr},
	OpXor:        {"XOR", PrecXor},
	OpAnd:        {"AND", PrecAnd},
	OpEq:         {"=", PrecCompare},
	OpNullSafeEq: {"<=>", PrecCompare},
	OpNotEq:      {"<>", PrecCompare},
	OpLt:         {"<", PrecCompare},
	OpLe:         {"<=", PrecCompare},
	OpGt:         {">", PrecCompare},
	OpGe:         {">=", PrecCompare},
	OpBitOr:      {"|", PrecBitOr},
	OpBitAnd:     {"&", PrecBitAnd},
	OpShl:        {"<<", PrecShift},
	OpShr:        {">>", PrecShift},
	OpAdd:        {"+", PrecSum},
	OpSub:        {"-", PrecSum},
	OpConcat:     {"||", PrecSum},
	OpMul:        {"*", PrecProduct},
	OpDiv:        {"/", PrecProduct},
	OpIntDiv:     {"DIV", PrecProduct},
	OpMod:        {"%", PrecProduct},
	OpBitXor:     {"^", PrecBitXor},
}

// String returns the canonical SQL spelling of the operator.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOps) {
		return binaryOps[op].text
	}
	return "?"
}

// Precedence returns the binding strength of the operator.
func (op BinaryOp) Precedence() Precedence {
	if int(op) < len(binaryOps) {
		return binaryOps[op].prec
	}
	return PrecLowest
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -
	OpPlus                  // +
	OpBitNot                // ~
	OpNot                   // NOT
	OpBang                  // !
	OpBinary                // BINARY
)

// String returns the canonical SQL spelling of the operator.
func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPlus:
		return "+"
	case OpBitNot:
		return "~"
	case OpNot:
		return "NOT"
	case OpBang:
		return "!"
	case OpBinary:
		return "BINARY"
	default:
		return "?"
	}
}

// Precedence returns the binding strength of the operator. The keyword NOT
// binds looser than comparisons; the symbolic operators bind tightest.
func (op UnaryOp) Precedence() Precedence {
	if op == OpNot {
		return PrecNot
	}
	return PrecUnary
}
