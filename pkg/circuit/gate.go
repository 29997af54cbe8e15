package circuit

import "fmt"

// GateType is the logic function a Gate computes from its fan-in.
type GateType int

const (
	INPUT GateType = iota
	BUFF
	NOT
	AND
	NAND
	OR
	NOR
	XOR
	XNOR
)

func (t GateType) String() string {
	switch t {
	case INPUT:
		return "INPUT"
	case BUFF:
		return "BUFF"
	case NOT:
		return "NOT"
	case AND:
		return "AND"
	case NAND:
		return "NAND"
	case OR:
		return "OR"
	case NOR:
		return "NOR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	default:
		return "UNKNOWN"
	}
}

// ControllingValue returns the gate's controlling value, or X for gate
// types that have none (NOT, BUFF, XOR, XNOR, INPUT).
func (t GateType) ControllingValue() Value {
	switch t {
	case AND, NAND:
		return Zero
	case OR, NOR:
		return One
	default:
		return X
	}
}

// NonControllingValue is the complement of ControllingValue for AND/NAND/
// OR/NOR and Zero for XOR/XNOR (X for the rest); unique D-drive forces
// side inputs to it so a fault effect can pass the gate (§4.3 step 4).
func (t GateType) NonControllingValue() Value {
	switch t {
	case AND, NAND:
		return One
	case OR, NOR:
		return Zero
	case XOR, XNOR:
		return Zero
	default:
		return X
	}
}

// Gate is simultaneously a named line and the logic that drives it: a
// single node carries both the wire's current value and its driver's
// type and fan-in, matching the flat gate-graph used by the ISCAS/bench
// representation this package consumes.
type Gate struct {
	Name    string
	Type    GateType
	FanIn   []string // ordered fan-in gate names; empty for INPUT
	FanOut  []string // gate names reading this gate's value
	Value   Value
	Visited bool // scratch flag used only by the fault collapser
}

// NewGate creates a gate with no connections and value X.
func NewGate(name string, t GateType) *Gate {
	return &Gate{Name: name, Type: t, Value: X}
}

func (g *Gate) String() string {
	return fmt.Sprintf("%s(%s)=%s", g.Name, g.Type, g.Value)
}

// IsStem reports whether this gate's line fans out to more than one
// reader, i.e. whether its outgoing edges are distinguishable branches.
func (g *Gate) IsStem() bool {
	return len(g.FanOut) > 1
}

// EvaluateType computes a gate type's equation over a slice of fan-in
// values, independent of any particular Gate instance. The implication
// engine uses this to probe what a gate type's output would be for a
// hypothetical or partial fan-in (e.g. "all non-controlling").
func EvaluateType(t GateType, fanin []Value) Value {
	return evaluate(t, fanin)
}

// evaluate computes the gate's equation over a slice of fan-in values.
// Used both for forward simulation of this gate and, by the implication
// engine, to re-evaluate a sibling gate from its own fan-in state.
func evaluate(t GateType, fanin []Value) Value {
	switch t {
	case INPUT:
		return X // an INPUT's value comes only from explicit assignment
	case BUFF:
		if len(fanin) != 1 {
			return X
		}
		return fanin[0]
	case NOT:
		if len(fanin) != 1 {
			return X
		}
		return Invert(fanin[0])
	case AND:
		return Op(OpAND, fanin...)
	case NAND:
		return Invert(Op(OpAND, fanin...))
	case OR:
		return Op(OpOR, fanin...)
	case NOR:
		return Invert(Op(OpOR, fanin...))
	case XOR:
		return Op(OpXOR, fanin...)
	case XNOR:
		return Invert(Op(OpXOR, fanin...))
	default:
		panic(fmt.Sprintf("circuit: unknown gate type %d", int(t)))
	}
}
