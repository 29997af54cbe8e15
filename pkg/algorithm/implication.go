package algorithm

import (
	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/fyerfyer/rothforest/pkg/utils"
)

// Direction selects which phases of ImplyAndCheck a call performs: BOTH
// runs backward justification and forward propagation/unique D-drive;
// FORWARD skips backward justification (used by unique D-drive's own
// recursive calls, which only push values toward the frontier); BACKWARD
// skips forward propagation and unique D-drive (used when justifying a
// fan-in or re-checking a sibling's existing value).
type Direction int

const (
	Both Direction = iota
	Forward
	Backward
)

// Engine is the implication-and-check engine of §4.3: it assigns a value
// to a gate consistent with the active fault list, then forward- and
// backward-propagates the consequences through the circuit.
type Engine struct {
	Circuit      *circuit.Circuit
	Logger       *utils.Logger
	ActiveFaults []circuit.Fault
	UniqueDDrive bool
}

// NewEngine creates an Engine over c.
func NewEngine(c *circuit.Circuit, logger *utils.Logger) *Engine {
	return &Engine{Circuit: c, Logger: logger}
}

// AddFault appends f to the active fault list (the Fault command).
func (e *Engine) AddFault(f circuit.Fault) {
	e.ActiveFaults = append(e.ActiveFaults, f)
}

func (e *Engine) activeFaultFor(location string) (circuit.Fault, bool) {
	for _, f := range e.ActiveFaults {
		if f.Stem == location {
			return f, true
		}
	}
	return circuit.Fault{}, false
}

// combineFault applies §4.3 Step 1: folding an active fault on this line
// into the incoming value. ok is false on a conflict (opposing D value).
func combineFault(f circuit.Fault, incoming circuit.Value) (effective circuit.Value, ok bool) {
	if f.Polarity == 0 {
		switch incoming {
		case circuit.One:
			return circuit.D, true
		case circuit.Zero:
			return circuit.Zero, true
		case circuit.D:
			return circuit.D, true
		case circuit.Dnot:
			return circuit.X, false
		default:
			return incoming, true
		}
	}
	switch incoming {
	case circuit.Zero:
		return circuit.Dnot, true
	case circuit.One:
		return circuit.One, true
	case circuit.Dnot:
		return circuit.Dnot, true
	case circuit.D:
		return circuit.X, false
	default:
		return incoming, true
	}
}

// ImplyAndCheck is the engine's single entry point (§4.3's contract).
// It returns false the instant any recursive step detects a conflict;
// the caller aborts the whole command sequence on false, per §7.
func (e *Engine) ImplyAndCheck(location string, value circuit.Value, direction Direction) bool {
	g, ok := e.Circuit.Gate(location)
	if !ok {
		panic("algorithm: implication on unknown gate " + location)
	}

	effective := value
	if f, found := e.activeFaultFor(location); found {
		var combinedOK bool
		effective, combinedOK = combineFault(f, value)
		if !combinedOK {
			e.Logger.Implication("conflict: active fault %s combined with incoming %s at %s", f, value, location)
			return false
		}
	}

	switch {
	case g.Value == circuit.X:
		g.Value = effective
		e.Logger.Implication("assign %s = %s", location, effective)
	case g.Value == effective:
		// idempotent: already assigned, nothing to do but re-check consequences
	default:
		e.Logger.Implication("conflict: %s already %s, implied %s", location, g.Value, effective)
		return false
	}

	if direction != Forward && g.Type != circuit.INPUT {
		if !e.backwardStep(g) {
			return false
		}
	}

	if e.UniqueDDrive && direction != Backward {
		if !e.uniqueDDrive(location) {
			return false
		}
	}

	if direction != Backward {
		if !e.forwardStep(g) {
			return false
		}
	}

	return true
}

// backwardStep runs §4.3 Step 3: backward justification of g's fan-ins,
// then re-visits each forced fan-in's other fan-outs for consistency.
func (e *Engine) backwardStep(g *circuit.Gate) bool {
	values := e.Circuit.FanInValues(g)
	forced, consistent := backwardJustify(g, values)
	if !consistent {
		e.Logger.Implication("conflict: %s inconsistent with known fan-ins", g.Name)
		return false
	}

	for _, a := range forced {
		if !e.ImplyAndCheck(a.name, a.value, Backward) {
			return false
		}

		faninGate, ok := e.Circuit.Gate(a.name)
		if !ok {
			continue
		}
		for _, sibName := range faninGate.FanOut {
			if sibName == g.Name {
				continue
			}
			sib, ok := e.Circuit.Gate(sibName)
			if !ok {
				continue
			}
			if sib.Value != circuit.X {
				if !e.ImplyAndCheck(sibName, sib.Value, Backward) {
					return false
				}
			} else {
				fresh := e.Circuit.Evaluate(sib)
				if !e.ImplyAndCheck(sibName, fresh, Both) {
					return false
				}
			}
		}
	}
	return true
}

// forwardStep runs §4.3 Step 5: evaluate each fan-out of g and imply the
// consequence.
func (e *Engine) forwardStep(g *circuit.Gate) bool {
	for _, outName := range g.FanOut {
		out, ok := e.Circuit.Gate(outName)
		if !ok {
			continue
		}
		result := e.Circuit.Evaluate(out)
		if result != circuit.X {
			if !e.ImplyAndCheck(outName, result, Both) {
				return false
			}
		} else if out.Value != circuit.X {
			if !e.ImplyAndCheck(outName, out.Value, Backward) {
				return false
			}
		}
	}
	return true
}

// uniqueDDrive runs §4.3 Step 4: when exactly one D-frontier gate exists
// and the just-assigned location sits on its fan-in, its other X fan-ins
// are forced to its non-controlling value.
func (e *Engine) uniqueDDrive(location string) bool {
	frontier := DFrontier(e.Circuit)
	if len(frontier) != 1 {
		return true
	}
	df := frontier[0]

	sitsOnFanin := false
	for _, n := range df.FanIn {
		if n == location {
			sitsOnFanin = true
			break
		}
	}
	if !sitsOnFanin {
		return true
	}

	nc := df.Type.NonControllingValue()
	for _, faninName := range df.FanIn {
		fi, ok := e.Circuit.Gate(faninName)
		if !ok || fi.Value != circuit.X {
			continue
		}
		if !e.ImplyAndCheck(faninName, nc, Forward) {
			return false
		}
	}
	return true
}

type forcedAssign struct {
	name  string
	value circuit.Value
}

func consistentWith(result, stored circuit.Value) bool {
	if result == stored {
		return true
	}
	if stored == circuit.D && result == circuit.One {
		return true
	}
	if stored == circuit.Dnot && result == circuit.Zero {
		return true
	}
	return false
}

// backwardJustify implements §4.3 Step 3's per-gate-type rules. It
// returns the fan-ins that must be forced to a definite value, and false
// if the gate's known fan-ins already contradict its stored value.
func backwardJustify(g *circuit.Gate, values []circuit.Value) (forced []forcedAssign, consistent bool) {
	switch g.Type {
	case circuit.AND, circuit.NAND, circuit.OR, circuit.NOR:
		return backwardJustifyControlled(g, values)
	case circuit.BUFF, circuit.NOT:
		return backwardJustifyDirect(g, values)
	case circuit.XOR, circuit.XNOR:
		return backwardJustifyParity(g, values)
	default:
		return nil, true
	}
}

func numUnknown(values []circuit.Value) (numX int, hasD, hasDnot bool) {
	for _, v := range values {
		switch v {
		case circuit.X:
			numX++
		case circuit.D:
			hasD = true
		case circuit.Dnot:
			hasDnot = true
		}
	}
	return
}

// backwardJustifyControlled covers AND/NAND/OR/NOR via their shared
// controlling/non-controlling input-value concept (§4.3's "controlling
// value shortcut" and "last-X opposite case").
func backwardJustifyControlled(g *circuit.Gate, values []circuit.Value) ([]forcedAssign, bool) {
	cv := g.Type.ControllingValue()
	nc := g.Type.NonControllingValue()
	ncOut := circuit.EvaluateType(g.Type, []circuit.Value{nc})
	cOut := circuit.EvaluateType(g.Type, []circuit.Value{cv})

	var forced []forcedAssign
	switch {
	case g.Value == ncOut:
		// Every already-known fan-in must already equal nc: a known
		// controlling value mixed in here would force the gate's real
		// output to cOut, contradicting the stored ncOut value.
		allKnownNC := true
		for _, v := range values {
			if v != circuit.X && v != nc {
				allKnownNC = false
				break
			}
		}
		if !allKnownNC {
			return nil, false
		}
		for i, v := range values {
			if v == circuit.X {
				forced = append(forced, forcedAssign{g.FanIn[i], nc})
			}
		}
	case g.Value == cOut:
		numX, hasD, hasDnot := numUnknown(values)
		anyControlling := false
		for _, v := range values {
			if v == cv {
				anyControlling = true
			}
		}
		if numX == 1 && !(hasD && hasDnot) && !anyControlling {
			for i, v := range values {
				if v == circuit.X {
					forced = append(forced, forcedAssign{g.FanIn[i], cv})
				}
			}
		}
	}

	numX, _, _ := numUnknown(values)
	if numX == 0 {
		result := circuit.EvaluateType(g.Type, values)
		if !consistentWith(result, g.Value) {
			return nil, false
		}
	}
	return forced, true
}

// backwardJustifyDirect covers BUFF/NOT: a single fan-in, directly
// forced to match (or invert) the output.
func backwardJustifyDirect(g *circuit.Gate, values []circuit.Value) ([]forcedAssign, bool) {
	if len(values) != 1 {
		return nil, true
	}
	if values[0] == circuit.X {
		target := g.Value
		if g.Type == circuit.NOT {
			target = circuit.Invert(target)
		}
		return []forcedAssign{{g.FanIn[0], target}}, true
	}
	result := circuit.EvaluateType(g.Type, values)
	if !consistentWith(result, g.Value) {
		return nil, false
	}
	return nil, true
}

// backwardJustifyParity covers XOR/XNOR's parity rule: with exactly one
// X fan-in and no D/D' among the rest, the X is forced so the input
// parity matches the required output.
func backwardJustifyParity(g *circuit.Gate, values []circuit.Value) ([]forcedAssign, bool) {
	numX, hasD, hasDnot := numUnknown(values)

	if numX == 1 && !hasD && !hasDnot {
		xIdx := -1
		parity := circuit.Zero
		for i, v := range values {
			if v == circuit.X {
				xIdx = i
				continue
			}
			if v == circuit.One {
				parity = circuit.Invert(parity)
			}
		}
		target := g.Value
		if g.Type == circuit.XNOR {
			target = circuit.Invert(target)
		}
		forcedVal := circuit.Zero
		if target != parity {
			forcedVal = circuit.One
		}
		return []forcedAssign{{g.FanIn[xIdx], forcedVal}}, true
	}

	if numX == 0 {
		result := circuit.EvaluateType(g.Type, values)
		if !consistentWith(result, g.Value) {
			return nil, false
		}
	}
	return nil, true
}
