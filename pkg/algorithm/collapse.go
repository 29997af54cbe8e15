package algorithm

import (
	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/fyerfyer/rothforest/pkg/utils"
)

// Collapser builds the equivalence/dominance forest of single stuck-at
// faults over a combinational circuit by walking backward from every
// primary output.
type Collapser struct {
	Circuit *circuit.Circuit
	Logger  *utils.Logger

	// Roots accumulates every top-level FaultClass produced: the two
	// classes seeded per visited gate, plus any classes an XOR/XNOR
	// fan-in promotes out of its parent's ownership.
	Roots []*circuit.FaultClass
}

// NewCollapser creates a Collapser for c.
func NewCollapser(c *circuit.Circuit, logger *utils.Logger) *Collapser {
	return &Collapser{Circuit: c, Logger: logger}
}

// Collapse runs the full traversal, seeded with every primary output,
// and returns the accumulated top-level fault classes (§4.2's forest).
// It resets every gate's visited flag first, per §5.
func (col *Collapser) Collapse() []*circuit.FaultClass {
	col.Circuit.ResetVisited()
	col.Roots = nil

	work := append([]string(nil), col.Circuit.OutputNames()...)
	for len(work) > 0 {
		name := work[0]
		work = work[1:]

		g, ok := col.Circuit.Gate(name)
		if !ok || g.Visited {
			continue
		}
		g.Visited = true
		col.Logger.Collapse("visiting gate %s (%s)", g.Name, g.Type)

		sa0 := circuit.NewFaultClass(circuit.NewStemFault(0, name))
		sa1 := circuit.NewFaultClass(circuit.NewStemFault(1, name))
		col.Roots = append(col.Roots, sa0, sa1)

		work = append(work, col.collapseFault(circuit.NewStemFault(0, name), sa0)...)
		work = append(work, col.collapseFault(circuit.NewStemFault(1, name), sa1)...)
	}
	return col.Roots
}

// collapseFault applies the rules of §4.2 to fault f, owned by owner,
// and returns the gate names that must be enqueued next.
func (col *Collapser) collapseFault(f circuit.Fault, owner *circuit.FaultClass) []string {
	if f.IsBranch() {
		return []string{f.Stem}
	}

	g, ok := col.Circuit.Gate(f.Stem)
	if !ok || g.Type == circuit.INPUT {
		return nil
	}

	var next []string
	for _, faninName := range g.FanIn {
		fanin, ok := col.Circuit.Gate(faninName)
		if !ok {
			continue
		}

		if g.Type == circuit.XOR || g.Type == circuit.XNOR {
			// Both SA0 and SA1 on the branch case become fresh top-level
			// classes, but collapseFault runs once for f.Polarity==0 and
			// once for f.Polarity==1 (Collapse's two seeded calls): only
			// the SA0 call performs the promotion, so the pair isn't
			// added twice. A fan-in that is not a stem gets no promotion:
			// its stem faults become roots when its own visit seeds them.
			// The fan-in gate is returned for its own traversal on both
			// calls.
			if f.Polarity == 0 && fanin.IsStem() {
				sa0 := col.faninFault(fanin, g.Name, 0)
				sa1 := col.faninFault(fanin, g.Name, 1)
				col.Roots = append(col.Roots,
					circuit.NewFaultClass(sa0),
					circuit.NewFaultClass(sa1))
			}
			next = append(next, faninName)
			continue
		}

		faninPolarity, equivalent := collapseRule(g.Type, f.Polarity)
		faninFault := col.faninFault(fanin, g.Name, faninPolarity)
		next = append(next, col.applyRule(faninFault, equivalent, owner)...)
	}
	return next
}

// faninFault builds the candidate fault on a fan-in line of gate g: a
// branch fault from fanin to g if fanin is a stem (drives >1 fan-out),
// otherwise a stem fault on fanin itself.
func (col *Collapser) faninFault(fanin *circuit.Gate, into string, polarity int) circuit.Fault {
	if fanin.IsStem() {
		return circuit.NewBranchFault(polarity, fanin.Name, into)
	}
	return circuit.NewStemFault(polarity, fanin.Name)
}

// applyRule carries out "equivalent" (add to owner, recurse with owner)
// or "dominated" (new child class, recurse with it as owner).
func (col *Collapser) applyRule(f circuit.Fault, equivalent bool, owner *circuit.FaultClass) []string {
	if equivalent {
		owner.AddEquivalent(f)
		return col.collapseFault(f, owner)
	}
	child := circuit.NewFaultClass(f)
	owner.AddDominated(child)
	return col.collapseFault(f, child)
}

// collapseRule looks up the §4.2 table for gate type t and the polarity
// of the gate's own fault being collapsed (outputPolarity), returning
// which polarity fan-in fault it produces and whether that fan-in fault
// is equivalent (true) or dominated (false).
func collapseRule(t circuit.GateType, outputPolarity int) (faninPolarity int, equivalent bool) {
	switch t {
	case circuit.AND:
		if outputPolarity == 0 {
			return 0, true
		}
		return 1, false
	case circuit.NAND:
		if outputPolarity == 0 {
			return 1, false
		}
		return 0, true
	case circuit.OR:
		if outputPolarity == 0 {
			return 0, false
		}
		return 1, true
	case circuit.NOR:
		if outputPolarity == 0 {
			return 1, true
		}
		return 0, false
	case circuit.NOT:
		if outputPolarity == 0 {
			return 1, true
		}
		return 0, true
	case circuit.BUFF:
		return outputPolarity, true
	default:
		return outputPolarity, true
	}
}

// Order linearizes the forest for the .order report: a pre-order walk
// over each root, appending the class itself before its dominated
// children (§4.2).
func Order(roots []*circuit.FaultClass) []*circuit.FaultClass {
	var out []*circuit.FaultClass
	var walk func(*circuit.FaultClass)
	walk = func(fc *circuit.FaultClass) {
		out = append(out, fc)
		for _, child := range fc.Dominated {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}

// NotDominating collects every class with no dominated children, for
// the .not_dominating report.
func NotDominating(roots []*circuit.FaultClass) []*circuit.FaultClass {
	var out []*circuit.FaultClass
	var walk func(*circuit.FaultClass)
	walk = func(fc *circuit.FaultClass) {
		if len(fc.Dominated) == 0 {
			out = append(out, fc)
			return
		}
		for _, child := range fc.Dominated {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}

// NotDominatingCheckpoint is the checkpoint variant: it additionally
// truncates the walk at any class whose representative is a branch
// fault or whose stem is a primary input, collecting that class in
// place of descending further.
func NotDominatingCheckpoint(roots []*circuit.FaultClass, c *circuit.Circuit) []*circuit.FaultClass {
	var out []*circuit.FaultClass
	isCheckpoint := func(f circuit.Fault) bool {
		if f.IsBranch() {
			return true
		}
		g, ok := c.Gate(f.Stem)
		return ok && g.Type == circuit.INPUT
	}
	var walk func(*circuit.FaultClass)
	walk = func(fc *circuit.FaultClass) {
		rep := fc.Representative()
		if isCheckpoint(rep) {
			out = append(out, fc)
			return
		}
		if len(fc.Dominated) == 0 {
			out = append(out, fc)
			return
		}
		for _, child := range fc.Dominated {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}
