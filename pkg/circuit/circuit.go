package circuit

import (
	"fmt"
	"sort"
	"strings"
)

// Circuit is a mapping from gate name to gate, plus the ordered primary
// input names and the primary-output name set (an attribute independent
// of gate type — any gate's name may appear here).
type Circuit struct {
	Name       string
	Gates      map[string]*Gate
	InputOrder []string
	Outputs    map[string]bool
}

// NewCircuit creates an empty circuit.
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:    name,
		Gates:   make(map[string]*Gate),
		Outputs: make(map[string]bool),
	}
}

// AddGate registers a gate, tracking primary-input order as a side effect.
func (c *Circuit) AddGate(g *Gate) {
	c.Gates[g.Name] = g
	if g.Type == INPUT {
		c.InputOrder = append(c.InputOrder, g.Name)
	}
}

// MarkOutput records that name is a primary output.
func (c *Circuit) MarkOutput(name string) {
	c.Outputs[name] = true
}

// Gate looks up a gate by name.
func (c *Circuit) Gate(name string) (*Gate, bool) {
	g, ok := c.Gates[name]
	return g, ok
}

// IsPrimaryOutput reports whether name is in the circuit's output set.
func (c *Circuit) IsPrimaryOutput(name string) bool {
	return c.Outputs[name]
}

// OutputNames returns the primary-output names in sorted order; the fault
// collapser seeds its work set from it.
func (c *Circuit) OutputNames() []string {
	names := make([]string, 0, len(c.Outputs))
	for name := range c.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedGateNames returns every gate name in a deterministic order, used
// wherever a traversal must not depend on Go's randomized map iteration.
func (c *Circuit) SortedGateNames() []string {
	names := make([]string, 0, len(c.Gates))
	for name := range c.Gates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResetVisited clears every gate's visited flag; the fault collapser does
// this before each run, per the model's single ownership of the flag.
func (c *Circuit) ResetVisited() {
	for _, g := range c.Gates {
		g.Visited = false
	}
}

// Reset returns every gate's value to X, for starting a fresh command
// stream on an already-parsed circuit.
func (c *Circuit) Reset() {
	for _, g := range c.Gates {
		g.Value = X
	}
}

// FanInValues gathers the current values of g's fan-in, in order.
func (c *Circuit) FanInValues(g *Gate) []Value {
	values := make([]Value, len(g.FanIn))
	for i, name := range g.FanIn {
		fi, ok := c.Gate(name)
		if !ok {
			panic(fmt.Sprintf("circuit: fan-in %q of %q not found", name, g.Name))
		}
		values[i] = fi.Value
	}
	return values
}

// Evaluate computes g's output from its fan-in's current values, without
// mutating any state. INPUT gates have no equation and always yield X
// here; their value only ever comes from explicit assignment.
func (c *Circuit) Evaluate(g *Gate) Value {
	return evaluate(g.Type, c.FanInValues(g))
}

// Dump renders the full gate-by-gate state, used by the Display command.
func (c *Circuit) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Circuit: %s\n", c.Name)
	for _, name := range c.SortedGateNames() {
		g := c.Gates[name]
		fmt.Fprintf(&b, "%-12s %-6s = %-2s  fanin=%v fanout=%v\n",
			g.Name, g.Type, g.Value, g.FanIn, g.FanOut)
	}
	return b.String()
}
