package algorithm

import "github.com/fyerfyer/rothforest/pkg/circuit"

// JFrontier returns every gate that is not an INPUT, has a definite
// value, and whose current fan-in values still evaluate to X (§4.4) —
// i.e. its output is not yet justified by its inputs.
func JFrontier(c *circuit.Circuit) []*circuit.Gate {
	var out []*circuit.Gate
	for _, name := range c.SortedGateNames() {
		g, _ := c.Gate(name)
		if g.Type == circuit.INPUT || !g.Value.IsDefinite() {
			continue
		}
		if c.Evaluate(g) == circuit.X {
			out = append(out, g)
		}
	}
	return out
}

// DFrontier returns every gate whose value is X and at least one of
// whose fan-ins is D or D' (§4.4).
func DFrontier(c *circuit.Circuit) []*circuit.Gate {
	var out []*circuit.Gate
	for _, name := range c.SortedGateNames() {
		g, _ := c.Gate(name)
		if g.Value != circuit.X {
			continue
		}
		for _, v := range c.FanInValues(g) {
			if v.IsFaulty() {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// XPath reports every D-frontier gate from which a path exists, through
// gates with at least one other X fan-in besides the one on the path (or
// through a NOT, which always
// propagates), to a primary output. Per §9's resolution of the source's
// ambiguity, this emits ALL such D-frontier gates, not just the first.
func XPath(c *circuit.Circuit) []*circuit.Gate {
	var out []*circuit.Gate
	for _, g := range DFrontier(c) {
		if hasXPath(c, g, make(map[string]bool)) {
			out = append(out, g)
		}
	}
	return out
}

// hasXPath does a DFS from g looking for a primary output reachable
// through fan-out gates that can still propagate a fault effect: a NOT
// gate always can; any other gate can if at least one of its OTHER
// fan-ins is still X (leaving room for the effect to dominate once that
// input settles).
func hasXPath(c *circuit.Circuit, g *circuit.Gate, visited map[string]bool) bool {
	if visited[g.Name] {
		return false
	}
	visited[g.Name] = true

	if c.IsPrimaryOutput(g.Name) {
		return true
	}

	for _, outName := range g.FanOut {
		out, ok := c.Gate(outName)
		if !ok {
			continue
		}
		if out.Type == circuit.NOT || faninHasOtherX(c, out, g.Name) {
			if hasXPath(c, out, visited) {
				return true
			}
		}
	}
	return false
}

func faninHasOtherX(c *circuit.Circuit, g *circuit.Gate, from string) bool {
	for i, name := range g.FanIn {
		if name == from {
			continue
		}
		if c.FanInValues(g)[i] == circuit.X {
			return true
		}
	}
	return false
}
