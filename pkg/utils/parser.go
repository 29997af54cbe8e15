package utils

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fyerfyer/rothforest/pkg/circuit"
)

// Regular expressions for parsing BENCH format.
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	gateRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// ParseBenchFile reads a circuit description in ISCAS BENCH format and
// returns a Circuit. This is an external, shallow collaborator: it
// produces the graph model, but carries none of the fault-collapsing or
// implication logic itself.
//
// Two passes, as the format requires: the first pass discovers every
// line name (so a gate line can reference a name declared later in the
// file); the second pass builds the gates and wires fan-in/fan-out.
func ParseBenchFile(filename string) (*circuit.Circuit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCircuit, err)
	}
	defer file.Close()

	parts := strings.Split(filename, "/")
	circuitName := strings.TrimSuffix(parts[len(parts)-1], ".bench")
	c := circuit.NewCircuit(circuitName)

	declared := make(map[string]bool)
	var inputOrder []string
	outputs := make(map[string]bool)
	gateTypeOf := make(map[string]circuit.GateType)
	faninOf := make(map[string][]string)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := inputRegex.FindStringSubmatch(line); m != nil {
			declared[m[1]] = true
			gateTypeOf[m[1]] = circuit.INPUT
			inputOrder = append(inputOrder, m[1])
			continue
		}
		if m := outputRegex.FindStringSubmatch(line); m != nil {
			outputs[m[1]] = true
			continue
		}
		if m := gateRegex.FindStringSubmatch(line); m != nil {
			name := m[1]
			declared[name] = true
			gateTypeOf[name] = parseGateType(strings.ToUpper(m[2]))
			var fanin []string
			for _, in := range strings.Split(m[3], ",") {
				in = strings.TrimSpace(in)
				fanin = append(fanin, in)
				declared[in] = true
			}
			faninOf[name] = fanin
			continue
		}
		return nil, fmt.Errorf("%w: unrecognized line %q", ErrMalformedCircuit, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCircuit, err)
	}

	for name := range declared {
		if _, ok := gateTypeOf[name]; !ok {
			return nil, fmt.Errorf("%w: %q used but never driven", ErrMalformedCircuit, name)
		}
	}

	// Primary inputs are added first, in file order, so InputOrder follows
	// the file rather than map iteration order.
	for _, name := range inputOrder {
		if _, added := c.Gate(name); added || gateTypeOf[name] != circuit.INPUT {
			continue
		}
		c.AddGate(circuit.NewGate(name, circuit.INPUT))
	}
	for name := range declared {
		if _, added := c.Gate(name); added {
			continue
		}
		g := circuit.NewGate(name, gateTypeOf[name])
		g.FanIn = faninOf[name]
		c.AddGate(g)
	}
	for name, fanin := range faninOf {
		for _, in := range fanin {
			driver, _ := c.Gate(in)
			driver.FanOut = append(driver.FanOut, name)
		}
	}
	for name := range outputs {
		c.MarkOutput(name)
	}

	return c, nil
}

func parseGateType(typeString string) circuit.GateType {
	switch typeString {
	case "AND":
		return circuit.AND
	case "OR":
		return circuit.OR
	case "NOT", "INV":
		return circuit.NOT
	case "NAND":
		return circuit.NAND
	case "NOR":
		return circuit.NOR
	case "XOR":
		return circuit.XOR
	case "XNOR":
		return circuit.XNOR
	case "BUFF", "BUF":
		return circuit.BUFF
	default:
		return circuit.BUFF
	}
}

// ParseFaultString parses a fault string like "a/0" or "net34/1" into a
// circuit.Fault, resolving the stem against c.
func ParseFaultString(faultStr string, c *circuit.Circuit) (circuit.Fault, error) {
	parts := strings.Split(faultStr, "/")
	if len(parts) != 2 {
		return circuit.Fault{}, fmt.Errorf("%w: invalid fault string %q", ErrMalformedCommand, faultStr)
	}
	if _, ok := c.Gate(parts[0]); !ok {
		return circuit.Fault{}, fmt.Errorf("%w: unknown line %q", ErrMalformedCommand, parts[0])
	}
	switch parts[1] {
	case "0":
		return circuit.NewStemFault(0, parts[0]), nil
	case "1":
		return circuit.NewStemFault(1, parts[0]), nil
	default:
		return circuit.Fault{}, fmt.Errorf("%w: invalid polarity %q", ErrMalformedCommand, parts[1])
	}
}
