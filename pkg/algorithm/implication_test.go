package algorithm_test

import (
	"testing"

	"github.com/fyerfyer/rothforest/pkg/algorithm"
	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAND2Circuit wires a two-input AND gate G fed by primary inputs A, B.
func buildAND2Circuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.NewCircuit("and2")

	a := circuit.NewGate("A", circuit.INPUT)
	b := circuit.NewGate("B", circuit.INPUT)
	g := circuit.NewGate("G", circuit.AND)
	g.FanIn = []string{"A", "B"}
	a.FanOut = []string{"G"}
	b.FanOut = []string{"G"}

	c.AddGate(a)
	c.AddGate(b)
	c.AddGate(g)
	c.MarkOutput("G")
	return c
}

func TestImplyAndCheckForwardPropagation(t *testing.T) {
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("A", circuit.One, algorithm.Both))
	require.True(t, e.ImplyAndCheck("B", circuit.One, algorithm.Both))

	g, _ := c.Gate("G")
	assert.Equal(t, circuit.One, g.Value)
}

func TestImplyAndCheckBackwardJustifiesControllingValue(t *testing.T) {
	// G=AND(A,B) forced to 0 with B already at 1 (non-controlling): A must
	// be forced to 0, the gate's controlling value.
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("B", circuit.One, algorithm.Both))
	require.True(t, e.ImplyAndCheck("G", circuit.Zero, algorithm.Both))

	a, _ := c.Gate("A")
	assert.Equal(t, circuit.Zero, a.Value)
}

func TestImplyAndCheckBackwardJustifiesNonControllingValue(t *testing.T) {
	// G=AND(A,B) forced to 1: both fan-ins must be forced non-controlling (1).
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("G", circuit.One, algorithm.Both))

	a, _ := c.Gate("A")
	b, _ := c.Gate("B")
	assert.Equal(t, circuit.One, a.Value)
	assert.Equal(t, circuit.One, b.Value)
}

func TestImplyAndCheckDetectsConflict(t *testing.T) {
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("A", circuit.Zero, algorithm.Both))

	// G=AND(A,B): A=0 already forced G=0 by forward propagation; asserting
	// G=1 now conflicts with that already-assigned value.
	ok := e.ImplyAndCheck("G", circuit.One, algorithm.Both)
	assert.False(t, ok)
}

func TestImplyAndCheckIdempotentReassign(t *testing.T) {
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("A", circuit.One, algorithm.Both))
	assert.True(t, e.ImplyAndCheck("A", circuit.One, algorithm.Both))
}

func TestImplyAndCheckFaultCombine(t *testing.T) {
	// An active SA0 fault on A turns an incoming 1 into D.
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())
	e.AddFault(circuit.NewStemFault(0, "A"))

	require.True(t, e.ImplyAndCheck("A", circuit.One, algorithm.Both))

	a, _ := c.Gate("A")
	assert.Equal(t, circuit.D, a.Value)
}

func TestImplyAndCheckFaultCombineConflict(t *testing.T) {
	// An active SA0 fault combined with an incoming D' is a direct conflict.
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())
	e.AddFault(circuit.NewStemFault(0, "A"))

	a, _ := c.Gate("A")
	a.Value = circuit.X
	ok := e.ImplyAndCheck("A", circuit.Dnot, algorithm.Both)
	assert.False(t, ok)
}

func TestUniqueDDrivePropagatesNonControllingToSideInputs(t *testing.T) {
	c := circuit.NewCircuit("unique")
	a := circuit.NewGate("A", circuit.INPUT)
	b := circuit.NewGate("B", circuit.INPUT)
	g := circuit.NewGate("G", circuit.AND)
	g.FanIn = []string{"A", "B"}
	a.FanOut = []string{"G"}
	b.FanOut = []string{"G"}
	c.AddGate(a)
	c.AddGate(b)
	c.AddGate(g)
	c.MarkOutput("G")

	e := algorithm.NewEngine(c, newTestLogger())
	e.UniqueDDrive = true
	e.AddFault(circuit.NewStemFault(0, "A"))

	// A=1 combined with the active SA0 fault becomes D: G is the sole
	// D-frontier gate, so B (still X) is driven to AND's non-controlling
	// value (1).
	require.True(t, e.ImplyAndCheck("A", circuit.One, algorithm.Both))

	b2, _ := c.Gate("B")
	assert.Equal(t, circuit.One, b2.Value)
}

func TestImplyAndCheckBackwardJustifyRejectsNonControllingForcingAgainstKnownFanin(t *testing.T) {
	// G=AND(A,B), A already 0 (cv) but assigned via Backward so it is not
	// yet forward-propagated to G. Forcing G=1 (AND's non-controlling
	// output) must be rejected: a fan-in already at the controlling value
	// can never be consistent with a non-controlling output, regardless
	// of B still being X.
	c := buildAND2Circuit(t)
	e := algorithm.NewEngine(c, newTestLogger())

	require.True(t, e.ImplyAndCheck("A", circuit.Zero, algorithm.Backward))

	ok := e.ImplyAndCheck("G", circuit.One, algorithm.Backward)
	assert.False(t, ok)

	b, _ := c.Gate("B")
	assert.Equal(t, circuit.X, b.Value, "B must not be force-assigned once the gate state is already inconsistent")
}
