package circuit_test

import (
	"testing"

	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/stretchr/testify/assert"
)

func TestNewGate(t *testing.T) {
	g := circuit.NewGate("a", circuit.AND)
	assert.Equal(t, "a", g.Name)
	assert.Equal(t, circuit.AND, g.Type)
	assert.Equal(t, circuit.X, g.Value)
	assert.False(t, g.IsStem())
}

func TestIsStem(t *testing.T) {
	g := circuit.NewGate("a", circuit.INPUT)
	assert.False(t, g.IsStem())
	g.FanOut = []string{"g1"}
	assert.False(t, g.IsStem())
	g.FanOut = []string{"g1", "g2"}
	assert.True(t, g.IsStem())
}

func TestGateTypeControllingValues(t *testing.T) {
	assert.Equal(t, circuit.Zero, circuit.AND.ControllingValue())
	assert.Equal(t, circuit.Zero, circuit.NAND.ControllingValue())
	assert.Equal(t, circuit.One, circuit.OR.ControllingValue())
	assert.Equal(t, circuit.One, circuit.NOR.ControllingValue())
	assert.Equal(t, circuit.X, circuit.NOT.ControllingValue())
	assert.Equal(t, circuit.X, circuit.XOR.ControllingValue())

	assert.Equal(t, circuit.One, circuit.AND.NonControllingValue())
	assert.Equal(t, circuit.One, circuit.NAND.NonControllingValue())
	assert.Equal(t, circuit.Zero, circuit.OR.NonControllingValue())
	assert.Equal(t, circuit.Zero, circuit.NOR.NonControllingValue())
	assert.Equal(t, circuit.Zero, circuit.XOR.NonControllingValue())
}

func TestEvaluateType(t *testing.T) {
	cases := []struct {
		name  string
		gt    circuit.GateType
		fanin []circuit.Value
		want  circuit.Value
	}{
		{"buff passes through", circuit.BUFF, []circuit.Value{circuit.One}, circuit.One},
		{"not inverts", circuit.NOT, []circuit.Value{circuit.Zero}, circuit.One},
		{"and", circuit.AND, []circuit.Value{circuit.One, circuit.One}, circuit.One},
		{"nand", circuit.NAND, []circuit.Value{circuit.One, circuit.One}, circuit.Zero},
		{"or", circuit.OR, []circuit.Value{circuit.Zero, circuit.Zero}, circuit.Zero},
		{"nor", circuit.NOR, []circuit.Value{circuit.Zero, circuit.Zero}, circuit.One},
		{"xor", circuit.XOR, []circuit.Value{circuit.One, circuit.Zero}, circuit.One},
		{"xnor", circuit.XNOR, []circuit.Value{circuit.One, circuit.Zero}, circuit.Zero},
		{"input always X", circuit.INPUT, nil, circuit.X},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, circuit.EvaluateType(c.gt, c.fanin))
		})
	}
}
