package circuit_test

import (
	"testing"

	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/stretchr/testify/assert"
)

func TestFaultStemVsBranch(t *testing.T) {
	stem := circuit.NewStemFault(0, "a")
	assert.False(t, stem.IsBranch())
	assert.Equal(t, "a/0", stem.String())

	branch := circuit.NewBranchFault(1, "a", "g1")
	assert.True(t, branch.IsBranch())
	assert.Equal(t, "a->g1/1", branch.String())
}

func TestFaultEqual(t *testing.T) {
	f1 := circuit.NewStemFault(0, "a")
	f2 := circuit.NewStemFault(0, "a")
	f3 := circuit.NewStemFault(1, "a")
	f4 := circuit.NewBranchFault(0, "a", "g1")

	assert.True(t, f1.Equal(f2))
	assert.False(t, f1.Equal(f3))
	assert.False(t, f1.Equal(f4))
}

func TestFaultClassEquivalentAndDominated(t *testing.T) {
	root := circuit.NewFaultClass(circuit.NewStemFault(0, "g"))
	assert.Equal(t, circuit.NewStemFault(0, "g"), root.Representative())

	root.AddEquivalent(circuit.NewStemFault(0, "a"))
	assert.Len(t, root.Equivalent, 2)

	child := circuit.NewFaultClass(circuit.NewStemFault(1, "b"))
	root.AddDominated(child)
	assert.Len(t, root.Dominated, 1)
	assert.Same(t, child, root.Dominated[0])
}
