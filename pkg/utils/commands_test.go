package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fyerfyer/rothforest/pkg/circuit"
	"github.com/fyerfyer/rothforest/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCommandFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.cmd")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestParseCommandFileAllKinds(t *testing.T) {
	path := writeCommandFile(t, `
# a comment, ignored
Fault A 0
Imply A 1
Jfront
Dfront
Xpath
Display
`)
	commands, err := utils.ParseCommandFile(path)
	require.NoError(t, err)
	require.Len(t, commands, 6)

	assert.Equal(t, utils.FaultCmd, commands[0].Kind)
	assert.Equal(t, "A", commands[0].Gate)
	assert.Equal(t, circuit.Zero, commands[0].Value)

	assert.Equal(t, utils.ImplyCmd, commands[1].Kind)
	assert.Equal(t, circuit.One, commands[1].Value)

	assert.Equal(t, utils.JfrontCmd, commands[2].Kind)
	assert.Equal(t, utils.DfrontCmd, commands[3].Kind)
	assert.Equal(t, utils.XpathCmd, commands[4].Kind)
	assert.Equal(t, utils.DisplayCmd, commands[5].Kind)
}

func TestParseCommandFileRejectsBadFaultPolarity(t *testing.T) {
	path := writeCommandFile(t, "Fault A X\n")
	_, err := utils.ParseCommandFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedCommand)
}

func TestParseCommandFileRejectsUnknownVerb(t *testing.T) {
	path := writeCommandFile(t, "Bogus A 0\n")
	_, err := utils.ParseCommandFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedCommand)
}

func TestCommandKindString(t *testing.T) {
	assert.Equal(t, "Fault", utils.FaultCmd.String())
	assert.Equal(t, "Imply", utils.ImplyCmd.String())
	assert.Equal(t, "Display", utils.DisplayCmd.String())
}
