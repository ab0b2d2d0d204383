package root_test

import (
	"testing"

	"finadvisor/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "finadvisor", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "bank statement")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
}

func TestInit_RegistersRulesFlag(t *testing.T) {
	root.Init()

	flag := root.Cmd.PersistentFlags().Lookup("rules")
	assert.NotNil(t, flag)
}
