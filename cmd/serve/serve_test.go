package serve_test

import (
	"testing"

	"finadvisor/cmd/serve"

	"github.com/stretchr/testify/assert"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.Contains(t, serve.Cmd.Short, "web dashboard")
	assert.NotNil(t, serve.Cmd.RunE)
	assert.NotNil(t, serve.Cmd.Flags().Lookup("addr"))
}
