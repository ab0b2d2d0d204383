package subscriptions_test

import (
	"testing"

	"finadvisor/cmd/subscriptions"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "subscriptions <statement-file>", subscriptions.Cmd.Use)
	assert.Contains(t, subscriptions.Cmd.Short, "recurring")
	assert.NotNil(t, subscriptions.Cmd.RunE)
}
