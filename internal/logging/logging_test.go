package logging_test

import (
	"errors"
	"testing"

	"finadvisor/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	m := logging.NewMockLogger()

	m.Info("hello", logging.Field{Key: "k", Value: 1})
	m.Warn("careful")

	require.Len(t, m.Entries, 2)
	assert.Equal(t, "info", m.Entries[0].Level)
	assert.Equal(t, "hello", m.Entries[0].Message)
	assert.Equal(t, "k", m.Entries[0].Fields[0].Key)
	assert.True(t, m.HasMessage("careful"))
	assert.False(t, m.HasMessage("missing"))
}

func TestMockLogger_DerivedLoggersRecordIntoRoot(t *testing.T) {
	m := logging.NewMockLogger()
	err := errors.New("boom")

	m.WithField("file", "a.csv").WithError(err).Warn("failed")

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "warn", m.Entries[0].Level)
	assert.Equal(t, err, m.Entries[0].Err)
	require.NotEmpty(t, m.Entries[0].Fields)
	assert.Equal(t, "file", m.Entries[0].Fields[0].Key)
}

func TestNewLogrusAdapter(t *testing.T) {
	logger := logging.NewLogrusAdapter("debug", "json")
	require.NotNil(t, logger)

	// Exercising the chain must not panic.
	logger.WithField("a", 1).WithFields(logging.Field{Key: "b", Value: 2}).Debug("chained")
	logger.WithError(errors.New("x")).Warn("warned")
}
