package logging

import "sync"

// MockLogger is a Logger implementation that records log entries in memory.
// It is intended for use in tests. Loggers derived via WithField/WithError
// record into the same root MockLogger.
type MockLogger struct {
	mu      sync.Mutex
	Entries []MockEntry
}

// MockEntry is a single recorded log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, MockEntry{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Err:     err,
	})
}

// Debug records a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields, nil) }

// Info records an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("info", msg, fields, nil) }

// Warn records a warn-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("warn", msg, fields, nil) }

// Error records an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields, nil) }

// Fatal records a fatal-level entry without exiting, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields, nil) }

// WithError returns a derived logger that attaches err to its entries.
func (m *MockLogger) WithError(err error) Logger {
	return &mockChild{root: m.root(), err: err}
}

// WithField returns a derived logger that attaches a single field to its entries.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &mockChild{root: m.root(), fields: []Field{{Key: key, Value: value}}}
}

// WithFields returns a derived logger that attaches fields to its entries.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	return &mockChild{root: m.root(), fields: fields}
}

func (m *MockLogger) root() *MockLogger { return m }

// HasMessage reports whether any recorded entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// mockChild carries accumulated context and records into the root logger.
type mockChild struct {
	root   *MockLogger
	fields []Field
	err    error
}

func (c *mockChild) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, c.fields...), fields...)
	c.root.record(level, msg, all, c.err)
}

func (c *mockChild) Debug(msg string, fields ...Field) { c.record("debug", msg, fields) }
func (c *mockChild) Info(msg string, fields ...Field)  { c.record("info", msg, fields) }
func (c *mockChild) Warn(msg string, fields ...Field)  { c.record("warn", msg, fields) }
func (c *mockChild) Error(msg string, fields ...Field) { c.record("error", msg, fields) }
func (c *mockChild) Fatal(msg string, fields ...Field) { c.record("fatal", msg, fields) }

func (c *mockChild) WithError(err error) Logger {
	return &mockChild{root: c.root, fields: c.fields, err: err}
}

func (c *mockChild) WithField(key string, value interface{}) Logger {
	return c.WithFields(Field{Key: key, Value: value})
}

func (c *mockChild) WithFields(fields ...Field) Logger {
	return &mockChild{root: c.root, fields: append(append([]Field{}, c.fields...), fields...), err: c.err}
}
