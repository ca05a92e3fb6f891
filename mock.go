package shell

import "io"

// mockTerminal implements terminalInterface for testing and development.
//
// It replays a pre-configured byte sequence and records raw mode transitions,
// which lets tests drive Run without a real terminal. Once the input is
// exhausted ReadByte returns io.EOF.
type mockTerminal struct {
	input    []byte // Pre-configured input sequence for testing
	inputPos int    // Current position in the input sequence
	rawMode  bool   // Track raw mode state for test verification
	rawCount int    // Number of SetRaw calls
	closed   bool
}

func newMockTerminal(input string) *mockTerminal {
	return &mockTerminal{
		input: []byte(input),
	}
}

func (m *mockTerminal) SetRaw() error {
	m.rawMode = true
	m.rawCount++
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) ReadByte() (byte, error) {
	if m.inputPos >= len(m.input) {
		return 0, io.EOF
	}
	b := m.input[m.inputPos]
	m.inputPos++
	return b, nil
}

func (m *mockTerminal) Close() error {
	m.closed = true
	return nil
}
