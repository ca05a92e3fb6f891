package shell

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// terminalInterface abstracts terminal operations for testability and cross-platform compatibility.
//
// The shell reads exactly one byte per call to ReadByte and brackets each
// read with SetRaw/Restore, so the terminal is only in raw mode while the
// shell is waiting for a key.
//
// Implementations:
//   - realTerminal: Uses go-tty and golang.org/x/term for actual terminal interaction
//   - mockTerminal: Provides deterministic behavior for testing
type terminalInterface interface {
	SetRaw() error           // Enter raw mode for immediate key processing
	Restore() error          // Restore original terminal settings
	ReadByte() (byte, error) // Read a single raw byte from input
	Close() error            // Clean up resources and prevent fd leaks
}

// realTerminal implements terminalInterface using external libraries for production use.
//
//   - Double-close protection: The 'closed' flag prevents Windows panics on double Close()
//   - Raw mode: golang.org/x/term on the TTY input descriptor, state captured fresh on every SetRaw
//   - Resource management: Properly closes TTY to prevent file descriptor leaks
type realTerminal struct {
	tty           *tty.TTY    // TTY handle from go-tty for cross-platform terminal operations
	input         io.Reader   // Raw byte source (the TTY input file)
	closed        bool        // Track if terminal is already closed to prevent double-close panic on Windows
	inputFd       int         // File descriptor for raw mode management
	originalState *term.State // Original terminal state to restore after each read
	buf           [1]byte
}

// newRealTerminal opens the controlling terminal.
func newRealTerminal() (*realTerminal, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	in := t.Input()
	return &realTerminal{
		tty:     t,
		input:   in,
		inputFd: int(in.Fd()),
	}, nil
}

func (t *realTerminal) SetRaw() error {
	if !term.IsTerminal(t.inputFd) {
		return nil
	}
	state, err := term.GetState(t.inputFd)
	if err != nil {
		return err
	}
	t.originalState = state

	_, err = term.MakeRaw(t.inputFd)
	return err
}

func (t *realTerminal) Restore() error {
	if t.originalState != nil && term.IsTerminal(t.inputFd) {
		err := term.Restore(t.inputFd, t.originalState)
		// Reset the state so that SetRaw can capture a fresh baseline next time
		t.originalState = nil
		return err
	}
	return nil
}

func (t *realTerminal) ReadByte() (byte, error) {
	for {
		n, err := t.input.Read(t.buf[:])
		if n == 1 {
			return t.buf[0], nil
		}
		if err != nil {
			return 0, err
		}
	}
}

func (t *realTerminal) Close() error {
	// Prevent double-close which causes panic on Windows
	if t.closed {
		return nil
	}
	if t.tty != nil {
		err := t.tty.Close()
		t.closed = true
		return err
	}
	return nil
}

// isTerminal reports whether f is attached to a terminal, including Cygwin/MSYS ptys.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
