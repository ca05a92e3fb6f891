package shell

import (
	"fmt"
	"io"
)

// Renderer receives the low-level drawing instructions produced while
// editing. The shell never emits escape codes itself; a Renderer decides how
// each instruction reaches the screen.
//
// The default implementation writes ANSI escape sequences. Supply your own
// with WithRenderer to draw somewhere else or to record instructions in tests.
type Renderer interface {
	ClearLine() error                  // Erase the current line and return to column 0
	WritePrompt(prompt string) error   // Write the prompt at the cursor
	WriteText(text string) error       // Write edited line content at the cursor
	WriteMessage(message string) error // Write a whole output line followed by a line break
	MoveLeft(n int) error              // Move the cursor n columns left
	MoveRight(n int) error             // Move the cursor n columns right
	NewLine() error                    // Move to the start of the next line
}

// renderer is the ANSI implementation of Renderer.
//
// A nil colorScheme disables colors entirely, which is what WithNoColor and
// non-terminal output select.
type renderer struct {
	output      io.Writer    // Target output writer (typically stdout or colorable wrapper)
	colorScheme *ColorScheme // Color configuration, nil for plain output
}

// newRenderer creates a new renderer with the given output and color scheme.
func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

func (r *renderer) ClearLine() error {
	_, err := fmt.Fprint(r.output, "\r\x1b[K")
	return err
}

func (r *renderer) WritePrompt(prompt string) error {
	if prompt == "" {
		return nil
	}
	if r.colorScheme == nil {
		return r.write(prompt)
	}
	return r.writeColored(r.colorScheme.Prompt, prompt)
}

func (r *renderer) WriteText(text string) error {
	if text == "" {
		return nil
	}
	if r.colorScheme == nil {
		return r.write(text)
	}
	return r.writeColored(r.colorScheme.Input, text)
}

func (r *renderer) WriteMessage(message string) error {
	if r.colorScheme == nil {
		if err := r.write(message); err != nil {
			return err
		}
	} else if err := r.writeColored(r.colorScheme.Message, message); err != nil {
		return err
	}
	return r.NewLine()
}

func (r *renderer) MoveLeft(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.output, "\x1b[%dD", n)
	return err
}

func (r *renderer) MoveRight(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.output, "\x1b[%dC", n)
	return err
}

// NewLine writes CRLF so the cursor lands in column 0 in raw and cooked mode alike.
func (r *renderer) NewLine() error {
	return r.write("\r\n")
}

func (r *renderer) write(s string) error {
	_, err := fmt.Fprint(r.output, s)
	return err
}

func (r *renderer) writeColored(c Color, s string) error {
	if _, err := fmt.Fprint(r.output, c.ToANSI()); err != nil {
		return err
	}
	if _, err := fmt.Fprint(r.output, s); err != nil {
		return err
	}
	if _, err := fmt.Fprint(r.output, Reset()); err != nil {
		return err
	}
	return nil
}
