package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
)

// Common errors
var (
	// ErrInterrupted is returned when the user presses Ctrl+C or Ctrl+D
	ErrInterrupted = errors.New("interrupted")
	// ErrEOF is returned by Run when the input device reaches end of file
	ErrEOF = errors.New("EOF")
)

// LineHandler turns a completed line into zero or more output lines.
//
// The returned sequence may be produced lazily; the shell pulls every value
// and writes it as its own line when output is enabled. A nil sequence means
// no output.
type LineHandler interface {
	ProcessLine(line string) iter.Seq[string]
}

// LineHandlerFunc adapts an ordinary function to LineHandler.
type LineHandlerFunc func(line string) iter.Seq[string]

// ProcessLine calls f(line).
func (f LineHandlerFunc) ProcessLine(line string) iter.Seq[string] {
	return f(line)
}

// Config holds the configuration for a shell.
type Config struct {
	Prompt        string         // Prompt written before every line (e.g., "es > ")
	Welcome       string         // Written once before the first prompt (empty = none)
	Farewell      string         // Written when the session ends (empty = none)
	Echo          bool           // Echo edits back to the terminal
	Output        bool           // Write the line handler's output
	ColorScheme   *ColorScheme   // Color scheme (nil for default)
	NoColor       bool           // Disable colors
	HistoryConfig *HistoryConfig // History persistence (nil for memory only)
	Renderer      Renderer       // Render sink (nil for ANSI output to Writer)
	Writer        io.Writer      // Output for the default renderer (nil for stdout)
}

// Option represents a configuration option for the shell
type Option func(*Config)

// WithEcho enables or disables echoing of edits
func WithEcho(echo bool) Option {
	return func(c *Config) {
		c.Echo = echo
	}
}

// WithOutput enables or disables writing line handler output
func WithOutput(output bool) Option {
	return func(c *Config) {
		c.Output = output
	}
}

// WithWelcome sets the message written before the first prompt
func WithWelcome(welcome string) Option {
	return func(c *Config) {
		c.Welcome = welcome
	}
}

// WithFarewell sets the message written when the session ends
func WithFarewell(farewell string) Option {
	return func(c *Config) {
		c.Farewell = farewell
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// WithNoColor disables colored output
func WithNoColor() Option {
	return func(c *Config) {
		c.NoColor = true
	}
}

// WithHistory configures history persistence.
//
// Example:
//
//	shell.New("$ ", handler, shell.WithHistory(&shell.HistoryConfig{
//		Enabled:    true,
//		File:       "~/.myapp_history",
//		MaxBackups: 5,
//	}))
func WithHistory(historyConfig *HistoryConfig) Option {
	return func(c *Config) {
		c.HistoryConfig = historyConfig
	}
}

// WithFileHistory is a convenience function for history with file persistence.
//
// Example:
//
//	shell.New("$ ", handler, shell.WithFileHistory("~/.myapp_history"))
func WithFileHistory(file string) Option {
	return func(c *Config) {
		c.HistoryConfig = &HistoryConfig{
			Enabled:     true,
			File:        file,
			MaxFileSize: 1024 * 1024, // 1MB default
			MaxBackups:  3,           // Default
		}
	}
}

// WithRenderer replaces the ANSI renderer
func WithRenderer(r Renderer) Option {
	return func(c *Config) {
		c.Renderer = r
	}
}

// WithWriter sets where the default renderer writes
func WithWriter(w io.Writer) Option {
	return func(c *Config) {
		c.Writer = w
	}
}

// Shell is an interactive line-editing session.
//
// Bytes fed to Consume are classified into editing commands that update the
// line buffer and history. On Enter the finished line goes to the LineHandler.
// A Shell is not safe for concurrent use.
type Shell struct {
	config     Config
	handler    LineHandler
	renderer   Renderer
	terminal   terminalInterface
	store      *historyStore
	classifier classifier
	line       lineBuffer
	history    *History
	commands   []Command // scratch space reused by Consume
}

// New creates a shell with the given prompt, line handler and options.
//
// Echo and output are on unless turned off with WithEcho(false) or
// WithOutput(false). When history persistence is configured the history file
// is read here. The terminal is not touched until Run.
//
// Example:
//
//	echo := shell.LineHandlerFunc(func(line string) iter.Seq[string] {
//		return slices.Values([]string{line})
//	})
//	s, err := shell.New("es > ", echo, shell.WithFarewell("bye"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.Run(); err != nil && !errors.Is(err, shell.ErrInterrupted) {
//		log.Fatal(err)
//	}
func New(prompt string, handler LineHandler, options ...Option) (*Shell, error) {
	config := Config{
		Prompt: prompt,
		Echo:   true,
		Output: true,
	}

	for _, option := range options {
		option(&config)
	}

	return newFromConfig(config, handler)
}

func newFromConfig(config Config, handler LineHandler) (*Shell, error) {
	if config.Writer == nil {
		config.Writer = os.Stdout
		if runtime.GOOS == "windows" {
			// Use colorable for Windows ANSI color support
			config.Writer = colorable.NewColorableStdout()
		}
		if !isTerminal(os.Stdout) {
			config.NoColor = true
		}
	}
	if config.ColorScheme == nil {
		config.ColorScheme = ThemeDefault
	}

	r := config.Renderer
	if r == nil {
		colorScheme := config.ColorScheme
		if config.NoColor {
			colorScheme = nil
		}
		r = newRenderer(config.Writer, colorScheme)
	}

	store := newHistoryStore(config.HistoryConfig)
	entries, err := store.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return &Shell{
		config:   config,
		handler:  handler,
		renderer: r,
		store:    store,
		history:  NewHistory(entries...),
	}, nil
}

// Consume feeds one raw input byte to the shell.
//
// The byte is fully resolved before Consume returns: it either extends a
// pending escape sequence, or completes one or more commands which update
// the line, the history and the screen. Ctrl+C and Ctrl+D make Consume
// return ErrInterrupted; any other error comes from the Renderer.
func (s *Shell) Consume(b byte) error {
	s.commands = s.classifier.feed(s.commands[:0], b)
	for _, cmd := range s.commands {
		if err := s.apply(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) apply(cmd Command) error {
	switch cmd.Kind {
	case CommandInterrupt:
		return ErrInterrupted
	case CommandEnter:
		return s.enter()
	case CommandInsert:
		return s.insert(cmd.Char)
	case CommandBackspace:
		if s.line.backspace() {
			return s.redraw()
		}
	case CommandDelete:
		if s.line.deleteForward() {
			return s.redraw()
		}
	case CommandLeft:
		if s.line.moveLeft() {
			if n := s.line.columnsAt(s.line.cursor); n > 0 {
				return s.echo(func() error {
					return s.renderer.MoveLeft(n)
				})
			}
		}
	case CommandRight:
		if s.line.moveRight() {
			if n := s.line.columnsAt(s.line.cursor - 1); n > 0 {
				return s.echo(func() error {
					return s.renderer.MoveRight(n)
				})
			}
		}
	case CommandUp:
		if entry, ok := s.history.Up(); ok {
			return s.recall(entry)
		}
	case CommandDown:
		if entry, ok := s.history.Down(); ok {
			return s.recall(entry)
		}
	}
	return nil
}

func (s *Shell) insert(c byte) error {
	appending := s.line.atEnd()
	s.line.insert(c)
	if appending {
		return s.echo(func() error {
			return s.renderer.WriteText(string([]byte{c}))
		})
	}
	return s.redraw()
}

// enter moves the current line into history and hands it to the line handler.
func (s *Shell) enter() error {
	line := s.line.String()
	s.history.Append(line)
	s.line.clear()

	if err := s.echo(s.renderer.NewLine); err != nil {
		return err
	}
	if s.handler != nil {
		if outputs := s.handler.ProcessLine(line); outputs != nil {
			for out := range outputs {
				if !s.config.Output {
					continue
				}
				if err := s.renderer.WriteMessage(out); err != nil {
					return fmt.Errorf("failed to render: %w", err)
				}
			}
		}
	}
	if err := s.renderer.WritePrompt(s.config.Prompt); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

// recall replaces the line with a history entry.
func (s *Shell) recall(entry string) error {
	s.line.replace(entry)
	return s.echo(func() error {
		if err := s.renderer.ClearLine(); err != nil {
			return err
		}
		if err := s.renderer.WritePrompt(s.config.Prompt); err != nil {
			return err
		}
		return s.renderer.WriteText(entry)
	})
}

// redraw rewrites the prompt and the whole line, then puts the cursor back.
func (s *Shell) redraw() error {
	return s.echo(func() error {
		if err := s.renderer.ClearLine(); err != nil {
			return err
		}
		if err := s.renderer.WritePrompt(s.config.Prompt); err != nil {
			return err
		}
		if err := s.renderer.WriteText(s.line.String()); err != nil {
			return err
		}
		if n := s.line.columnsAfterCursor(); n > 0 {
			return s.renderer.MoveLeft(n)
		}
		return nil
	})
}

// echo runs draw only when echo is enabled.
func (s *Shell) echo(draw func() error) error {
	if !s.config.Echo {
		return nil
	}
	if err := draw(); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

// Buffer returns the line currently being edited.
func (s *Shell) Buffer() string {
	return s.line.String()
}

// Cursor returns the cursor position within Buffer.
func (s *Shell) Cursor() int {
	return s.line.cursor
}

// History returns a copy of all completed lines, oldest first.
func (s *Shell) History() []string {
	return s.history.Entries()
}

// HistoryIndex returns the history browse position. It equals len(History())
// when no entry is being browsed.
func (s *Shell) HistoryIndex() int {
	return s.history.Index()
}

// Run is a convenience method that calls RunWithContext with a background context.
func (s *Shell) Run() error {
	return s.RunWithContext(context.Background())
}

// RunWithContext runs the interactive session until the user interrupts it,
// the input ends or ctx is cancelled.
//
// It writes the welcome message and the prompt, then reads one byte at a
// time, entering raw mode only for the duration of each read, and passes it
// to Consume. Ctrl+C or Ctrl+D end the session with ErrInterrupted; end of
// input ends it with ErrEOF, and cancellation with ctx.Err(). The farewell
// message is written in every case.
//
// The context is checked between reads, so cancellation takes effect once
// the pending read returns.
func (s *Shell) RunWithContext(ctx context.Context) error {
	if s.terminal == nil {
		t, err := newRealTerminal()
		if err != nil {
			return fmt.Errorf("failed to create terminal: %w", err)
		}
		s.terminal = t
	}

	if s.config.Welcome != "" {
		if err := s.renderer.WriteMessage(s.config.Welcome); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
	}
	if err := s.renderer.WritePrompt(s.config.Prompt); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return s.finish(ctx.Err())
		default:
		}

		b, err := s.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return s.finish(ErrEOF)
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := s.Consume(b); err != nil {
			if errors.Is(err, ErrInterrupted) {
				return s.finish(ErrInterrupted)
			}
			return err
		}
	}
}

// finish ends the session on its own line with the farewell message.
func (s *Shell) finish(reason error) error {
	if err := s.renderer.NewLine(); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	if s.config.Farewell != "" {
		if err := s.renderer.WriteMessage(s.config.Farewell); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
	}
	return reason
}

// readByte reads one byte with the terminal in raw mode and restores it before returning.
func (s *Shell) readByte() (byte, error) {
	if err := s.terminal.SetRaw(); err != nil {
		return 0, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	b, readErr := s.terminal.ReadByte()
	if err := s.terminal.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to exit raw mode: %v\n", err)
	}
	return b, readErr
}

// Close saves history when persistence is configured and releases the terminal.
//
// It's safe to call Close multiple times.
func (s *Shell) Close() error {
	if err := s.store.save(s.history.Entries()); err != nil {
		// Log error but continue with cleanup
		fmt.Fprintf(os.Stderr, "Warning: failed to save history: %v\n", err)
	}

	if s.terminal != nil {
		return s.terminal.Close()
	}
	return nil
}
