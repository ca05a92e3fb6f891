// Package shell provides a small readline-style line editor for raw-mode
// terminal input.
//
// A Shell consumes input one byte at a time, recognises the ANSI sequences
// sent by the arrow and Delete keys, keeps an editable line with a cursor and
// a command history, and hands every completed line to a LineHandler.
//
// Key Features:
//
//   - Cursor movement with Left/Right, Backspace and Delete
//   - History recall with Up/Down
//   - Escape sequence recognition that falls back to literal text when a
//     sequence does not complete (a lone ESC followed by "x" inserts both)
//   - Pluggable Renderer for drawing, with an ANSI default and color schemes
//   - Optional history persistence with file rotation
//   - Byte-level Consume API that can be driven without a terminal
//
// Quick Start:
//
//	package main
//
//	import (
//		"errors"
//		"iter"
//		"log"
//		"slices"
//		"strings"
//
//		"github.com/nao1215/shell"
//	)
//
//	func main() {
//		upper := shell.LineHandlerFunc(func(line string) iter.Seq[string] {
//			return slices.Values([]string{strings.ToUpper(line)})
//		})
//
//		s, err := shell.New("> ", upper, shell.WithWelcome("hello"), shell.WithFarewell("bye"))
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer s.Close()
//
//		if err := s.Run(); err != nil && !errors.Is(err, shell.ErrInterrupted) {
//			log.Fatal(err)
//		}
//	}
//
// Key Bindings:
//
//   - Enter (CR or LF): submit the line
//   - Backspace (BS or DEL): delete the character before the cursor
//   - Delete (ESC [ 3 ~): delete the character under the cursor
//   - Left/Right (ESC [ D, ESC [ C): move the cursor
//   - Up/Down (ESC [ A, ESC [ B): browse history
//   - Ctrl+C, Ctrl+D: end the session
//
// Driving the editor without a terminal:
//
//	s, _ := shell.New("", nil, shell.WithEcho(false))
//	for _, b := range []byte("abc\x1b[D\x7f") {
//		s.Consume(b)
//	}
//	fmt.Println(s.Buffer(), s.Cursor()) // "ac" 1
package shell
