// Package main demonstrates history persistence with the shell library.
package main

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/nao1215/shell"
)

// historyShell answers "history" with the numbered list of previous lines
// and upper-cases everything else.
type historyShell struct {
	s *shell.Shell
}

func (h *historyShell) ProcessLine(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		switch strings.TrimSpace(line) {
		case "":
			return
		case "history":
			for i, entry := range h.s.History() {
				if !yield(fmt.Sprintf("  %3d: %s", i+1, entry)) {
					return
				}
			}
		default:
			yield(strings.ToUpper(line))
		}
	}
}

func main() {
	// History will be loaded from the file automatically if it exists and
	// saved back when the shell is closed. Path formats:
	// - XDG compliant (recommended): shell.GetDefaultHistoryFile()
	// - Absolute path: "/home/user/.my_app_history"
	// - Home directory: "~/.my_app_history"
	// - Relative path: "./app_history" (converted to absolute)
	handler := &historyShell{}
	s, err := shell.New("history> ", handler,
		shell.WithFileHistory(shell.GetDefaultHistoryFile()),
		shell.WithWelcome(fmt.Sprintf("History is saved to %s; type 'history' to list it", shell.GetDefaultHistoryFile())),
		shell.WithFarewell("Goodbye!"),
	)
	if err != nil {
		log.Fatal(err)
	}
	handler.s = s
	defer s.Close()

	if err := s.Run(); err != nil && !errors.Is(err, shell.ErrInterrupted) && !errors.Is(err, shell.ErrEOF) {
		log.Printf("Error: %v\n", err)
	}
}
