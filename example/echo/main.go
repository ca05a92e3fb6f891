// Package main demonstrates basic usage of the shell library.
package main

import (
	"errors"
	"iter"
	"log"
	"slices"

	"github.com/nao1215/shell"
)

func main() {
	// Every line typed is echoed back once
	echo := shell.LineHandlerFunc(func(line string) iter.Seq[string] {
		return slices.Values([]string{line})
	})

	s, err := shell.New("es > ", echo,
		shell.WithWelcome("Echo Shell Example (Ctrl+C or Ctrl+D to exit)"),
		shell.WithFarewell("Goodbye!"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	if err := s.Run(); err != nil && !errors.Is(err, shell.ErrInterrupted) && !errors.Is(err, shell.ErrEOF) {
		log.Printf("Error: %v\n", err)
	}
}
