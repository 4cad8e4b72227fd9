package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/qiangli/pye/internal/log"
	"github.com/qiangli/pye/interp"
)

// repl runs one input per line and prints the captured output.
// State persists across lines. exit, quit, or ^D ends the session.
func repl() error {
	log.Promptf("pye %s. exit or ^D to quit\n", "repl")

	in := bufio.NewScanner(os.Stdin)
	for {
		log.Promptf("pye> ")
		if !in.Scan() {
			log.Promptf("\n")
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		log.Print(interp.Execute(line))
	}
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
