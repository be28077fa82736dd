package main

import (
	"Kaleidoscope/internal/interpreter"
	l "Kaleidoscope/internal/logger"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	dump := flag.Bool("dump", false, "print each parsed tree")
	flag.Parse()

	logDir := filepath.Join("logs")

	replLogger, err := l.New("repl", logDir, l.INFO)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, name := range []string{"lexer", "parser", "driver"} {
		if _, err := l.New(name, logDir, l.ERROR); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	replLogger.Info("Starting Kaleidoscope shell")
	if err := interpreter.Repl(interpreter.Options{Dump: *dump}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	replLogger.Info("Shutting down Kaleidoscope shell")
}
