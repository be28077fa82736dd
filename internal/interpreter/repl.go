package interpreter

import (
	"Kaleidoscope/internal/logger"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const DefaultPrompt = "ready> "

// Repl runs the interactive shell on stdin. A terminal gets a line-edited
// console; redirected input is read as a plain stream with no prompts.
func Repl(opts Options) error {
	log := logger.Get("repl")
	log.Info("Starting REPL session")

	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var input io.Reader = os.Stdin
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		if opts.Prompt == "" {
			opts.Prompt = DefaultPrompt
		}
		console := NewConsoleReader(opts.Prompt)
		defer console.Close()
		input = console
		// The console draws the prompt itself.
		opts.Prompt = ""
	} else {
		opts.Prompt = ""
	}

	summary, err := NewDriver(input, opts).Run()
	if err != nil {
		log.Error("REPL failed: %v", err)
		return fmt.Errorf("repl: %w", err)
	}

	log.Info("REPL session ended: %d definitions, %d externs, %d expressions, %d errors",
		summary.Definitions, summary.Externs, summary.Expressions, summary.Errors)
	return nil
}
