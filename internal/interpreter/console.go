package interpreter

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ConsoleReader is an io.Reader over an interactive terminal with line
// editing and history. It only prompts when the reader has run out of
// buffered input, which is exactly when the lexer needs another character.
type ConsoleReader struct {
	state  *liner.State
	prompt string
	buf    []byte
}

func NewConsoleReader(prompt string) *ConsoleReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &ConsoleReader{state: state, prompt: prompt}
}

func (c *ConsoleReader) Read(p []byte) (int, error) {
	for len(c.buf) == 0 {
		line, err := c.state.Prompt(c.prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, err
		}
		if strings.TrimSpace(line) != "" {
			c.state.AppendHistory(line)
		}
		c.buf = append(c.buf, line...)
		c.buf = append(c.buf, '\n')
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *ConsoleReader) Close() error {
	return c.state.Close()
}
