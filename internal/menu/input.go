package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of operator input after showing a prompt.
// It returns io.EOF when input ends or the operator interrupts.
type LineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

type readlineReader struct {
	rl *readline.Instance
}

// NewReadline returns a LineReader backed by readline for interactive
// terminals.
func NewReadline() (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) Prompt(prompt string) (string, error) {
	// readline only draws the last line of a prompt; earlier lines go out
	// as plain output.
	if idx := strings.LastIndex(prompt, "\n"); idx != -1 {
		fmt.Fprint(r.rl.Stdout(), prompt[:idx+1])
		prompt = prompt[idx+1:]
	}
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	if isEOF(err) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt)
}

type scanReader struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewScanner returns a LineReader over plain input such as a pipe. Prompts
// are written to out.
func NewScanner(in io.Reader, out io.Writer) LineReader {
	return &scanReader{sc: bufio.NewScanner(in), out: out}
}

func (s *scanReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.sc.Text()), nil
}

func (s *scanReader) Close() error {
	return nil
}
