package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

// SecretPrompt reads a secret without echoing it.
type SecretPrompt interface {
	// ReadSecret returns the typed bytes. Ctrl+C yields ErrInterrupted.
	ReadSecret(prompt string) ([]byte, error)
}

// LineReader reads one line of plain input.
type LineReader interface {
	// ReadLine shows prompt with prefill already typed in, ready to edit.
	// It returns io.EOF at end of input and ErrInterrupted on Ctrl+C.
	ReadLine(prompt, prefill string) (string, error)
}

// Console is everything an interactive session needs from its terminal.
type Console interface {
	SecretPrompt
	LineReader
	// Output is where session text should be written.
	Output() io.Writer
	// Interactive reports whether a person is typing at a terminal.
	Interactive() bool
	Close() error
}

// Open returns a readline console when stdin is a terminal and a plain
// line reader otherwise, so notes can be scripted through a pipe.
func Open() (Console, error) {
	if IsTerminal() {
		return NewTerminal()
	}
	return NewPipe(os.Stdin, os.Stdout), nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var (
	_ Console = (*Terminal)(nil)
	_ Console = (*Pipe)(nil)
)

// Terminal is a readline-backed Console.
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens readline on the process's stdio. History is disabled
// so note text and secrets never reach a history file or memory ring.
func NewTerminal() (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	return &Terminal{rl: rl}, nil
}

func (t *Terminal) ReadSecret(prompt string) ([]byte, error) {
	secret, err := t.rl.ReadPassword(prompt)
	if err != nil {
		return nil, mapError(err)
	}
	return secret, nil
}

func (t *Terminal) ReadLine(prompt, prefill string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.ReadlineWithDefault(prefill)
	if err != nil {
		return "", mapError(err)
	}
	return line, nil
}

func (t *Terminal) Output() io.Writer {
	return t.rl.Stdout()
}

func (t *Terminal) Interactive() bool {
	return true
}

func (t *Terminal) Close() error {
	return t.rl.Close()
}

func mapError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) {
		return jerrors.ErrInterrupted
	}
	return err
}
