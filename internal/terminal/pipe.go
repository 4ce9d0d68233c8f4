package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Pipe is a Console over plain streams. Secrets are read as ordinary lines
// and prefill text cannot be edited, so the next line simply replaces it.
type Pipe struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPipe reads lines from in and writes prompts to out.
func NewPipe(in io.Reader, out io.Writer) *Pipe {
	return &Pipe{in: bufio.NewReader(in), out: out}
}

func (p *Pipe) ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.readLine()
	fmt.Fprintln(p.out)
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

func (p *Pipe) ReadLine(prompt, prefill string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

func (p *Pipe) Output() io.Writer {
	return p.out
}

func (p *Pipe) Interactive() bool {
	return false
}

func (p *Pipe) Close() error {
	return nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF follows it.
func (p *Pipe) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
