package buffer

import (
	"fmt"
	"strings"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

// Separator splits a document into lines.
const Separator = "\n"

// IndexError reports a line number outside [1, Max]. It wraps ErrIndexOutOfRange.
type IndexError struct {
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	if e.Max < 1 {
		return fmt.Sprintf("line %d does not exist: the buffer is empty", e.Index)
	}
	return fmt.Sprintf("line number must be between 1 and %d", e.Max)
}

func (e *IndexError) Unwrap() error {
	return jerrors.ErrIndexOutOfRange
}

// Buffer is an ordered sequence of lines addressed from 1.
type Buffer struct {
	lines []string
}

// FromText splits text on Separator. The empty string is the empty buffer,
// not a buffer holding one empty line.
func FromText(text string) *Buffer {
	if text == "" {
		return &Buffer{}
	}
	return &Buffer{lines: strings.Split(text, Separator)}
}

// FromLines copies lines into a new buffer.
func FromLines(lines ...string) *Buffer {
	return &Buffer{lines: append([]string(nil), lines...)}
}

// Text joins the lines with Separator.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, Separator)
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the lines.
func (b *Buffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Get returns line n.
func (b *Buffer) Get(n int) (string, error) {
	if err := b.check(n, len(b.lines)); err != nil {
		return "", err
	}
	return b.lines[n-1], nil
}

// Set replaces line n.
func (b *Buffer) Set(n int, text string) error {
	if err := b.check(n, len(b.lines)); err != nil {
		return err
	}
	b.lines[n-1] = text
	return nil
}

// InsertAt inserts text before line n. n may be Len()+1 to append.
func (b *Buffer) InsertAt(n int, text string) error {
	if err := b.check(n, len(b.lines)+1); err != nil {
		return err
	}
	b.lines = append(b.lines, "")
	copy(b.lines[n:], b.lines[n-1:])
	b.lines[n-1] = text
	return nil
}

// DeleteAt removes line n.
func (b *Buffer) DeleteAt(n int) error {
	if err := b.check(n, len(b.lines)); err != nil {
		return err
	}
	b.lines = append(b.lines[:n-1], b.lines[n:]...)
	return nil
}

// Append adds text as the last line.
func (b *Buffer) Append(text string) {
	b.lines = append(b.lines, text)
}

// Clear removes every line.
func (b *Buffer) Clear() {
	b.lines = nil
}

func (b *Buffer) check(n, max int) error {
	if n < 1 || n > max {
		return &IndexError{Index: n, Max: max}
	}
	return nil
}
