// Package terminal provides the two input capabilities a session needs:
// reading a masked secret and reading a line that may start pre-filled.
//
// On a TTY both are served by chzyer/readline, which handles echo-free
// entry, backspace, Ctrl+C and editing a pre-filled line. When stdin is
// not a terminal (checked with golang.org/x/term) a Pipe reads plain lines
// instead.
//
// Ctrl+C surfaces as ErrInterrupted; end of input surfaces as io.EOF.
package terminal
