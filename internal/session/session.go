package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PolarWolf314/jaylock/internal/buffer"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	logger "github.com/PolarWolf314/jaylock/internal/logging"
	"github.com/PolarWolf314/jaylock/internal/terminal"
	"github.com/PolarWolf314/jaylock/internal/ui"
)

const (
	// NormalPrompt is shown while the session waits for text or a command.
	NormalPrompt = "jaylock> "
	// ClearPrompt asks for confirmation after :clear.
	ClearPrompt = "Are you sure you want to clear all content? (y/n): "
)

// Mode is the state of the command loop.
type Mode int

const (
	ModeNormal Mode = iota
	// ModeLineEdit means the next line replaces the line being edited.
	ModeLineEdit
	// ModeClearConfirm means the next line answers the clear confirmation.
	ModeClearConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeLineEdit:
		return "line-edit"
	case ModeClearConfirm:
		return "clear-confirm"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Saver persists the whole note text.
type Saver interface {
	Save(text string) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(text string) error

func (f SaverFunc) Save(text string) error {
	return f(text)
}

// ExitReason records how a session ended.
type ExitReason int

const (
	// ExitQuit is :q. Nothing is saved.
	ExitQuit ExitReason = iota
	ExitSaveQuit
	ExitEndOfInput
	ExitInterrupt
)

func (r ExitReason) String() string {
	switch r {
	case ExitQuit:
		return "quit"
	case ExitSaveQuit:
		return "save-quit"
	case ExitEndOfInput:
		return "end-of-input"
	case ExitInterrupt:
		return "interrupt"
	default:
		return fmt.Sprintf("ExitReason(%d)", int(r))
	}
}

// Result describes a finished session.
type Result struct {
	Reason ExitReason
	// Saved reports whether the final save succeeded. Always false for ExitQuit.
	Saved bool
	// SaveErr is the error from the final save, if it failed.
	SaveErr error
	// Saves counts successful saves, including :w.
	Saves int
}

// Options configures a Session. Only Saver is required.
type Options struct {
	Buffer *buffer.Buffer
	Saver  Saver
	Out    io.Writer
	Logger logger.Logger
}

// Session is the line-oriented editor loop over one decrypted note.
// It is not safe for concurrent use.
type Session struct {
	buf    *buffer.Buffer
	saver  Saver
	out    io.Writer
	log    logger.Logger
	mode   Mode
	target int
	result *Result
	saves  int
}

// New returns a Session in normal mode over opts.Buffer, or an empty buffer.
func New(opts Options) *Session {
	buf := opts.Buffer
	if buf == nil {
		buf = buffer.FromText("")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Session{
		buf:   buf,
		saver: opts.Saver,
		out:   out,
		log:   opts.Logger,
	}
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Prompt returns the prompt for the next line and the text to pre-fill it with.
func (s *Session) Prompt() (string, string) {
	switch s.mode {
	case ModeLineEdit:
		line, _ := s.buf.Get(s.target)
		return fmt.Sprintf("edit:%d> ", s.target), line
	case ModeClearConfirm:
		return ClearPrompt, ""
	default:
		return NormalPrompt, ""
	}
}

// Save writes the buffer through the Saver.
func (s *Session) Save() error {
	if s.saver == nil {
		return fmt.Errorf("%w: no saver configured", jerrors.ErrStorage)
	}
	if err := s.saver.Save(s.buf.Text()); err != nil {
		return err
	}
	s.saves++
	s.log.Debugf("Saved %d lines", s.buf.Len())
	return nil
}

// Welcome prints the command summary and any existing content.
func (s *Session) Welcome() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, ui.Info.Sprint("=== Jaylock Encrypted Notes ==="))
	s.printHelp()
	fmt.Fprintln(s.out)
	if s.buf.Len() > 0 {
		s.display()
	}
}

// HandleLine applies one line of input and reports whether the session is over.
func (s *Session) HandleLine(line string) bool {
	if s.result != nil {
		return true
	}

	switch s.mode {
	case ModeLineEdit:
		s.finishLineEdit(line)
		return false
	case ModeClearConfirm:
		s.finishClear(line)
		return false
	}

	cmd := ParseCommand(line)
	s.log.Debugf("Input parsed as command kind %d", int(cmd.Kind))

	switch cmd.Kind {
	case CmdAppend:
		s.buf.Append(cmd.Text)
		s.display()
	case CmdWrite:
		if err := s.Save(); err != nil {
			s.printSaveError(err)
			break
		}
		fmt.Fprintln(s.out, ui.Success.Sprint("✓")+" Notes saved successfully!")
	case CmdQuit:
		fmt.Fprintln(s.out, "Quitting without saving...")
		s.result = &Result{Reason: ExitQuit, Saves: s.saves}
	case CmdWriteQuit:
		s.finish(ExitSaveQuit)
	case CmdList:
		s.display()
	case CmdHelp:
		s.printHelp()
	case CmdClear:
		s.mode = ModeClearConfirm
	case CmdEdit:
		if _, err := s.buf.Get(cmd.Line); err != nil {
			s.printRangeError(err)
			break
		}
		fmt.Fprintf(s.out, "Editing line %d. Press Enter to confirm.\n", cmd.Line)
		s.mode = ModeLineEdit
		s.target = cmd.Line
	case CmdEditText:
		if err := s.buf.Set(cmd.Line, cmd.Text); err != nil {
			s.printRangeError(err)
			break
		}
		fmt.Fprintf(s.out, "Line %d updated.\n", cmd.Line)
		s.display()
	case CmdDelete:
		if err := s.buf.DeleteAt(cmd.Line); err != nil {
			s.printRangeError(err)
			break
		}
		fmt.Fprintf(s.out, "Line %d deleted.\n", cmd.Line)
		s.display()
	case CmdInsert:
		if err := s.buf.InsertAt(cmd.Line, cmd.Text); err != nil {
			s.printRangeError(err)
			break
		}
		fmt.Fprintf(s.out, "Text inserted at line %d.\n", cmd.Line)
		s.display()
	case CmdUsage:
		fmt.Fprintln(s.out, cmd.Usage)
	case CmdUnknown:
		fmt.Fprintf(s.out, "Unknown command: %s\n", cmd.Raw)
		fmt.Fprintln(s.out, "Type "+ui.Command.Sprint(":help")+" to see available commands.")
	}

	return s.result != nil
}

// Run drives the session until it ends. Each line is read on its own
// goroutine so cancelling ctx ends the session even while a read blocks;
// the buffer is only touched from the calling goroutine. Cancellation,
// Ctrl+C and end of input all save before returning.
func (s *Session) Run(ctx context.Context, r terminal.LineReader) (Result, error) {
	type read struct {
		line string
		err  error
	}

	for {
		prompt, prefill := s.Prompt()
		lines := make(chan read, 1)
		go func() {
			line, err := r.ReadLine(prompt, prefill)
			lines <- read{line: line, err: err}
		}()

		select {
		case <-ctx.Done():
			s.log.Debugf("Session cancelled: %v", ctx.Err())
			return s.interrupt(), nil
		case got := <-lines:
			switch {
			case got.err == nil:
				if s.HandleLine(got.line) {
					return *s.result, nil
				}
			case errors.Is(got.err, jerrors.ErrInterrupted):
				return s.interrupt(), nil
			case errors.Is(got.err, io.EOF):
				s.finish(ExitEndOfInput)
				return *s.result, nil
			default:
				s.log.Errorf("Reading input failed: %v", got.err)
				s.finish(ExitEndOfInput)
				return *s.result, fmt.Errorf("failed to read input: %w", got.err)
			}
		}
	}
}

func (s *Session) interrupt() Result {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "Saving before exit...")
	s.finish(ExitInterrupt)
	return *s.result
}

// finish performs the final save for every exit except :q. A pending
// line edit or clear confirmation is abandoned.
func (s *Session) finish(reason ExitReason) {
	s.mode = ModeNormal
	res := &Result{Reason: reason}
	if err := s.Save(); err != nil {
		s.printSaveError(err)
		res.SaveErr = err
	} else {
		res.Saved = true
		switch reason {
		case ExitEndOfInput:
			fmt.Fprintln(s.out, ui.Success.Sprint("✓")+" Notes saved. Goodbye!")
		default:
			fmt.Fprintln(s.out, ui.Success.Sprint("✓")+" Notes saved successfully! Goodbye!")
		}
	}
	res.Saves = s.saves
	s.result = res
}

func (s *Session) finishLineEdit(line string) {
	n := s.target
	s.mode = ModeNormal
	s.target = 0
	if err := s.buf.Set(n, line); err != nil {
		s.printRangeError(err)
		return
	}
	fmt.Fprintf(s.out, "Line %d updated.\n", n)
	s.display()
}

func (s *Session) finishClear(answer string) {
	s.mode = ModeNormal
	switch strings.ToLower(answer) {
	case "y", "yes":
		s.buf.Clear()
		fmt.Fprintln(s.out, "All content has been cleared.")
		s.display()
	default:
		fmt.Fprintln(s.out, "Clear operation cancelled.")
	}
}

func (s *Session) display() {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "--- Current Content ---")
	if s.buf.Len() == 0 {
		fmt.Fprintln(s.out, ui.LineNumber.Sprint("(Empty file)"))
	}
	for i, line := range s.buf.Lines() {
		fmt.Fprintf(s.out, "%s %s\n", ui.LineNumber.Sprintf("%d:", i+1), line)
	}
	fmt.Fprintln(s.out, "----------------------")
	fmt.Fprintln(s.out)
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, "Commands:")
	for _, c := range helpLines {
		fmt.Fprintf(s.out, "  %s - %s\n", ui.Command.Sprint(c[0]), c[1])
	}
}

var helpLines = [][2]string{
	{":w", "Save changes"},
	{":q", "Quit without saving"},
	{":wq", "Save and quit"},
	{":list", "Show all content with line numbers"},
	{":edit <line>", "Edit a specific line with content pre-filled"},
	{":edit <line> <text>", "Edit a specific line directly"},
	{":delete <line>", "Delete a specific line"},
	{":insert <line> <text>", "Insert text at a specific line"},
	{":clear", "Clear all content (with confirmation)"},
	{":help", "Show these commands"},
}

func (s *Session) printRangeError(err error) {
	var ie *buffer.IndexError
	if errors.As(err, &ie) {
		fmt.Fprintf(s.out, "%s Error: Line number must be between 1 and %d.\n", ui.Error.Sprint("✗"), ie.Max)
		return
	}
	fmt.Fprintf(s.out, "%s Error: %v\n", ui.Error.Sprint("✗"), err)
}

func (s *Session) printSaveError(err error) {
	fmt.Fprintf(s.out, "%s Failed to save notes: %v\n", ui.Error.Sprint("✗"), err)
}
