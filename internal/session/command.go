package session

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CommandKind identifies what a line of input asks for.
type CommandKind int

const (
	// CmdAppend adds the line to the end of the note.
	CmdAppend CommandKind = iota
	CmdWrite
	CmdQuit
	CmdWriteQuit
	CmdList
	CmdHelp
	CmdClear
	// CmdEdit starts editing a line with its current text pre-filled.
	CmdEdit
	// CmdEditText replaces a line with the given text.
	CmdEditText
	CmdDelete
	CmdInsert
	// CmdUsage is a known command with malformed arguments.
	CmdUsage
	CmdUnknown
)

// Command is one parsed line of input.
type Command struct {
	Kind CommandKind
	// Line is the 1-based line number for edit, delete and insert.
	Line int
	// Text is the appended text, or the replacement or inserted text.
	Text string
	// Usage is set for CmdUsage.
	Usage string
	Raw   string
}

const (
	usageEdit   = "Usage: :edit <line number> [new text]"
	usageDelete = "Usage: :delete <line number>"
	usageInsert = "Usage: :insert <line number> <text>"
)

var (
	editPattern     = regexp.MustCompile(`^:edit\s+(\d+)$`)
	editTextPattern = regexp.MustCompile(`^:edit\s+(\d+)\s+(.*)$`)
	deletePattern   = regexp.MustCompile(`^:delete\s+(\d+)$`)
	insertPattern   = regexp.MustCompile(`^:insert\s+(\d+)\s+(.*)$`)
)

var exactCommands = map[string]CommandKind{
	":w":     CmdWrite,
	":q":     CmdQuit,
	":wq":    CmdWriteQuit,
	":list":  CmdList,
	":help":  CmdHelp,
	":clear": CmdClear,
}

// ParseCommand classifies a line typed in normal mode. Lines that do not
// start with ':' are text to append, whatever else they contain.
func ParseCommand(input string) Command {
	if !strings.HasPrefix(input, ":") {
		return Command{Kind: CmdAppend, Text: input, Raw: input}
	}
	if kind, ok := exactCommands[input]; ok {
		return Command{Kind: kind, Raw: input}
	}

	switch {
	case hasVerb(input, ":edit"):
		if m := editPattern.FindStringSubmatch(input); m != nil {
			return Command{Kind: CmdEdit, Line: lineNumber(m[1]), Raw: input}
		}
		if m := editTextPattern.FindStringSubmatch(input); m != nil {
			return Command{Kind: CmdEditText, Line: lineNumber(m[1]), Text: m[2], Raw: input}
		}
		return Command{Kind: CmdUsage, Usage: usageEdit, Raw: input}
	case hasVerb(input, ":delete"):
		if m := deletePattern.FindStringSubmatch(input); m != nil {
			return Command{Kind: CmdDelete, Line: lineNumber(m[1]), Raw: input}
		}
		return Command{Kind: CmdUsage, Usage: usageDelete, Raw: input}
	case hasVerb(input, ":insert"):
		if m := insertPattern.FindStringSubmatch(input); m != nil {
			return Command{Kind: CmdInsert, Line: lineNumber(m[1]), Text: m[2], Raw: input}
		}
		return Command{Kind: CmdUsage, Usage: usageInsert, Raw: input}
	}

	return Command{Kind: CmdUnknown, Raw: input}
}

// hasVerb matches the bare verb or the verb followed by whitespace, so
// ":editor" stays an unknown command.
func hasVerb(input, verb string) bool {
	if !strings.HasPrefix(input, verb) {
		return false
	}
	rest := input[len(verb):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// lineNumber parses digits matched by \d+. Numbers too large for an int
// become MaxInt so they fail the range check instead of wrapping.
func lineNumber(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
