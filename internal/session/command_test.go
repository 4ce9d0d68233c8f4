package session

import (
	"math"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"hello", Command{Kind: CmdAppend, Text: "hello"}},
		{"", Command{Kind: CmdAppend, Text: ""}},
		{" :w", Command{Kind: CmdAppend, Text: " :w"}},
		{":w", Command{Kind: CmdWrite}},
		{":q", Command{Kind: CmdQuit}},
		{":wq", Command{Kind: CmdWriteQuit}},
		{":list", Command{Kind: CmdList}},
		{":help", Command{Kind: CmdHelp}},
		{":clear", Command{Kind: CmdClear}},
		{":edit 3", Command{Kind: CmdEdit, Line: 3}},
		{":edit   12", Command{Kind: CmdEdit, Line: 12}},
		{":edit 2 new text", Command{Kind: CmdEditText, Line: 2, Text: "new text"}},
		{":edit 2  spaced", Command{Kind: CmdEditText, Line: 2, Text: "spaced"}},
		{":edit 2 ", Command{Kind: CmdEditText, Line: 2, Text: ""}},
		{":edit", Command{Kind: CmdUsage, Usage: usageEdit}},
		{":edit x", Command{Kind: CmdUsage, Usage: usageEdit}},
		{":edit -1", Command{Kind: CmdUsage, Usage: usageEdit}},
		{":delete 4", Command{Kind: CmdDelete, Line: 4}},
		{":delete 4 extra", Command{Kind: CmdUsage, Usage: usageDelete}},
		{":delete", Command{Kind: CmdUsage, Usage: usageDelete}},
		{":insert 1 X", Command{Kind: CmdInsert, Line: 1, Text: "X"}},
		{":insert 1 :w", Command{Kind: CmdInsert, Line: 1, Text: ":w"}},
		{":insert 1", Command{Kind: CmdUsage, Usage: usageInsert}},
		{":editor", Command{Kind: CmdUnknown}},
		{":W", Command{Kind: CmdUnknown}},
		{":w ", Command{Kind: CmdUnknown}},
		{":", Command{Kind: CmdUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseCommand(tt.input)
			tt.want.Raw = tt.input
			if got != tt.want {
				t.Errorf("ParseCommand(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCommandHugeLineNumber(t *testing.T) {
	got := ParseCommand(":delete 99999999999999999999999")
	if got.Kind != CmdDelete {
		t.Fatalf("Expected CmdDelete, got %v", got.Kind)
	}
	if got.Line != math.MaxInt {
		t.Errorf("Expected overflowing line number to become MaxInt, got %d", got.Line)
	}
}
