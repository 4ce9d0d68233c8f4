package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/audit"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

const sampleLog = `{"ts":"2024-01-10T09:00:00.000000Z","session":"s1","op":"open","file":"2ab96390c7dbe3439de74d0c9b0b1767"}
{"ts":"2024-01-10T09:05:00.000000Z","session":"s1","op":"save","file":"2ab96390c7dbe3439de74d0c9b0b1767","cipher":"cbc","lines":2}
{"ts":"2024-01-15T12:00:00.000000Z","session":"s2","op":"open","file":"ffff0000ffff0000ffff0000ffff0000","cipher":"secretbox","lines":4}
{"ts":"2024-01-15T12:01:00.000000Z","session":"s2","op":"discard","file":"ffff0000ffff0000ffff0000ffff0000","lines":5,"reason":"quit"}
{"ts":"2024-01-20T18:30:00.000000Z","session":"s3","op":"migrate","file":"2ab96390c7dbe3439de74d0c9b0b1767","cipher":"secretbox","from_cipher":"cbc","lines":2}
`

func writeSampleLog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, audit.FileName), []byte(sampleLog), 0600); err != nil {
		t.Fatalf("Failed to write audit log: %v", err)
	}
	return dir
}

func TestLog_NoAuditLog(t *testing.T) {
	_, err := Log(context.Background(), LogOptions{Dir: t.TempDir()})
	if !errors.Is(err, jerrors.ErrNoAuditLog) {
		t.Errorf("Expected ErrNoAuditLog, got %v", err)
	}
}

func TestLog_Filters(t *testing.T) {
	dir := writeSampleLog(t)

	tests := []struct {
		name string
		opts LogOptions
		want []string
	}{
		{"all", LogOptions{}, []string{"open", "save", "open", "discard", "migrate"}},
		{"limit keeps most recent", LogOptions{Limit: 2}, []string{"discard", "migrate"}},
		{"reverse", LogOptions{Reverse: true, Limit: 2}, []string{"migrate", "discard"}},
		{"operations", LogOptions{Operations: "save, MIGRATE"}, []string{"save", "migrate"}},
		{"file prefix", LogOptions{FileID: "FFFF"}, []string{"open", "discard"}},
		{"since", LogOptions{Since: "2024-01-15"}, []string{"open", "discard", "migrate"}},
		{"until includes whole day", LogOptions{Until: "2024-01-15"}, []string{"open", "save", "open", "discard"}},
		{"no match", LogOptions{Operations: "cat"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Dir = dir
			result, err := Log(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 5 {
				t.Errorf("Expected 5 entries before filtering, got %d", result.TotalEntriesBeforeFilter)
			}
			got := operations(result.Entries)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestLog_InvalidDates(t *testing.T) {
	dir := writeSampleLog(t)

	for _, opts := range []LogOptions{{Dir: dir, Since: "15/01/2024"}, {Dir: dir, Until: "yesterday"}} {
		if _, err := Log(context.Background(), opts); !errors.Is(err, jerrors.ErrInvalidDateFormat) {
			t.Errorf("Expected ErrInvalidDateFormat for %+v, got %v", opts, err)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	tests := map[string]string{
		"2024-01-15T12:01:00.123456Z": "2024-01-15 12:01:00",
		"2024-01-15T12:01:00Z":        "2024-01-15 12:01:00",
		"garbage":                     "garbage",
	}
	for in, want := range tests {
		if got := FormatDateTime(in); got != want {
			t.Errorf("FormatDateTime(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatDate("2024-01-15T12:01:00.123456Z"); got != "2024-01-15" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry   audit.Entry
		verbose string
		oneline string
	}{
		{audit.Entry{Operation: audit.OpOpen}, "new note", "0L"},
		{audit.Entry{Operation: audit.OpOpen, Cipher: "cbc", Lines: 1}, "1 line, cbc", "1L"},
		{audit.Entry{Operation: audit.OpSave, Cipher: "secretbox", Lines: 3}, "3 lines, secretbox", "3L"},
		{audit.Entry{Operation: audit.OpDiscard, Lines: 2}, "2 lines unsaved", "2L"},
		{audit.Entry{Operation: audit.OpMigrate, FromCipher: "cbc", Cipher: "secretbox", Lines: 2}, "cbc -> secretbox, 2 lines", "cbc->secretbox"},
		{audit.Entry{Operation: audit.OpOpen, Error: "bad"}, "failed: bad", "failed"},
		{audit.Entry{Operation: "other"}, "", ""},
	}

	for _, tt := range tests {
		if got := FormatDetails(tt.entry); got != tt.verbose {
			t.Errorf("FormatDetails(%+v) = %q, want %q", tt.entry, got, tt.verbose)
		}
		if got := FormatDetailsOneline(tt.entry); got != tt.oneline {
			t.Errorf("FormatDetailsOneline(%+v) = %q, want %q", tt.entry, got, tt.oneline)
		}
	}
}
