package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"github.com/PolarWolf314/jaylock/internal/workflows"
)

func TestLog_NoAuditLog(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()

	output, err := runCLI("log")
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}
	if !strings.Contains(output, "No audit log found") {
		t.Errorf("Expected no-log message, got: %s", output)
	}
}

func TestLog_ShowsSessionOperations(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	createNote(t, "pw", "one", "two")

	output, err := runCLI("log")
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}

	short := workflows.ShortID(keys.DeriveFileID([]byte("pw")).String())
	for _, want := range []string{short, "save", "2 lines, cbc"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected log output to contain %q, got: %s", want, output)
		}
	}
}

func TestLog_JSONAndOperationFilter(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	createNote(t, "pw", "one")

	output, err := runCLI("log", "--json", "--operation", "save")
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}

	var entries []audit.Entry
	if err := json.Unmarshal([]byte(output), &entries); err != nil {
		t.Fatalf("Output is not JSON: %v\nOutput: %s", err, output)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 save entry, got %d", len(entries))
	}
	if entries[0].Operation != audit.OpSave {
		t.Errorf("Operation = %q, want %q", entries[0].Operation, audit.OpSave)
	}
	if entries[0].Session == "" {
		t.Error("Expected entry to carry a session ID")
	}
}

func TestLog_InvalidDate(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	createNote(t, "pw", "one")

	output, err := runCLI("log", "--since", "yesterday")
	if err != nil {
		t.Fatalf("Expected invalid date to be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "invalid date format") {
		t.Errorf("Expected invalid date message, got: %s", output)
	}
}

func TestLog_Oneline(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	createNote(t, "pw", "one")

	output, err := runCLI("log", "--oneline", "-n", "1")
	if err != nil {
		t.Fatalf("log returned error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %q", len(lines), output)
	}
	if !strings.Contains(lines[0], "save 1L") {
		t.Errorf("Expected latest entry to be the save, got: %s", lines[0])
	}
}
