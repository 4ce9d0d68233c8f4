package workflows

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/keys"
)

// legacyNote is a CBC note for "hunter2" holding legacyText.
const (
	legacyNote = "000102030405060708090a0b0c0d0e0f:b35ed9e3985f55a44026e21661876396302856cc1dbe2a5a0cf6c4b813a930a1"
	legacyText = "first line\n\nthird ✓"
	legacyID   = "2ab96390c7dbe3439de74d0c9b0b1767"
)

func newPassphrase(t *testing.T, s string) *keys.Passphrase {
	t.Helper()
	p := keys.NewPassphrase([]byte(s))
	t.Cleanup(p.Destroy)
	return p
}

func writeNoteFile(t *testing.T, dir, id, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	path := filepath.Join(dir, id+".enc")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write note: %v", err)
	}
	return path
}

func readEntries(t *testing.T, dir string) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(dir)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

func operations(entries []audit.Entry) []string {
	ops := make([]string, len(entries))
	for i, e := range entries {
		ops[i] = e.Operation
	}
	return ops
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	if got := readFile(t, path); got != want {
		t.Errorf("Expected %s to contain %q, got %q", path, want, got)
	}
}
