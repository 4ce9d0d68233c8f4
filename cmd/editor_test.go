package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/envelope"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"github.com/PolarWolf314/jaylock/internal/store"
	"github.com/PolarWolf314/jaylock/internal/terminal"
)

// notePath returns where the note for password lives under notes.
func notePath(notes, password string) string {
	return store.New(notes).Path(keys.DeriveFileID([]byte(password)))
}

// readEnvelope parses the note file for password.
func readEnvelope(t *testing.T, notes, password string) envelope.Envelope {
	t.Helper()
	data, err := os.ReadFile(notePath(notes, password))
	if err != nil {
		t.Fatalf("Failed to read note file: %v", err)
	}
	env, err := envelope.Parse(string(data))
	if err != nil {
		t.Fatalf("Note file is not a valid envelope: %v", err)
	}
	return env
}

func TestEditor_WriteQuitCreatesNote(t *testing.T) {
	notes := setupTestEnvironment(t)
	code := catchExit()
	scriptConsole("hunter2\nhunter2\nfirst line\nsecond line\n:wq\n")

	output, err := runCLI()
	if err != nil {
		t.Fatalf("Editor returned error: %v\nOutput: %s", err, output)
	}
	if *code != -1 {
		t.Errorf("Expected no exit call, got code %d", *code)
	}

	for _, want := range []string{
		"Please verify your password:",
		"Password verified. Creating new encrypted note.",
		"=== Jaylock Encrypted Notes ===",
		"Notes saved successfully! Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, output)
		}
	}

	if _, err := os.Stat(notePath(notes, "hunter2")); err != nil {
		t.Fatalf("Expected note file to exist: %v", err)
	}

	scriptConsole("hunter2\n")
	output, err = runCLI("cat")
	if err != nil {
		t.Fatalf("cat returned error: %v", err)
	}
	if !strings.Contains(output, "first line\nsecond line\n") {
		t.Errorf("Expected note text in cat output, got: %s", output)
	}
}

func TestEditor_EndOfInputSaves(t *testing.T) {
	notes := setupTestEnvironment(t)
	catchExit()
	scriptConsole("pw\npw\nonly line\n")

	output, err := runCLI()
	if err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if !strings.Contains(output, "Notes saved. Goodbye!") {
		t.Errorf("Expected end-of-input save message, got: %s", output)
	}
	if _, err := os.Stat(notePath(notes, "pw")); err != nil {
		t.Errorf("Expected note file after end of input: %v", err)
	}
}

func TestEditor_QuitDiscards(t *testing.T) {
	notes := setupTestEnvironment(t)
	catchExit()
	scriptConsole("pw\npw\nthrowaway\n:q\n")

	output, err := runCLI()
	if err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if !strings.Contains(output, "Quitting without saving...") {
		t.Errorf("Expected quit message, got: %s", output)
	}
	if _, err := os.Stat(notePath(notes, "pw")); !os.IsNotExist(err) {
		t.Errorf("Expected no note file after :q, stat err = %v", err)
	}
}

// closeTrackingConsole is a scripted console that remembers being closed.
type closeTrackingConsole struct {
	*terminal.Pipe
	out    bytes.Buffer
	closed bool
}

func (c *closeTrackingConsole) Close() error {
	c.closed = true
	return c.Pipe.Close()
}

// trackConsole scripts the console like scriptConsole, but keeps its
// output apart from stdout and stderr.
func trackConsole(input string) *closeTrackingConsole {
	console := &closeTrackingConsole{}
	SetConsoleOpener(func() (terminal.Console, error) {
		console.Pipe = terminal.NewPipe(strings.NewReader(input), &console.out)
		return console, nil
	})
	return console
}

// exitAfterCleanup records the exit code and whether the console was
// already closed when the command exited.
func exitAfterCleanup(console *closeTrackingConsole) (*int, *bool) {
	code, closedAtExit := -1, false
	SetExitFunc(func(c int) {
		code = c
		closedAtExit = console.closed
	})
	return &code, &closedAtExit
}

func TestEditor_PassphraseMismatchExitsOne(t *testing.T) {
	notes := setupTestEnvironment(t)
	console := trackConsole("first\nsecond\nnever read\n")
	code, closedAtExit := exitAfterCleanup(console)

	output, err := runCLI()
	if err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !*closedAtExit {
		t.Error("Expected console to be closed before exiting")
	}
	if !strings.Contains(output, "Passwords do not match. Please try again.") {
		t.Errorf("Expected mismatch message on stderr, got: %s", output)
	}
	if strings.Contains(console.out.String(), "Passwords do not match") {
		t.Errorf("Mismatch message should not go to the console, got: %s", console.out.String())
	}
	if _, err := os.Stat(notes); !os.IsNotExist(err) {
		t.Errorf("Expected notes directory to be untouched, stat err = %v", err)
	}
}

func TestEditor_UnreadableNoteIsBackedUp(t *testing.T) {
	notes := setupTestEnvironment(t)
	catchExit()

	if err := os.MkdirAll(notes, 0700); err != nil {
		t.Fatalf("Failed to create notes dir: %v", err)
	}
	path := notePath(notes, "pw")
	if err := os.WriteFile(path, []byte("not an envelope"), 0600); err != nil {
		t.Fatalf("Failed to write corrupt note: %v", err)
	}

	scriptConsole("pw\npw\nfresh start\n:wq\n")
	output, err := runCLI()
	if err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if !strings.Contains(output, "Error decrypting notes. Possibly wrong password.") {
		t.Errorf("Expected decrypt warning, got: %s", output)
	}

	backup, err := os.ReadFile(path + store.BackupSuffix)
	if err != nil {
		t.Fatalf("Expected backup of unreadable note: %v", err)
	}
	if string(backup) != "not an envelope" {
		t.Errorf("Backup content = %q, want original bytes", backup)
	}
	readEnvelope(t, notes, "pw")
}

func TestEditor_FinalSaveFailureCleansUpBeforeExit(t *testing.T) {
	notes := setupTestEnvironment(t)
	console := trackConsole("pw\npw\nlost line\n:wq\n")
	code, closedAtExit := exitAfterCleanup(console)

	// A directory in the note's place cannot be backed up, so every save fails.
	path := notePath(notes, "pw")
	if err := os.MkdirAll(path, 0700); err != nil {
		t.Fatalf("Failed to create blocking directory: %v", err)
	}

	if _, err := runCLI(); err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !*closedAtExit {
		t.Error("Expected console to be closed before exiting")
	}
	if !strings.Contains(console.out.String(), "Error decrypting notes. Possibly wrong password.") {
		t.Errorf("Expected unreadable note warning, got: %s", console.out.String())
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("Expected blocking directory to survive, stat err = %v", err)
	}
}

func TestEditor_CipherFlagSelectsMode(t *testing.T) {
	notes := setupTestEnvironment(t)
	catchExit()
	scriptConsole("pw\npw\nsealed\n:wq\n")

	if _, err := runCLI("--cipher", "secretbox"); err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}

	mode, err := envelope.DetectMode(readEnvelope(t, notes, "pw"))
	if err != nil {
		t.Fatalf("DetectMode failed: %v", err)
	}
	if mode != envelope.ModeSecretbox {
		t.Errorf("Expected secretbox note, got %s", mode)
	}
}

func TestEditor_DirFlagOverridesDefault(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	dir := filepath.Join(t.TempDir(), "elsewhere")
	scriptConsole("pw\npw\nhello\n:wq\n")

	if _, err := runCLI("--dir", dir); err != nil {
		t.Fatalf("Editor returned error: %v", err)
	}
	if _, err := os.Stat(notePath(dir, "pw")); err != nil {
		t.Errorf("Expected note in --dir directory: %v", err)
	}
}

func TestRoot_RejectsUnknownCipher(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	scriptConsole("")

	_, err := runCLI("--cipher", "rot13")
	if err == nil {
		t.Fatal("Expected error for unknown cipher")
	}
	if !strings.Contains(err.Error(), "unknown cipher mode") {
		t.Errorf("Expected unknown cipher error, got: %v", err)
	}
}

func TestRoot_RejectsArguments(t *testing.T) {
	setupTestEnvironment(t)
	catchExit()
	scriptConsole("")

	if _, err := runCLI("notes.txt"); err == nil {
		t.Fatal("Expected error for positional argument")
	}
}
