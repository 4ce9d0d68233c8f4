// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for isolating settings, scripting the
// console, capturing output and catching exit codes.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/configs"
	"github.com/PolarWolf314/jaylock/internal/terminal"
)

// setupTestEnvironment points every jaylock path into a temp directory and
// resets command state. It returns the notes directory, which does not
// exist yet.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	tempDir := t.TempDir()
	notes := filepath.Join(tempDir, "notes")

	originalSettings := configs.JaylockSettings
	configs.JaylockSettings = &configs.Settings{
		DefaultNotesDir: notes,
		ConfigPath:      filepath.Join(tempDir, "config", "config.toml"),
	}
	t.Cleanup(func() {
		configs.JaylockSettings = originalSettings
	})

	t.Setenv(configs.NotesDirEnv, "")
	t.Setenv("NO_COLOR", "1")
	return notes
}

// scriptConsole makes every command read its passwords and editor lines
// from input. Output goes to whatever os.Stdout is when the command runs.
func scriptConsole(input string) {
	SetConsoleOpener(func() (terminal.Console, error) {
		return terminal.NewPipe(strings.NewReader(input), os.Stdout), nil
	})
}

// catchExit replaces exitFunc and doctorExitFunc. The returned pointer
// holds the last code passed to either, or -1.
func catchExit() *int {
	code := -1
	SetExitFunc(func(c int) { code = c })
	SetDoctorExitFunc(func(c int) { code = c })
	return &code
}

// runCLI executes the root command with args and returns everything it
// printed.
func runCLI(args ...string) (string, error) {
	return captureOutput(func() error {
		RootCmd.SetArgs(args)
		return RootCmd.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}
