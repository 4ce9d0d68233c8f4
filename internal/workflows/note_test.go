package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/envelope"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

func TestOpen_NewNote(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	trail := audit.NewTrail(dir)

	n, err := Open(context.Background(), OpenOptions{
		Dir:        dir,
		Passphrase: newPassphrase(t, "hunter2"),
		Trail:      trail,
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	if n.Exists || n.Text != "" || n.LoadErr != nil {
		t.Errorf("Expected a new empty note, got %+v", n)
	}
	if n.ID.String() != legacyID {
		t.Errorf("Expected id %s, got %s", legacyID, n.ID)
	}
	if _, err := os.Stat(n.Path); !os.IsNotExist(err) {
		t.Error("Open must not create the note file")
	}

	if _, err := os.Stat(trail.Path()); !os.IsNotExist(err) {
		t.Errorf("Expected no audit log for a passphrase without a note, stat err = %v", err)
	}
}

func TestOpen_LegacyNote(t *testing.T) {
	dir := t.TempDir()
	writeNoteFile(t, dir, legacyID, legacyNote)

	n, err := Open(context.Background(), OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "hunter2")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	if !n.Exists || n.LoadErr != nil {
		t.Fatalf("Expected an existing readable note, got %+v", n)
	}
	if n.Text != legacyText {
		t.Errorf("Expected %q, got %q", legacyText, n.Text)
	}
	if n.ReadCipher != envelope.ModeCBC {
		t.Errorf("Expected cbc, got %s", n.ReadCipher)
	}
}

func TestSaveAndReopen(t *testing.T) {
	for _, mode := range envelope.Modes {
		t.Run(mode.String(), func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()
			opts := OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "correct horse"), Cipher: mode}

			n, err := Open(ctx, opts)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if err := n.Save(ctx, "one\n\nthree"); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			n.Close()

			again, err := Open(ctx, opts)
			if err != nil {
				t.Fatalf("Reopen failed: %v", err)
			}
			defer again.Close()

			if again.Text != "one\n\nthree" {
				t.Errorf("Expected saved text, got %q", again.Text)
			}
			if again.ReadCipher != mode {
				t.Errorf("Expected %s, got %s", mode, again.ReadCipher)
			}
		})
	}
}

func TestOpen_CorruptNoteIsRecovered(t *testing.T) {
	dir := t.TempDir()
	path := writeNoteFile(t, dir, legacyID, "garbage without separator")
	ctx := context.Background()

	n, err := Open(ctx, OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "hunter2"), Trail: audit.NewTrail(dir)})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	if !errors.Is(n.LoadErr, jerrors.ErrCorruptEnvelope) {
		t.Fatalf("Expected ErrCorruptEnvelope in LoadErr, got %v", n.LoadErr)
	}
	if n.Text != "" {
		t.Errorf("Expected empty text, got %q", n.Text)
	}

	if err := n.Save(ctx, "fresh"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if n.BackupPath != path+".bak" {
		t.Errorf("Expected backup at %s, got %q", path+".bak", n.BackupPath)
	}
	data, err := os.ReadFile(n.BackupPath)
	if err != nil || string(data) != "garbage without separator" {
		t.Errorf("Backup content = %q, %v", data, err)
	}

	entries := readEntries(t, dir)
	if entries[0].Error == "" {
		t.Errorf("Expected the failed open to be audited with an error, got %+v", entries[0])
	}
}

func TestOpen_UnreadableNoteIsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, legacyID+".enc")
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}
	ctx := context.Background()

	n, err := Open(ctx, OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "hunter2")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	if !n.Exists {
		t.Error("Expected an unreadable note to count as existing")
	}
	if !errors.Is(n.LoadErr, jerrors.ErrStorage) {
		t.Fatalf("Expected ErrStorage in LoadErr, got %v", n.LoadErr)
	}

	if err := n.Save(ctx, "fresh"); err == nil {
		t.Fatal("Expected save to be refused when the note cannot be backed up")
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected the unreadable entry to be left in place, stat = %v, %v", info, err)
	}
}

func TestOpen_WrongKeyIsRecovered(t *testing.T) {
	dir := t.TempDir()
	// A secretbox envelope under some other key, stored under hunter2's name.
	other := newPassphrase(t, "someone else")
	key, _ := other.Derive()
	env, err := envelope.NewCodec(envelope.ModeSecretbox).Encrypt("private", key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	writeNoteFile(t, dir, legacyID, env.String())

	n, err := Open(context.Background(), OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "hunter2")})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	if !errors.Is(n.LoadErr, jerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got %v", n.LoadErr)
	}
	if strings.Contains(n.Text, "private") {
		t.Error("Wrong key must not reveal the note")
	}
}

func TestOpen_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Open(ctx, OpenOptions{Dir: t.TempDir(), Passphrase: newPassphrase(t, "x")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestOpen_RequiresPassphrase(t *testing.T) {
	if _, err := Open(context.Background(), OpenOptions{Dir: t.TempDir()}); err == nil {
		t.Error("Expected an error without a passphrase")
	}
}

func TestSaver_IgnoresCancellation(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	n, err := Open(ctx, OpenOptions{Dir: dir, Passphrase: newPassphrase(t, "hunter2"), Trail: audit.NewTrail(dir)})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer n.Close()

	saver := n.Saver(ctx)
	cancel()

	if err := saver.Save("saved after interrupt"); err != nil {
		t.Fatalf("Save after cancel failed: %v", err)
	}
	if !n.Exists {
		t.Error("Expected note to exist after save")
	}

	ops := operations(readEntries(t, dir))
	if !reflect.DeepEqual(ops, []string{audit.OpSave}) {
		t.Errorf("Expected only a save entry, got %v", ops)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID(legacyID); got != "2ab96390" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}
