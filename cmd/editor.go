package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PolarWolf314/jaylock/internal/audit"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/ui"
	"github.com/PolarWolf314/jaylock/internal/workflows"
	"github.com/spf13/cobra"
)

func runEditor(cmd *cobra.Command, args []string) error {
	code, err := editNote()
	if err != nil {
		return err
	}
	// Exit only once editNote has wiped the key and released the terminal.
	if code != 0 {
		exitFunc(code)
	}
	return nil
}

// editNote runs one editor session and returns the process exit code.
func editNote() (int, error) {
	Logger.Infof("Starting editor session")

	cfg, err := loadSettings()
	if err != nil {
		printFailure("Failed to load configuration", err)
		return 1, nil
	}

	console, err := openConsole()
	if err != nil {
		printFailure("Failed to open terminal", err)
		return 1, nil
	}
	defer console.Close()
	out := console.Output()

	pass, err := workflows.ReadPassphrase(workflows.PassphraseOptions{
		Prompt:  console,
		Out:     out,
		Confirm: true,
	})
	switch {
	case errors.Is(err, jerrors.ErrInterrupted):
		Logger.Debugf("Passphrase entry interrupted")
		return 0, nil
	case errors.Is(err, jerrors.ErrPassphraseMismatch):
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("Passwords do not match. Please try again."))
		return 1, nil
	case err != nil:
		printFailure("Failed to read password", err)
		return 1, nil
	}
	defer pass.Destroy()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	note, err := workflows.Open(ctx, workflows.OpenOptions{
		Dir:        cfg.Dir,
		Passphrase: pass,
		Cipher:     cfg.Cipher,
		Trail:      audit.NewTrail(cfg.Dir),
		Logger:     Logger,
	})
	if err != nil {
		printFailure("Failed to open note", err)
		return 1, nil
	}
	defer note.Close()

	switch {
	case note.LoadErr != nil:
		fmt.Fprintln(out, ui.Warning.Sprint("Error decrypting notes. Possibly wrong password."))
		Logger.Debugf("Load error: %v", note.LoadErr)
	case !note.Exists:
		fmt.Fprintln(out, "Password verified. Creating new encrypted note.")
	default:
		Logger.Infof("Loaded %s (%s)", note.Path, note.ReadCipher)
	}

	if console.Interactive() && cfg.Config.Editor.Banner {
		printBanner(out)
	}

	res, err := workflows.Edit(ctx, workflows.EditOptions{
		Note:   note,
		Reader: console,
		Out:    out,
		Logger: Logger,
	})
	if err != nil {
		return 0, err
	}
	if res.SaveErr != nil {
		Logger.Errorf("Final save failed: %v", res.SaveErr)
		return 1, nil
	}
	return 0, nil
}
