package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/buffer"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/ui"
	"github.com/PolarWolf314/jaylock/internal/workflows"
	"github.com/spf13/cobra"
)

var catNumbered bool

func init() {
	catCmd.Flags().BoolVarP(&catNumbered, "numbered", "n", false, "prefix each line with its line number")
}

// resetCatCommandState resets the cat command's global state for testing.
func resetCatCommandState() {
	catNumbered = false
}

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Print the note for a password",
	Long: `Decrypts the note for a password and prints it without opening the editor.

The password is asked for once. Nothing is written, so a wrong password is
harmless: it simply has no note.

Examples:
  jaylock cat                 # Print the note
  jaylock cat -n              # Print with line numbers
  jaylock cat > backup.txt    # Export the plaintext`,
	Args: cobra.NoArgs,
	RunE: runCat,
}

func runCat(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting cat command")

	cfg, err := loadSettings()
	if err != nil {
		fail("Failed to load configuration", err)
		return nil
	}

	console, err := openConsole()
	if err != nil {
		fail("Failed to open terminal", err)
		return nil
	}
	defer console.Close()
	out := console.Output()

	pass, err := workflows.ReadPassphrase(workflows.PassphraseOptions{Prompt: console})
	if errors.Is(err, jerrors.ErrInterrupted) {
		return nil
	}
	if err != nil {
		fail("Failed to read password", err)
		return nil
	}
	defer pass.Destroy()

	result, err := workflows.Cat(context.Background(), workflows.CatOptions{
		Dir:        cfg.Dir,
		Passphrase: pass,
		Trail:      audit.NewTrail(cfg.Dir),
	})
	if err != nil {
		fmt.Fprintln(out, formatCatError(err))
		if isCatUnexpectedError(err) {
			return err
		}
		exitFunc(1)
		return nil
	}

	Logger.Infof("Decrypted %s (%s, %d lines)", result.Path, result.Cipher, result.Lines)

	if result.Text == "" {
		return nil
	}
	if !catNumbered {
		fmt.Fprint(out, ui.EnsureNewline(result.Text))
		return nil
	}
	for i, line := range buffer.FromText(result.Text).Lines() {
		fmt.Fprintf(out, "%s %s\n", ui.LineNumber.Sprintf("%d:", i+1), line)
	}
	return nil
}

// formatCatError formats a cat error for display to the user.
func formatCatError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrNoteNotFound):
		return ui.Error.Sprint("✗") + " No note found for this password"

	case errors.Is(err, jerrors.ErrDecryptFailed), errors.Is(err, jerrors.ErrCorruptEnvelope):
		return ui.Error.Sprint("✗") + " Error decrypting notes. Possibly wrong password.\n" +
			ui.Info.Sprint("→") + " Run " + ui.Command.Sprint("jaylock doctor") + " to check the note files"

	default:
		return ui.Error.Sprint("✗") + " Failed to read note: " + err.Error()
	}
}

// isCatUnexpectedError returns true if the error is unexpected and should be returned from RunE.
func isCatUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrNoteNotFound),
		errors.Is(err, jerrors.ErrDecryptFailed),
		errors.Is(err, jerrors.ErrCorruptEnvelope):
		return false
	default:
		return true
	}
}
