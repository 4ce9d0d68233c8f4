package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/jaylock/internal/audit"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/ui"
	"github.com/PolarWolf314/jaylock/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	migrateForce  bool
	migrateDryRun bool
)

func init() {
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "rewrite the note even if it already uses the target cipher")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "show what would change without writing")
}

// resetMigrateCommandState resets the migrate command's global state for testing.
func resetMigrateCommandState() {
	migrateForce = false
	migrateDryRun = false
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Re-encrypt the note for a password with another cipher",
	Long: `Decrypts the note for a password and writes it back with the cipher
selected by --cipher or the config file. The note text does not change.

Notes written with cbc can be read by every jaylock release. Notes written
with secretbox are authenticated, so tampering is detected on open.

Examples:
  jaylock migrate --cipher secretbox           # Upgrade to secretbox
  jaylock migrate --cipher cbc                 # Go back to the legacy format
  jaylock migrate --cipher secretbox --dry-run # Preview only
  jaylock migrate --force                      # Rewrite with a fresh IV`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting migrate command")
	Logger.Debugf("Flags: force=%t, dry-run=%t", migrateForce, migrateDryRun)

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

	pass, err := workflows.ReadPassphrase(workflows.PassphraseOptions{Prompt: console})
	if errors.Is(err, jerrors.ErrInterrupted) {
		return nil
	}
	if err != nil {
		fail("Failed to read password", err)
		return nil
	}
	defer pass.Destroy()

	spinner, cleanup := startSpinner("Migrating note...", verbose)
	defer cleanup()

	result, err := workflows.Migrate(context.Background(), workflows.MigrateOptions{
		Dir:        cfg.Dir,
		Passphrase: pass,
		To:         cfg.Cipher,
		Force:      migrateForce,
		DryRun:     migrateDryRun,
		Trail:      audit.NewTrail(cfg.Dir),
	})
	if err != nil {
		spinner.FinalMSG = formatMigrateError(err)
		if isMigrateUnexpectedError(err) {
			return err
		}
		cleanup()
		exitFunc(1)
		return nil
	}

	Logger.Debugf("Note %s: from=%s to=%s lines=%d", result.Path, result.From, result.To, result.Lines)

	id := ui.Highlight.Sprint(workflows.ShortID(result.ID.String()))
	switch {
	case !result.Migrated:
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + fmt.Sprintf(" Note %s already uses %s", id, ui.Highlight.Sprint(result.To)) + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Command.Sprint("--force") + " to rewrite it anyway"
	case result.DryRun:
		spinner.FinalMSG = ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would migrate note %s from %s to %s (%d lines)",
			id, ui.Highlight.Sprint(result.From), ui.Highlight.Sprint(result.To), result.Lines) + "\n" +
			ui.Info.Sprint("→") + " No changes made"
	default:
		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Migrated note %s from %s to %s",
			id, ui.Highlight.Sprint(result.From), ui.Highlight.Sprint(result.To))
	}
	return nil
}

// formatMigrateError formats a migrate error for display to the user.
func formatMigrateError(err error) string {
	switch {
	case errors.Is(err, jerrors.ErrNoteNotFound):
		return ui.Error.Sprint("✗") + " No note found for this password"

	case errors.Is(err, jerrors.ErrDecryptFailed), errors.Is(err, jerrors.ErrCorruptEnvelope):
		return ui.Error.Sprint("✗") + " Error decrypting notes. Possibly wrong password.\n" +
			ui.Info.Sprint("→") + " Nothing was rewritten"

	default:
		return ui.Error.Sprint("✗") + " Failed to migrate note: " + err.Error()
	}
}

// isMigrateUnexpectedError returns true if the error is unexpected and should be returned from RunE.
func isMigrateUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, jerrors.ErrNoteNotFound),
		errors.Is(err, jerrors.ErrDecryptFailed),
		errors.Is(err, jerrors.ErrCorruptEnvelope):
		return false
	default:
		return true
	}
}
