package workflows

import (
	"fmt"
	"io"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"github.com/PolarWolf314/jaylock/internal/terminal"
)

// PassphrasePrompt is shown for every passphrase entry.
const PassphrasePrompt = "Password: "

// PassphraseOptions configures ReadPassphrase.
type PassphraseOptions struct {
	Prompt terminal.SecretPrompt

	// Out receives the verification message between the two entries.
	Out io.Writer

	// Confirm asks for the passphrase a second time and requires a match.
	Confirm bool
}

// ReadPassphrase reads a passphrase into locked memory.
//
// Returns ErrPassphraseMismatch if Confirm is set and the entries differ.
// Returns ErrInterrupted if the user pressed Ctrl+C at either prompt.
func ReadPassphrase(opts PassphraseOptions) (*keys.Passphrase, error) {
	first, err := opts.Prompt.ReadSecret(PassphrasePrompt)
	if err != nil {
		return nil, err
	}
	pass := keys.NewPassphrase(first)
	if !opts.Confirm {
		return pass, nil
	}

	if opts.Out != nil {
		fmt.Fprintln(opts.Out, "Please verify your password:")
	}
	second, err := opts.Prompt.ReadSecret(PassphrasePrompt)
	if err != nil {
		pass.Destroy()
		return nil, err
	}
	check := keys.NewPassphrase(second)
	defer check.Destroy()

	if !pass.Equal(check) {
		pass.Destroy()
		return nil, jerrors.ErrPassphraseMismatch
	}
	return pass, nil
}
