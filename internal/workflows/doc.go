// Package workflows provides high-level orchestration for jaylock commands.
//
// Workflows coordinate the keys, envelope, store, session and audit
// packages to implement complete user-facing features. Each workflow
// handles a single command's logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Deriving the key and file identifier from the passphrase
//   - Loading, decrypting, encrypting and saving notes
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - ReadPassphrase: Prompts for a passphrase, optionally twice
//   - Open and Edit: Load a note and run the interactive editor over it
//   - Cat: Decrypts a note for printing
//   - Migrate: Re-encrypts a note with another cipher mode
//   - Doctor: Checks the notes directory and config for problems
//   - Log: Reads and filters the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Cat(ctx, opts)
//	if errors.Is(err, jerrors.ErrNoteNotFound) {
//	    // Tell the user no note exists for that passphrase
//	}
//
// Open is the exception: a note that cannot be read is reported in
// Note.LoadErr and the session starts from an empty document.
package workflows
