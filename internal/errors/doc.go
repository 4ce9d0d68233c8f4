// Package errors provides typed error values for jaylock.
//
// Callers check for specific conditions with errors.Is() instead of
// matching on message text. Internal packages wrap these sentinels with
// context using fmt.Errorf and %w.
//
// # Error Categories
//
//   - Codec errors: ErrDecryptFailed, ErrInvalidIV, ErrInvalidKeyLength
//   - Storage errors: ErrCorruptEnvelope, ErrStorage, ErrNoteNotFound
//   - Editing errors: ErrIndexOutOfRange
//   - Session errors: ErrPassphraseMismatch, ErrInterrupted
//
// # Recovery
//
// Decryption and envelope errors are recovered at load time by starting
// from an empty note. Index errors are reported to the user and leave the
// buffer untouched. Only ErrPassphraseMismatch ends the process with a
// non-zero exit code.
//
//	env, found, err := st.Load(ctx, id)
//	if errors.Is(err, jerrors.ErrCorruptEnvelope) {
//	    // warn and start with an empty note
//	}
package errors
