package errors

import "errors"

// Codec errors indicate failures while turning an envelope back into text.
var (
	// ErrDecryptFailed indicates the envelope could not be decrypted with the given key.
	ErrDecryptFailed = errors.New("failed to decrypt note")

	// ErrInvalidIV indicates the envelope's IV has a length no cipher mode accepts.
	ErrInvalidIV = errors.New("invalid initialization vector length")

	// ErrInvalidKeyLength indicates the symmetric key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid symmetric key length")

	// ErrUnknownCipherMode indicates an unsupported cipher mode name.
	ErrUnknownCipherMode = errors.New("unknown cipher mode")
)

// Storage errors indicate issues reading or writing the notes directory.
var (
	// ErrCorruptEnvelope indicates a note file exists but is not a valid envelope.
	ErrCorruptEnvelope = errors.New("note file is not a valid envelope")

	// ErrStorage indicates an I/O failure while loading or saving a note.
	ErrStorage = errors.New("note storage failure")

	// ErrNoteNotFound indicates no note exists for the given passphrase.
	ErrNoteNotFound = errors.New("note not found")

	// ErrNoAuditLog indicates the notes directory has no audit log yet.
	ErrNoAuditLog = errors.New("no audit log found")
)

// Editing errors.
var (
	// ErrIndexOutOfRange indicates a line number outside the buffer's valid range.
	ErrIndexOutOfRange = errors.New("line number out of range")

	// ErrInvalidDateFormat indicates a --since or --until value is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Session errors indicate the interactive flow could not start or was cut short.
var (
	// ErrPassphraseMismatch indicates the confirmation did not equal the first entry.
	ErrPassphraseMismatch = errors.New("passphrases do not match")

	// ErrInterrupted indicates the user aborted input with an interrupt.
	ErrInterrupted = errors.New("interrupted")
)
