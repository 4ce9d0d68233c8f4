// Package store persists encrypted notes on disk.
//
// Each note is one file, <dir>/<file id>.enc, holding a single envelope
// in its text form:
//
//	<ivHex>:<cipherHex>
//
// The directory is created with 0700 permissions the first time a note is
// loaded or saved. Files are written with 0600 permissions and replaced
// whole on every save.
//
// Load distinguishes three outcomes: no file (found == false), a file that
// is not an envelope (ErrCorruptEnvelope), and an I/O failure (ErrStorage).
package store
