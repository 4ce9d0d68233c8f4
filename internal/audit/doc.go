// Package audit keeps a local record of note operations.
//
// Opening, saving, discarding, printing and migrating a note each append
// one line to a JSON Lines file next to the encrypted notes:
//
//	~/.jaylock/audit.jsonl
//
// Each entry contains:
//   - Timestamp (UTC with microseconds)
//   - A session ID shared by every entry from one process
//   - Operation name and the note's file identifier
//   - Operation-specific details (cipher mode, line count, exit reason)
//
// Entries never contain note text or passphrases. The file identifier is
// already the note's file name, so the log reveals nothing the directory
// listing does not.
//
// # Usage
//
//	trail := audit.NewTrail(notesDir)
//	trail.Record(audit.Entry{Operation: audit.OpSave, FileID: id.String(), Lines: n})
//
// # Failure Handling
//
// Audit logging is best-effort. A failed write is dropped silently and the
// operation continues.
package audit
