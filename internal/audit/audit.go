package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the audit log's name inside the notes directory.
const FileName = "audit.jsonl"

// TimeFormat is the layout of Entry.Timestamp.
const TimeFormat = "2006-01-02T15:04:05.000000Z"

// Operation names.
const (
	OpOpen    = "open"
	OpSave    = "save"
	OpDiscard = "discard"
	OpCat     = "cat"
	OpMigrate = "migrate"
)

// Entry represents a single audit log entry. It never holds note text.
type Entry struct {
	Timestamp string `json:"ts"`      // UTC with microseconds.
	Session   string `json:"session"` // Random per-process session ID.
	Operation string `json:"op"`
	FileID    string `json:"file"`

	// Optional fields depending on operation.
	Cipher     string `json:"cipher,omitempty"`      // Mode used to write, or found on read.
	FromCipher string `json:"from_cipher,omitempty"` // For migrate.
	Lines      int    `json:"lines,omitempty"`       // For open/save.
	Reason     string `json:"reason,omitempty"`      // How the session ended.
	Error      string `json:"error,omitempty"`
}

// Trail appends entries for one process run to the log in a notes directory.
type Trail struct {
	dir     string
	session string
}

// NewTrail returns a trail writing to dir with a fresh session ID.
func NewTrail(dir string) *Trail {
	return &Trail{dir: dir, session: uuid.NewString()}
}

// Session returns the ID stamped on every entry from this trail.
func (t *Trail) Session() string {
	return t.session
}

// Path returns the path to the audit log file.
func (t *Trail) Path() string {
	return LogPath(t.dir)
}

// Record stamps entry with the time and session and appends it.
// A nil Trail records nothing.
func (t *Trail) Record(entry Entry) {
	if t == nil {
		return
	}
	entry.Session = t.session
	Log(t.dir, entry)
}

// Log appends an entry to the audit log in dir.
// Failures are ignored: a note operation never fails because auditing did.
func Log(dir string, entry Entry) {
	if dir == "" {
		return
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimeFormat)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	f, err := os.OpenFile(LogPath(dir), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path of the audit log in dir.
func LogPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// ReadEntries reads all entries from the audit log in dir.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(dir string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are skipped so a torn final write does not hide the rest.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
