package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/jaylock/internal/envelope"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"github.com/bmatcuk/doublestar/v4"
)

// Extension is appended to every note file name.
const Extension = ".enc"

const (
	dirPerm  = 0700
	filePerm = 0600
)

// Store keeps one envelope file per FileID in a single directory.
type Store struct {
	dir string
}

// Entry describes a note file found by List.
type Entry struct {
	ID      keys.FileID
	Path    string
	Size    int64
	ModTime time.Time
	Mode    fs.FileMode
}

// New returns a store rooted at dir. The directory is created on first use.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns where the note for id lives.
func (s *Store) Path(id keys.FileID) string {
	return filepath.Join(s.dir, id.String()+Extension)
}

// Exists reports whether a note file exists for id.
func (s *Store) Exists(id keys.FileID) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Load reads the envelope for id. found is false only when no file exists;
// a file that exists but cannot be read or parsed is found with an error.
func (s *Store) Load(ctx context.Context, id keys.FileID) (env envelope.Envelope, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return env, false, err
	}
	if err := s.ensureDir(); err != nil {
		return env, false, err
	}

	data, err := os.ReadFile(s.Path(id))
	if os.IsNotExist(err) {
		return env, false, nil
	}
	if err != nil {
		// Something is there, so callers must not treat it as a new note.
		return env, true, fmt.Errorf("%w: reading %s: %v", jerrors.ErrStorage, s.Path(id), err)
	}

	env, err = envelope.Parse(string(data))
	if err != nil {
		return env, true, err
	}
	return env, true, nil
}

// Save replaces the note for id with env. The new content is written to a
// temporary file in the same directory and renamed over the old one, so a
// crash never leaves a half-written note.
func (s *Store) Save(ctx context.Context, id keys.FileID, env envelope.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+id.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", jerrors.ErrStorage, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(env.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing %s: %v", jerrors.ErrStorage, tmpPath, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod %s: %v", jerrors.ErrStorage, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", jerrors.ErrStorage, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", jerrors.ErrStorage, tmpPath, err)
	}

	if err := os.Rename(tmpPath, s.Path(id)); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", jerrors.ErrStorage, s.Path(id), err)
	}
	return nil
}

// BackupSuffix is appended to a note's path by Backup.
const BackupSuffix = ".bak"

// Backup copies the current file for id next to it with BackupSuffix,
// replacing any older backup. It returns the backup path.
func (s *Store) Backup(ctx context.Context, id keys.FileID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", jerrors.ErrStorage, s.Path(id), err)
	}
	backup := s.Path(id) + BackupSuffix
	if err := os.WriteFile(backup, data, filePerm); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", jerrors.ErrStorage, backup, err)
	}
	return backup, nil
}

// List returns every note file in the directory, sorted by identifier.
// Files whose names are not valid identifiers are returned with an empty ID.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(s.dir), "*"+Extension)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", jerrors.ErrStorage, s.dir, err)
	}

	entries := make([]Entry, 0, len(matches))
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		id, _ := keys.ParseFileID(strings.TrimSuffix(name, Extension))
		entries = append(entries, Entry{
			ID:      id,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode().Perm(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		return fmt.Errorf("%w: creating %s: %v", jerrors.ErrStorage, s.dir, err)
	}
	return nil
}
