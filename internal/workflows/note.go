package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/buffer"
	"github.com/PolarWolf314/jaylock/internal/envelope"
	"github.com/PolarWolf314/jaylock/internal/keys"
	logger "github.com/PolarWolf314/jaylock/internal/logging"
	"github.com/PolarWolf314/jaylock/internal/session"
	"github.com/PolarWolf314/jaylock/internal/store"
)

// OpenOptions configures the Open workflow.
type OpenOptions struct {
	// Dir is the notes directory.
	Dir string

	Passphrase *keys.Passphrase

	// Cipher is the mode used when the note is saved.
	Cipher envelope.Mode

	// Trail records the open and every save. May be nil.
	Trail *audit.Trail

	Logger logger.Logger
}

// Note is a decrypted note together with what is needed to save it again.
type Note struct {
	ID   keys.FileID
	Path string
	Text string

	// Exists reports whether a file was found for the passphrase.
	Exists bool

	// ReadCipher is the mode the existing file was written with.
	ReadCipher envelope.Mode

	// WriteCipher is the mode used by Save.
	WriteCipher envelope.Mode

	// LoadErr is set when an existing file could not be read or decrypted.
	// Text is empty in that case.
	LoadErr error

	// BackupPath is set once an unreadable file has been copied aside
	// before being overwritten.
	BackupPath string

	key   keys.Key
	store *store.Store
	codec *envelope.Codec
	trail *audit.Trail
	log   logger.Logger
}

// Open derives the key and identifier from the passphrase and loads the
// note. A missing file is a new, empty note and is not audited. A file
// that cannot be loaded or decrypted also yields an empty note, with the
// failure in LoadErr.
func Open(ctx context.Context, opts OpenOptions) (*Note, error) {
	if opts.Passphrase == nil {
		return nil, errors.New("opening note: passphrase is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, id := opts.Passphrase.Derive()
	st := store.New(opts.Dir)
	n := &Note{
		ID:          id,
		Path:        st.Path(id),
		WriteCipher: opts.Cipher,
		key:         key,
		store:       st,
		codec:       envelope.NewCodec(opts.Cipher),
		trail:       opts.Trail,
		log:         opts.Logger,
	}

	text, mode, found, err := readNote(ctx, st, n.codec, id, key)
	n.Exists = found
	entry := audit.Entry{Operation: audit.OpOpen, FileID: id.String()}
	if err != nil {
		n.LoadErr = err
		entry.Error = err.Error()
		opts.Logger.Debugf("Loading %s failed: %v", n.Path, err)
	} else {
		n.Text = text
		entry.Lines = buffer.FromText(text).Len()
		if found {
			n.ReadCipher = mode
			entry.Cipher = mode.String()
		}
	}
	// The identifier derives from the passphrase; record nothing until a file exists.
	if found {
		n.trail.Record(entry)
	}

	opts.Logger.Infof("Opened note %s (existing: %t)", ShortID(id.String()), found)
	return n, nil
}

// Save encrypts text with the note's write cipher and replaces the file.
// The first save over an unreadable file copies it aside first and fails
// if that copy cannot be made.
func (n *Note) Save(ctx context.Context, text string) error {
	if n.LoadErr != nil && n.Exists && n.BackupPath == "" {
		backup, err := n.store.Backup(ctx, n.ID)
		if err != nil {
			return fmt.Errorf("refusing to overwrite unreadable note: %w", err)
		}
		n.BackupPath = backup
		n.log.WarnfAlways("Previous unreadable note copied to %s", backup)
	}

	env, err := n.codec.Encrypt(text, n.key)
	if err != nil {
		return err
	}
	if err := n.store.Save(ctx, n.ID, env); err != nil {
		return err
	}

	n.Exists = true
	n.trail.Record(audit.Entry{
		Operation: audit.OpSave,
		FileID:    n.ID.String(),
		Cipher:    n.WriteCipher.String(),
		Lines:     buffer.FromText(text).Len(),
	})
	n.log.Debugf("Wrote %s", n.Path)
	return nil
}

// Saver returns a session.Saver bound to the note. Saves ignore ctx
// cancellation so the save that follows an interrupt still completes.
func (n *Note) Saver(ctx context.Context) session.Saver {
	saveCtx := context.WithoutCancel(ctx)
	return session.SaverFunc(func(text string) error {
		return n.Save(saveCtx, text)
	})
}

// Close wipes the key. Saves after Close write garbage and must not happen.
func (n *Note) Close() {
	n.key.Wipe()
}

// readNote loads and decrypts a note. found is false when no file exists.
func readNote(ctx context.Context, st *store.Store, codec *envelope.Codec, id keys.FileID, key keys.Key) (text string, mode envelope.Mode, found bool, err error) {
	env, found, err := st.Load(ctx, id)
	if err != nil || !found {
		return "", 0, found, err
	}
	mode, err = envelope.DetectMode(env)
	if err != nil {
		return "", 0, true, err
	}
	text, err = codec.Decrypt(env, key)
	if err != nil {
		return "", mode, true, err
	}
	return text, mode, true, nil
}

// ShortID abbreviates a file identifier for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
