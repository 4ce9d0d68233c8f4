package workflows

import (
	"context"
	"errors"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/buffer"
	"github.com/PolarWolf314/jaylock/internal/envelope"
	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"github.com/PolarWolf314/jaylock/internal/store"
)

// CatOptions configures the cat workflow.
type CatOptions struct {
	Dir        string
	Passphrase *keys.Passphrase
	Trail      *audit.Trail
}

// CatResult contains a decrypted note.
type CatResult struct {
	ID     keys.FileID
	Path   string
	Text   string
	Cipher envelope.Mode
	Lines  int
}

// Cat decrypts the note for a passphrase without opening an editor.
//
// Returns ErrNoteNotFound if no note exists for the passphrase.
// Returns ErrCorruptEnvelope or ErrDecryptFailed if the note cannot be read.
func Cat(ctx context.Context, opts CatOptions) (*CatResult, error) {
	if opts.Passphrase == nil {
		return nil, errors.New("reading note: passphrase is required")
	}

	key, id := opts.Passphrase.Derive()
	defer key.Wipe()

	st := store.New(opts.Dir)
	text, mode, found, err := readNote(ctx, st, envelope.NewCodec(envelope.ModeCBC), id, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, jerrors.ErrNoteNotFound
	}

	result := &CatResult{
		ID:     id,
		Path:   st.Path(id),
		Text:   text,
		Cipher: mode,
		Lines:  buffer.FromText(text).Len(),
	}
	opts.Trail.Record(audit.Entry{
		Operation: audit.OpCat,
		FileID:    id.String(),
		Cipher:    mode.String(),
		Lines:     result.Lines,
	})
	return result, nil
}
