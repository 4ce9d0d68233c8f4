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

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	Dir        string
	Passphrase *keys.Passphrase

	// To is the cipher mode to re-encrypt with.
	To envelope.Mode

	// Force rewrites the note even if it already uses To, giving it a fresh IV.
	Force bool

	// DryRun reports what would change without writing.
	DryRun bool

	Trail *audit.Trail
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	ID    keys.FileID
	Path  string
	From  envelope.Mode
	To    envelope.Mode
	Lines int

	// Migrated is true if the note was rewritten, or would be on a dry run.
	Migrated bool
	DryRun   bool
}

// Migrate decrypts the note for a passphrase and writes it back with
// another cipher mode. The note text is unchanged.
//
// Returns ErrNoteNotFound if no note exists for the passphrase.
// Returns ErrCorruptEnvelope or ErrDecryptFailed if the note cannot be read.
func Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	if opts.Passphrase == nil {
		return nil, errors.New("migrating note: passphrase is required")
	}

	key, id := opts.Passphrase.Derive()
	defer key.Wipe()

	st := store.New(opts.Dir)
	codec := envelope.NewCodec(opts.To)
	text, from, found, err := readNote(ctx, st, codec, id, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, jerrors.ErrNoteNotFound
	}

	result := &MigrateResult{
		ID:       id,
		Path:     st.Path(id),
		From:     from,
		To:       opts.To,
		Lines:    buffer.FromText(text).Len(),
		Migrated: from != opts.To || opts.Force,
		DryRun:   opts.DryRun,
	}
	if !result.Migrated || opts.DryRun {
		return result, nil
	}

	env, err := codec.Encrypt(text, key)
	if err != nil {
		return nil, err
	}
	if err := st.Save(ctx, id, env); err != nil {
		return nil, err
	}

	opts.Trail.Record(audit.Entry{
		Operation:  audit.OpMigrate,
		FileID:     id.String(),
		Cipher:     opts.To.String(),
		FromCipher: from.String(),
		Lines:      result.Lines,
	})
	return result, nil
}
