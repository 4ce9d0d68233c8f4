package envelope

import (
	"encoding/hex"
	"fmt"
	"strings"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

// Separator joins the IV and ciphertext segments. Hex never produces it.
const Separator = ":"

// Envelope is the persisted form of a note.
type Envelope struct {
	IV         []byte
	CipherText []byte
}

// String renders the envelope as <ivHex>:<cipherHex>.
func (e Envelope) String() string {
	return hex.EncodeToString(e.IV) + Separator + hex.EncodeToString(e.CipherText)
}

// Parse reads an envelope written by String. Surrounding whitespace is
// ignored so hand-edited files with a trailing newline still load.
func Parse(s string) (Envelope, error) {
	ivHex, cipherHex, ok := strings.Cut(strings.TrimSpace(s), Separator)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: missing %q separator", jerrors.ErrCorruptEnvelope, Separator)
	}
	if ivHex == "" || cipherHex == "" {
		return Envelope{}, fmt.Errorf("%w: empty segment", jerrors.ErrCorruptEnvelope)
	}
	if strings.Contains(cipherHex, Separator) {
		return Envelope{}, fmt.Errorf("%w: too many segments", jerrors.ErrCorruptEnvelope)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: iv: %v", jerrors.ErrCorruptEnvelope, err)
	}
	ct, err := hex.DecodeString(cipherHex)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: ciphertext: %v", jerrors.ErrCorruptEnvelope, err)
	}

	return Envelope{IV: iv, CipherText: ct}, nil
}
