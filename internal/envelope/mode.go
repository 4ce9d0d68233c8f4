package envelope

import (
	"crypto/aes"
	"fmt"
	"strings"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

// Mode selects the cipher used to write a note.
type Mode int

const (
	// ModeCBC is AES-256-CBC with PKCS#7 padding, the legacy jaylock file
	// format. It carries no integrity check.
	ModeCBC Mode = iota
	// ModeSecretbox is NaCl secretbox (XSalsa20-Poly1305). Tampering or a
	// wrong key is always detected.
	ModeSecretbox
)

const secretboxNonceSize = 24

// Modes lists every supported mode.
var Modes = []Mode{ModeCBC, ModeSecretbox}

func (m Mode) String() string {
	switch m {
	case ModeCBC:
		return "cbc"
	case ModeSecretbox:
		return "secretbox"
	default:
		return "unknown"
	}
}

// IVSize is the IV length the mode writes and expects.
func (m Mode) IVSize() int {
	switch m {
	case ModeCBC:
		return aes.BlockSize
	case ModeSecretbox:
		return secretboxNonceSize
	default:
		return 0
	}
}

// Authenticated reports whether decryption verifies integrity.
func (m Mode) Authenticated() bool {
	return m == ModeSecretbox
}

// ParseMode converts a config or flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected cbc or secretbox)", jerrors.ErrUnknownCipherMode, s)
}

// DetectMode infers the mode an envelope was written with from its IV length.
func DetectMode(env Envelope) (Mode, error) {
	for _, m := range Modes {
		if len(env.IV) == m.IVSize() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %d bytes", jerrors.ErrDecryptFailed, jerrors.ErrInvalidIV, len(env.IV))
}
