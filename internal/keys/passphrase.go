package keys

import (
	"crypto/subtle"

	"github.com/awnumar/memguard"
)

// Passphrase holds the user's secret in locked, non-swappable memory for
// the lifetime of a session.
type Passphrase struct {
	buf *memguard.LockedBuffer
}

// NewPassphrase moves b into a locked buffer. b is wiped.
func NewPassphrase(b []byte) *Passphrase {
	p := &Passphrase{buf: memguard.NewBufferFromBytes(b)}
	memguard.WipeBytes(b)
	return p
}

// Bytes exposes the passphrase. The slice is only valid until Destroy.
func (p *Passphrase) Bytes() []byte {
	return p.buf.Bytes()
}

// Equal compares two passphrases in constant time.
func (p *Passphrase) Equal(other *Passphrase) bool {
	return subtle.ConstantTimeCompare(p.Bytes(), other.Bytes()) == 1
}

// Derive returns the key and file identifier for the passphrase.
func (p *Passphrase) Derive() (Key, FileID) {
	b := p.Bytes()
	return DeriveKey(b), DeriveFileID(b)
}

// Destroy wipes and releases the passphrase. Safe to call more than once.
func (p *Passphrase) Destroy() {
	p.buf.Destroy()
}
