package keys

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
)

// KeySize is the length of a SymmetricKey in bytes (AES-256).
const KeySize = sha256.Size

// FileIDLength is the length of a FileID's hex rendering.
const FileIDLength = md5.Size * 2

// Key is the symmetric key for one passphrase.
type Key [KeySize]byte

// Wipe overwrites the key with zeros.
func (k *Key) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// FileID names a note on disk. It is not secret, but it is derived with a
// different digest than the Key so the two are never interchangeable.
type FileID string

func (id FileID) String() string {
	return string(id)
}

// DeriveKey returns SHA-256(passphrase). No salt is used: the passphrase
// alone must find and open its note.
func DeriveKey(passphrase []byte) Key {
	return sha256.Sum256(passphrase)
}

// DeriveFileID returns the MD5 digest of the passphrase as lowercase hex.
func DeriveFileID(passphrase []byte) FileID {
	sum := md5.Sum(passphrase) // #nosec G401 -- used as a lookup name, not for secrecy
	return FileID(hex.EncodeToString(sum[:]))
}

// ParseFileID validates a hex identifier taken from a file name.
func ParseFileID(s string) (FileID, error) {
	if len(s) != FileIDLength {
		return "", fmt.Errorf("file identifier %q must be %d hex characters", s, FileIDLength)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("file identifier %q is not hex: %w", s, err)
	}
	for _, c := range s {
		if c >= 'A' && c <= 'F' {
			return "", fmt.Errorf("file identifier %q must be lowercase", s)
		}
	}
	return FileID(s), nil
}

// KeyFromBytes copies a raw key, validating its length.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: expected %d bytes, got %d", jerrors.ErrInvalidKeyLength, KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}
