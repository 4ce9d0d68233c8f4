package envelope

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"unicode/utf8"

	jerrors "github.com/PolarWolf314/jaylock/internal/errors"
	"github.com/PolarWolf314/jaylock/internal/keys"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const secretboxInfo = "jaylock secretbox v1"

// Codec encrypts note text into envelopes and back.
type Codec struct {
	// Mode is used for Encrypt. Decrypt detects the mode from the envelope.
	Mode Mode

	random io.Reader
}

// NewCodec returns a codec that writes with mode m.
func NewCodec(m Mode) *Codec {
	return &Codec{Mode: m, random: rand.Reader}
}

// Encrypt seals plaintext under key with a fresh random IV.
func (c *Codec) Encrypt(plaintext string, key keys.Key) (Envelope, error) {
	iv := make([]byte, c.Mode.IVSize())
	if len(iv) == 0 {
		return Envelope{}, fmt.Errorf("%w: %d", jerrors.ErrUnknownCipherMode, c.Mode)
	}
	if _, err := io.ReadFull(c.rand(), iv); err != nil {
		return Envelope{}, fmt.Errorf("failed to generate iv: %w", err)
	}

	var (
		ct  []byte
		err error
	)
	switch c.Mode {
	case ModeCBC:
		ct, err = encryptCBC([]byte(plaintext), key, iv)
	case ModeSecretbox:
		ct, err = encryptSecretbox([]byte(plaintext), key, iv)
	}
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{IV: iv, CipherText: ct}, nil
}

// Decrypt opens env with key. Every failure wraps ErrDecryptFailed: a
// malformed IV, bad padding, a failed authentication tag, or plaintext
// that is not valid UTF-8.
//
// CBC envelopes are unauthenticated, so a wrong key is usually caught by
// the padding or UTF-8 checks but may in rare cases return garbage text.
func (c *Codec) Decrypt(env Envelope, key keys.Key) (string, error) {
	mode, err := DetectMode(env)
	if err != nil {
		return "", err
	}

	var pt []byte
	switch mode {
	case ModeCBC:
		pt, err = decryptCBC(env, key)
	case ModeSecretbox:
		pt, err = decryptSecretbox(env, key)
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(pt) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", jerrors.ErrDecryptFailed)
	}
	return string(pt), nil
}

func (c *Codec) rand() io.Reader {
	if c.random == nil {
		return rand.Reader
	}
	return c.random
}

func encryptCBC(plaintext []byte, key keys.Key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)
	return ct, nil
}

func decryptCBC(env Envelope, key keys.Key) ([]byte, error) {
	if len(env.CipherText) == 0 || len(env.CipherText)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext is not a whole number of blocks", jerrors.ErrDecryptFailed)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	pt := make([]byte, len(env.CipherText))
	cipher.NewCBCDecrypter(block, env.IV).CryptBlocks(pt, env.CipherText)

	return unpad(pt, aes.BlockSize)
}

func encryptSecretbox(plaintext []byte, key keys.Key, iv []byte) ([]byte, error) {
	subKey, err := secretboxKey(key)
	if err != nil {
		return nil, err
	}
	defer subKey.Wipe()

	var nonce [secretboxNonceSize]byte
	copy(nonce[:], iv)

	return secretbox.Seal(nil, plaintext, &nonce, (*[keys.KeySize]byte)(&subKey)), nil
}

func decryptSecretbox(env Envelope, key keys.Key) ([]byte, error) {
	if len(env.CipherText) < secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than authentication tag", jerrors.ErrDecryptFailed)
	}

	subKey, err := secretboxKey(key)
	if err != nil {
		return nil, err
	}
	defer subKey.Wipe()

	var nonce [secretboxNonceSize]byte
	copy(nonce[:], env.IV)

	pt, ok := secretbox.Open(nil, env.CipherText, &nonce, (*[keys.KeySize]byte)(&subKey))
	if !ok {
		return nil, fmt.Errorf("%w: authentication failed", jerrors.ErrDecryptFailed)
	}
	return pt, nil
}

// secretboxKey derives a mode-specific subkey so the same passphrase never
// keys two different ciphers with identical bytes.
func secretboxKey(key keys.Key) (keys.Key, error) {
	var sub keys.Key
	r := hkdf.New(sha256.New, key[:], nil, []byte(secretboxInfo))
	if _, err := io.ReadFull(r, sub[:]); err != nil {
		return sub, fmt.Errorf("failed to derive secretbox key: %w", err)
	}
	return sub, nil
}

func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append(make([]byte, 0, len(b)+n), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", jerrors.ErrDecryptFailed)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", jerrors.ErrDecryptFailed)
		}
	}
	return b[:len(b)-n], nil
}
