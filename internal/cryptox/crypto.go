// Package cryptox provides the crypto primitives of the sync core: key
// derivation for the local store, authenticated sealing for cached content,
// and content digest computation/verification.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the size in bytes of keys used to seal cached content.
const KeySize = chacha20poly1305.KeySize

// DeriveMasterKey stretches a passphrase into a 32-byte key using argon2id.
// The same passphrase and salt always produce the same key.
func DeriveMasterKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// NewSecret returns a fresh random 32-byte content key.
func NewSecret() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generating secret: %w", err)
	}
	return key, nil
}

// SaltSize is the size in bytes of key-derivation salts.
const SaltSize = 16

// NewSalt returns a fresh random key-derivation salt.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// Wipe zeroes the slice so sensitive material does not linger in memory.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Seal encrypts plaintext with XChaCha20-Poly1305 under key. The random
// 24-byte nonce is prepended to the returned ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal.
func Open(key, sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("sealed blob too short: %d bytes", len(sealed))
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("opening sealed blob: %w", err)
	}
	return plaintext, nil
}

// Digest returns the SHA-256 digest of data.
func Digest(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// DigestReader computes the SHA-256 digest of everything read through r.
func DigestReader(r io.Reader) ([]byte, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// DigestEqual compares two digests in constant time.
func DigestEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// VerifyingReader wraps an io.Reader and hashes everything read through it.
// Callers drain the reader, then call Verify against an expected digest.
type VerifyingReader struct {
	r io.Reader
	h hash.Hash
}

func NewVerifyingReader(r io.Reader) *VerifyingReader {
	return &VerifyingReader{r: r, h: sha256.New()}
}

func (v *VerifyingReader) Read(p []byte) (int, error) {
	n, err := v.r.Read(p)
	if n > 0 {
		// hash.Hash writes never fail
		v.h.Write(p[:n])
	}
	return n, err
}

// Verify reports whether the digest of the bytes read so far equals expected.
func (v *VerifyingReader) Verify(expected []byte) bool {
	return DigestEqual(v.h.Sum(nil), expected)
}
