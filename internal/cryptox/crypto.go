// Package cryptox seals member secret fields (passwords, two-factor codes,
// auxiliary credentials) with AES-GCM before they reach the mirror store,
// the sync queue or the remote store.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// DeriveKey stretches a passphrase into a 32-byte AES-256 key using argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Sealer encrypts and decrypts short string values. A nil *Sealer is valid
// and passes values through unchanged, so sealing stays optional.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer returns a Sealer for the given AES key (16, 24 or 32 bytes).
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts value and returns base64(nonce || ciphertext).
// Empty values are returned unchanged.
func (s *Sealer) Seal(value string) (string, error) {
	if s == nil || value == "" {
		return value, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ct := s.aead.Seal(nil, nonce, []byte(value), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, ct...)), nil
}

// Open reverses Seal. Empty values are returned unchanged.
func (s *Sealer) Open(sealed string) (string, error) {
	if s == nil || sealed == "" {
		return sealed, nil
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < s.aead.NonceSize() {
		return "", ErrMalformedCiphertext
	}

	nonce, ct := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	pt, err := s.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	return string(pt), nil
}

// WipeBytes overwrites b with zeros. Useful for passphrases after key
// derivation.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
