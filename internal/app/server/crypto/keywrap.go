package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// KeyWrapper envelopes per-item keys under a master key so that a dump of
// the vault table alone is not enough to recover secrets. The master key is
// derived from an operator-supplied passphrase and is never persisted.
//
// Wrapping uses AES-256-GCM with a random nonce prefixed to the ciphertext,
// so a tampered wrapped key fails to unwrap instead of yielding garbage.
type KeyWrapper struct {
	aead cipher.AEAD
}

// NewKeyWrapper derives a 32-byte master key from the passphrase with
// argon2id and the deployment salt from configuration.
func NewKeyWrapper(passphrase, salt string) (*KeyWrapper, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty master passphrase", ErrCrypto)
	}

	masterKey := argon2.IDKey([]byte(passphrase), []byte(salt), 1, 64*1024, 4, KeySize)

	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %v", ErrCrypto, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create GCM: %v", ErrCrypto, err)
	}

	return &KeyWrapper{aead: aead}, nil
}

// Wrap encrypts an item key and returns nonce||ciphertext.
func (w *KeyWrapper) Wrap(key []byte) ([]byte, error) {
	nonce := make([]byte, w.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %v", ErrCrypto, err)
	}

	return w.aead.Seal(nonce, nonce, key, nil), nil
}

// Unwrap recovers an item key wrapped by Wrap. Authentication failure means
// the stored key was tampered with or the master passphrase is wrong.
func (w *KeyWrapper) Unwrap(wrapped []byte) ([]byte, error) {
	nonceSize := w.aead.NonceSize()
	if len(wrapped) < nonceSize {
		return nil, fmt.Errorf("%w: wrapped key too short", ErrCrypto)
	}

	nonce, ciphertext := wrapped[:nonceSize], wrapped[nonceSize:]
	key, err := w.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: unwrap key", ErrCrypto)
	}

	return key, nil
}
