package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the CBC initialization vector length in bytes.
	IVSize = aes.BlockSize
)

// ErrCrypto covers every encryption and decryption failure. Error messages
// wrapping it carry a short cause only — never key material, never
// ciphertext.
var ErrCrypto = errors.New("crypto failure")

// GenerateKeyMaterial returns a fresh random 32-byte key and 16-byte IV.
// A new pair is generated per vault item and never reused across items.
func GenerateKeyMaterial() (key, iv []byte, err error) {
	key = make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, nil, fmt.Errorf("%w: generate key: %v", ErrCrypto, err)
	}

	iv = make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("%w: generate iv: %v", ErrCrypto, err)
	}

	return key, iv, nil
}

// Encrypt encrypts plaintext with AES-256-CBC and PKCS#7 padding and
// returns the ciphertext hex-encoded. Identical (plaintext, key, iv) inputs
// always produce identical ciphertext.
func Encrypt(plaintext string, key, iv []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: invalid key length %d", ErrCrypto, len(key))
	}
	if len(iv) != IVSize {
		return "", fmt.Errorf("%w: invalid iv length %d", ErrCrypto, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: create cipher: %v", ErrCrypto, err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. It fails with ErrCrypto when the ciphertext is
// not valid hex, not block-aligned, or the padding does not check out after
// decryption — the latter is the symptom of a wrong key or IV.
func Decrypt(ciphertextHex string, key, iv []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("%w: invalid key length %d", ErrCrypto, len(key))
	}
	if len(iv) != IVSize {
		return "", fmt.Errorf("%w: invalid iv length %d", ErrCrypto, len(iv))
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: decode ciphertext: %v", ErrCrypto, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext is not block-aligned", ErrCrypto)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: create cipher: %v", ErrCrypto, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}

	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: invalid padded length", ErrCrypto)
	}

	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("%w: invalid padding", ErrCrypto)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("%w: invalid padding", ErrCrypto)
		}
	}

	return data[:len(data)-padding], nil
}
