package crypto

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyMaterial(t *testing.T) {
	key, iv, err := GenerateKeyMaterial()
	require.NoError(t, err)
	assert.Len(t, key, KeySize)
	assert.Len(t, iv, IVSize)

	key2, iv2, err := GenerateKeyMaterial()
	require.NoError(t, err)
	assert.NotEqual(t, key, key2)
	assert.NotEqual(t, iv, iv2)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "simple password", plaintext: "s3cr3t-password"},
		{name: "empty string", plaintext: ""},
		{name: "exact block size", plaintext: strings.Repeat("a", 16)},
		{name: "unicode", plaintext: "пароль-密码-🔑"},
		{name: "long", plaintext: strings.Repeat("correct horse battery staple ", 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, iv, err := GenerateKeyMaterial()
			require.NoError(t, err)

			ciphertext, err := Encrypt(tt.plaintext, key, iv)
			require.NoError(t, err)

			// ciphertext is hex and never contains the plaintext
			_, err = hex.DecodeString(ciphertext)
			require.NoError(t, err)
			if tt.plaintext != "" {
				assert.NotContains(t, ciphertext, tt.plaintext)
			}

			plaintext, err := Decrypt(ciphertext, key, iv)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestEncrypt_Deterministic(t *testing.T) {
	key, iv, err := GenerateKeyMaterial()
	require.NoError(t, err)

	first, err := Encrypt("same input", key, iv)
	require.NoError(t, err)
	second, err := Encrypt("same input", key, iv)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncrypt_InvalidKeyMaterial(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
		iv   []byte
	}{
		{name: "short key", key: make([]byte, 16), iv: make([]byte, IVSize)},
		{name: "long key", key: make([]byte, 64), iv: make([]byte, IVSize)},
		{name: "short iv", key: make([]byte, KeySize), iv: make([]byte, 8)},
		{name: "nil key", key: nil, iv: make([]byte, IVSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt("data", tt.key, tt.iv)
			assert.ErrorIs(t, err, ErrCrypto)

			_, err = Decrypt("00", tt.key, tt.iv)
			assert.ErrorIs(t, err, ErrCrypto)
		})
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	key, iv, err := GenerateKeyMaterial()
	require.NoError(t, err)

	ciphertext, err := Encrypt("guard this", key, iv)
	require.NoError(t, err)

	otherKey, _, err := GenerateKeyMaterial()
	require.NoError(t, err)

	plaintext, err := Decrypt(ciphertext, otherKey, iv)
	assert.ErrorIs(t, err, ErrCrypto)
	assert.Empty(t, plaintext)
}

func TestDecrypt_Malformed(t *testing.T) {
	key, iv, err := GenerateKeyMaterial()
	require.NoError(t, err)

	tests := []struct {
		name       string
		ciphertext string
	}{
		{name: "not hex", ciphertext: "zz-not-hex"},
		{name: "empty", ciphertext: ""},
		{name: "not block aligned", ciphertext: "0011223344"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.ciphertext, key, iv)
			assert.ErrorIs(t, err, ErrCrypto)
		})
	}
}

func TestDecrypt_Truncated(t *testing.T) {
	key, iv, err := GenerateKeyMaterial()
	require.NoError(t, err)

	ciphertext, err := Encrypt(strings.Repeat("x", 64), key, iv)
	require.NoError(t, err)

	// drop the final block; padding check must reject what remains
	truncated := ciphertext[:len(ciphertext)-32]
	_, err = Decrypt(truncated, key, iv)
	assert.ErrorIs(t, err, ErrCrypto)
}
