// Package encryption seals job credentials with AES-256-GCM so plaintext
// secrets never reach the job store.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// KeySize is the required key length in bytes.
const KeySize = 32

var (
	// ErrKeySize indicates a key of the wrong length.
	ErrKeySize = errors.New("encryption key must be 32 bytes")
	// ErrCiphertext indicates sealed data too short to contain a nonce.
	ErrCiphertext = errors.New("sealed data is malformed")
)

// Credentials are the login fields a recording session may need. They exist
// in plaintext only in memory, scoped to a single pipeline run.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Seal encrypts plaintext with AES-256-GCM. The random nonce is prepended to
// the returned ciphertext.
func Seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func Open(key, sealed []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, ErrCiphertext
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt credentials: %w", err)
	}
	return plaintext, nil
}

// SealCredentials serializes and seals credentials in one step.
func SealCredentials(key []byte, creds Credentials) ([]byte, error) {
	plaintext, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	return Seal(key, plaintext)
}

// OpenCredentials reverses SealCredentials.
func OpenCredentials(key, sealed []byte) (Credentials, error) {
	var creds Credentials
	plaintext, err := Open(key, sealed)
	if err != nil {
		return creds, err
	}
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return creds, fmt.Errorf("decode credentials: %w", err)
	}
	return creds, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return gcm, nil
}
